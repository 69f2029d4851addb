// Package storetest provides a conformance test suite for storage.Store
// implementations.
//
// Example usage:
//
//	func TestStore(t *testing.T) {
//	    storetest.TestSuite(t, func() storage.Store {
//	        return local.NewInMemory()
//	    }, "bucket")
//	}
//
// The bucket must exist (or be creatable implicitly) for every store returned
// by newStore. Keys are unique per subtest so stores may be shared.
package storetest

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/magnifact/pdf-table-extractor/storage"
)

// Capability names accepted by TestSuiteWithSkip.
const (
	SkipMetadata    = "Metadata"
	SkipContentType = "ContentType"
)

// TestSuite runs all conformance tests against a store.
func TestSuite(t *testing.T, newStore func() storage.Store, bucket string) {
	TestSuiteWithSkip(t, newStore, bucket, nil)
}

// TestSuiteWithSkip runs conformance tests, skipping the named subtests.
// This is useful for backends with documented differences, such as a local
// directory that does not persist user metadata.
func TestSuiteWithSkip(t *testing.T, newStore func() storage.Store, bucket string, skipTests []string) {
	shouldSkip := func(name string) bool {
		for _, skip := range skipTests {
			if skip == name {
				return true
			}
		}
		return false
	}

	tests := []struct {
		name string
		fn   func(t *testing.T, store storage.Store, bucket string)
	}{
		{"PutGet", testPutGet},
		{"Overwrite", testOverwrite},
		{"NestedKey", testNestedKey},
		{"EmptyObject", testEmptyObject},
		{"Stat", testStat},
		{SkipContentType, testContentType},
		{SkipMetadata, testMetadata},
		{"GetNotExist", testGetNotExist},
		{"StatNotExist", testStatNotExist},
		{"InvalidKey", testInvalidKey},
		{"EmptyBucket", testEmptyBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if shouldSkip(tt.name) {
				t.Skip("Skipped by backend configuration")
				return
			}
			tt.fn(t, newStore(), bucket)
		})
	}
}

func uniqueKey(t *testing.T, suffix string) string {
	t.Helper()
	name := strings.NewReplacer("/", "-", " ", "-").Replace(t.Name())
	return fmt.Sprintf("storetest/%s/%s", name, suffix)
}

func mustPut(t *testing.T, store storage.Store, bucket, key string, data []byte, opts storage.PutOptions) {
	t.Helper()
	if err := store.Put(context.Background(), bucket, key, data, opts); err != nil {
		t.Fatalf("Put(%s/%s): %v", bucket, key, err)
	}
}

func testPutGet(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "object.bin")
	want := []byte("hello table extraction")
	mustPut(t, store, bucket, key, want, storage.PutOptions{})

	got, err := store.Get(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get(%s) = %q, want %q", key, got, want)
	}
}

func testOverwrite(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "object.bin")
	mustPut(t, store, bucket, key, []byte("first version, longer"), storage.PutOptions{})
	mustPut(t, store, bucket, key, []byte("second"), storage.PutOptions{})

	got, err := store.Get(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	if string(got) != "second" {
		t.Errorf("Get(%s) = %q, want %q", key, got, "second")
	}
}

func testNestedKey(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "a/b/c/report.xlsx")
	mustPut(t, store, bucket, key, []byte("nested"), storage.PutOptions{})

	info, err := store.Stat(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Stat(%s): %v", key, err)
	}
	if info.Key != key {
		t.Errorf("Stat(%s).Key = %q", key, info.Key)
	}
}

func testEmptyObject(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "empty")
	mustPut(t, store, bucket, key, []byte{}, storage.PutOptions{})

	got, err := store.Get(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	if len(got) != 0 {
		t.Errorf("Get(%s) returned %d bytes, want 0", key, len(got))
	}
}

func testStat(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "sized.bin")
	data := bytes.Repeat([]byte("x"), 1234)
	mustPut(t, store, bucket, key, data, storage.PutOptions{})

	info, err := store.Stat(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Stat(%s): %v", key, err)
	}
	if info.Size != int64(len(data)) {
		t.Errorf("Stat(%s).Size = %d, want %d", key, info.Size, len(data))
	}
	if info.LastModified.IsZero() {
		t.Errorf("Stat(%s).LastModified is zero", key)
	}
}

func testContentType(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "doc.pdf")
	data := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
	mustPut(t, store, bucket, key, data, storage.PutOptions{})

	info, err := store.Stat(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Stat(%s): %v", key, err)
	}
	if info.ContentType != "application/pdf" {
		t.Errorf("Stat(%s).ContentType = %q, want application/pdf", key, info.ContentType)
	}
}

func testMetadata(t *testing.T, store storage.Store, bucket string) {
	key := uniqueKey(t, "meta.bin")
	mustPut(t, store, bucket, key, []byte("m"), storage.PutOptions{
		ContentType: "application/octet-stream",
		Metadata:    map[string]string{"source-key": "input-pdf-files/a.pdf"},
	})

	info, err := store.Stat(context.Background(), bucket, key)
	if err != nil {
		t.Fatalf("Stat(%s): %v", key, err)
	}

	var found bool
	for k, v := range info.Metadata {
		if strings.EqualFold(k, "source-key") && v == "input-pdf-files/a.pdf" {
			found = true
		}
	}
	if !found {
		t.Errorf("Stat(%s).Metadata = %v, want source-key entry", key, info.Metadata)
	}
}

func testGetNotExist(t *testing.T, store storage.Store, bucket string) {
	_, err := store.Get(context.Background(), bucket, uniqueKey(t, "missing.pdf"))
	if !storage.IsObjectNotFound(err) {
		t.Errorf("Get(missing) error = %v, want ErrObjectNotFound", err)
	}
}

func testStatNotExist(t *testing.T, store storage.Store, bucket string) {
	_, err := store.Stat(context.Background(), bucket, uniqueKey(t, "missing.pdf"))
	if !storage.IsObjectNotFound(err) {
		t.Errorf("Stat(missing) error = %v, want ErrObjectNotFound", err)
	}
}

func testInvalidKey(t *testing.T, store storage.Store, bucket string) {
	ctx := context.Background()
	for _, key := range []string{"", "../escape.pdf", "/abs.pdf", "bad\x00key"} {
		if _, err := store.Get(ctx, bucket, key); !storage.IsInvalidInput(err) {
			t.Errorf("Get(%q) error = %v, want invalid input", key, err)
		}
		if err := store.Put(ctx, bucket, key, []byte("x"), storage.PutOptions{}); !storage.IsInvalidInput(err) {
			t.Errorf("Put(%q) error = %v, want invalid input", key, err)
		}
	}
}

func testEmptyBucket(t *testing.T, store storage.Store, _ string) {
	if _, err := store.Stat(context.Background(), "", "a.pdf"); !storage.IsInvalidInput(err) {
		t.Errorf("Stat with empty bucket error = %v, want invalid input", err)
	}
}
