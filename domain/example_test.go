package domain_test

import (
	"encoding/json"
	"fmt"

	"github.com/magnifact/pdf-table-extractor/domain"
)

// Example_conversionResult demonstrates the JSON form of a conversion outcome.
func Example_conversionResult() {
	result := domain.ConversionResult{
		Source: domain.ObjectRef{Bucket: "magnifact-pdf", Key: "input-pdf-files/report.pdf"},
		Output: &domain.ObjectRef{Bucket: "magnifact-pdf", Key: "output-files/report.xlsx"},
		Status: domain.ConversionStatusConverted,
		Pages:  2,
		Tables: 3,
	}

	data, _ := json.Marshal(result)
	fmt.Println(string(data))
	// Output: {"source":{"bucket":"magnifact-pdf","key":"input-pdf-files/report.pdf"},"output":{"bucket":"magnifact-pdf","key":"output-files/report.xlsx"},"status":"CONVERTED","pages":2,"tables":3}
}

// Example_table shows how ragged rows report their width.
func Example_table() {
	table := domain.Table{
		Page: 1,
		Rows: [][]string{
			{"Name", "Qty", "Price"},
			{"Widget", "2"},
		},
	}
	fmt.Println(table.ColumnCount())
	// Output: 3
}
