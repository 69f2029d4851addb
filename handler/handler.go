// Package handler adapts S3 object notifications to the converter.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/aws/smithy-go"

	"github.com/magnifact/pdf-table-extractor/domain"
	ferrors "github.com/magnifact/pdf-table-extractor/errors"
	"github.com/magnifact/pdf-table-extractor/storage"
)

// Response messages.
const (
	MessageNoRecords = "No records found in event"
	MessageSuccess   = "PDF processing completed successfully"
)

// Skip reasons recorded in results.
const (
	ReasonOutsideInputFolder = "not in the input folder"
	ReasonNotPDF             = "not a PDF file"
)

// Converter processes a single object.
type Converter interface {
	Convert(ctx context.Context, src domain.ObjectRef) (*domain.ConversionResult, error)
}

// Handler is the Lambda entry point for S3 notifications.
type Handler struct {
	converter   Converter
	inputPrefix string
	logger      *slog.Logger
}

// Option is a functional option for configuring the Handler.
type Option func(*Handler)

// WithLogger configures the handler with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a handler converting PDFs stored under inputFolder.
func New(converter Converter, inputFolder string, options ...Option) *Handler {
	h := &Handler{
		converter:   converter,
		inputPrefix: strings.Trim(inputFolder, "/") + "/",
	}
	for _, option := range options {
		option(h)
	}
	if h.logger == nil {
		h.logger = slog.New(slog.DiscardHandler)
	}
	return h
}

// Handle converts every PDF named by event. All records are processed even
// when one fails. Failures yield a 500 response; when any of them is
// transient the error is also returned so the runtime retries the invocation.
func (h *Handler) Handle(ctx context.Context, event events.S3Event) (Response, error) {
	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("request_id", lc.AwsRequestID)
	}

	if len(event.Records) == 0 {
		logger.WarnContext(ctx, "no records found in the event")
		return NewResponse(http.StatusBadRequest, MessageNoRecords), nil
	}

	objects := ObjectEvents(event)
	logger.InfoContext(ctx, "received event", "records", len(objects))

	results := make([]domain.ConversionResult, 0, len(objects))
	var firstErr, retryErr error
	for _, obj := range objects {
		src := obj.Object
		logger.InfoContext(ctx, "processing file",
			"bucket", src.Bucket,
			"key", src.Key,
			"event", obj.EventName)

		if reason := h.skipReason(src.Key); reason != "" {
			logger.InfoContext(ctx, "skipping file", "key", src.Key, "reason", reason)
			results = append(results, domain.ConversionResult{
				Source: src,
				Status: domain.ConversionStatusSkipped,
				Reason: reason,
			})
			continue
		}

		result, err := h.converter.Convert(ctx, src)
		if result == nil {
			result = &domain.ConversionResult{Source: src, Status: domain.ConversionStatusConverted}
			if err != nil {
				result.Status = domain.ConversionStatusFailed
				result.Reason = err.Error()
			}
		}
		if err == nil {
			results = append(results, *result)
			continue
		}

		code := ferrors.CodeOf(err)
		result.Code = string(code)
		result.StatusCode = code.HTTPStatus()
		results = append(results, *result)

		logger.ErrorContext(ctx, "error processing PDF",
			"key", src.Key,
			"code", code,
			"status_code", result.StatusCode,
			"retryable", ferrors.IsRetryable(err),
			"error", err)
		if firstErr == nil {
			firstErr = err
		}
		if retryErr == nil && ferrors.IsRetryable(err) {
			retryErr = err
		}
	}

	if firstErr != nil {
		return newResponse(http.StatusInternalServerError, errorMessage(firstErr), results), retryErr
	}
	return newResponse(http.StatusOK, MessageSuccess, results), nil
}

// errorMessage prefixes failures reported by the AWS storage API with
// "AWS Error: " and every other failure with "Error: ".
func errorMessage(err error) string {
	var storageErr *storage.Error
	var apiErr smithy.APIError
	if errors.As(err, &storageErr) && errors.As(err, &apiErr) {
		return "AWS Error: " + err.Error()
	}
	return "Error: " + err.Error()
}

func (h *Handler) skipReason(key string) string {
	if !strings.HasPrefix(key, h.inputPrefix) {
		return ReasonOutsideInputFolder
	}
	if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return ReasonNotPDF
	}
	return ""
}

// ObjectEvents normalizes the records of event. Keys arrive form-encoded
// ("+" for spaces).
func ObjectEvents(event events.S3Event) []domain.ObjectEvent {
	objects := make([]domain.ObjectEvent, 0, len(event.Records))
	for _, record := range event.Records {
		key := DecodeKey(record.S3.Object.Key)
		objects = append(objects, domain.ObjectEvent{
			EventName: record.EventName,
			EventTime: record.EventTime,
			Object:    domain.ObjectRef{Bucket: record.S3.Bucket.Name, Key: key},
			Size:      record.S3.Object.Size,
		})
	}
	return objects
}

// DecodeKey decodes a form-encoded object key. "+" always becomes a space;
// a malformed percent escape is left as written along with the rest of the
// key.
func DecodeKey(raw string) string {
	key, err := url.QueryUnescape(raw)
	if err != nil {
		return decodeEscapes(strings.ReplaceAll(raw, "+", " "))
	}
	return key
}

// decodeEscapes decodes each valid %XX escape in s and keeps the others.
func decodeEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if decoded, err := url.PathUnescape(s[i : i+3]); err == nil {
				b.WriteString(decoded)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
