package handler

import (
	"encoding/json"

	"github.com/magnifact/pdf-table-extractor/domain"
)

// Response is the function result: an HTTP-style status and a JSON body.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type responseBody struct {
	Message string                    `json:"message"`
	Results []domain.ConversionResult `json:"results,omitempty"`
}

// NewResponse builds a response whose body is {"message": message}.
func NewResponse(statusCode int, message string) Response {
	return newResponse(statusCode, message, nil)
}

func newResponse(statusCode int, message string, results []domain.ConversionResult) Response {
	body, err := json.Marshal(responseBody{Message: message, Results: results})
	if err != nil {
		body, _ = json.Marshal(responseBody{Message: message})
	}
	return Response{StatusCode: statusCode, Body: string(body)}
}
