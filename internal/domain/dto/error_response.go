package dto

import "time"

// ErrorResponse is the JSON body returned for every failed request.
//
// Fields:
//   - Code: HTTP status code mirrored in the body.
//   - Message: short, user-facing summary (e.g. "Validation failed").
//   - ErrorDetails: underlying error text, empty when there is none.
//   - Timestamp: UTC time the error was produced.
type ErrorResponse struct {
	Code         int       `json:"code,omitempty" example:"400"`
	Message      string    `json:"message" example:"Invalid timeframe parameters"`
	ErrorDetails string    `json:"error_details,omitempty" example:"invalid timeframe: fromDate cannot be after toDate"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse from a message and an optional error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// Error implements the error interface so the response can travel through gin's error chain.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
