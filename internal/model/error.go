package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error codes returned in ErrorResponse.Code
const (
	CodeBadRequest     = "BAD_REQUEST"
	CodeMalformedInput = "MALFORMED_INPUT"
	CodeFileExists     = "FILE_EXISTS"
	CodeInternal       = "INTERNAL"
)
