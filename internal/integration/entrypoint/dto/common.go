// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a bare success acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}
