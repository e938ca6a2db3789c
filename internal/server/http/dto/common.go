package dto

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse wraps informational responses.
type MessageResponse struct {
	Message string `json:"message"`
}
