package dto

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Message string `json:"message" example:"No job: 0"`
	Status  int    `json:"status" example:"404"`
	// Errors lists one message per violated constraint for validation failures
	Errors []string `json:"errors,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(status int, message string, errs []string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Message: message,
			Status:  status,
			Errors:  errs,
		},
	}
}
