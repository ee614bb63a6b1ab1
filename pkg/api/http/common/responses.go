package common

// ErrorResponse is the body of any failed request.
type ErrorResponse struct {
	Error string `json:"error"`

	// Errors lists every validation error, when a payload was rejected.
	Errors []string `json:"errors,omitempty"`
}

// MessageResponse is the body of a successful authenticate call.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of a health check.
type HealthResponse struct {
	OK bool `json:"ok"`
}
