package models

// HealthResponse is served by the backend health endpoint and used by the
// client connectivity probe.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the JSON body of a failed backend request.
type ErrorResponse struct {
	Error string `json:"error"`
}
