package types

// APIResponse is the envelope used for health checks and every error body.
// Index documents are written bare.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type Meta struct {
	RequestID string `json:"request_id,omitempty"`
}

// ProjectListResponse is the body of the paginated project listing.
type ProjectListResponse struct {
	Data  interface{} `json:"data"`
	Links Links       `json:"links"`
}

type Links struct {
	NextPage     *string `json:"next_page"`
	PreviousPage *string `json:"previous_page"`
}
