package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorData is the data payload of failed requests. Code is stable and meant
// for programmatic retries; Message is for humans.
type ErrorData struct {
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
	TourID    string `json:"tour_id,omitempty"`
}

// ListResponse wraps paginated or faceted lists.
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}
