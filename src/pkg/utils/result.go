package utils

// Result is what every usecase hands back to its controller.
type Result struct {
	Data  interface{}
	Error error
}

// PaginatedData wraps list responses.
type PaginatedData struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}
