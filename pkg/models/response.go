package models

// Paged is the standard list envelope returned by every collection
// endpoint. Detail carries the backend's error text on soft failures.
type Paged[T any] struct {
	Limit  int64   `json:"limit,omitempty"`
	Page   int64   `json:"page,omitempty"`
	Pages  int64   `json:"pages,omitempty"`
	Count  int64   `json:"count,omitempty"`
	Data   []T     `json:"data,omitempty"`
	Detail *string `json:"detail,omitempty"`
}
