package response

// ListResponse is the standard wrapper for list endpoints.
type ListResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}

// NewListResponse wraps items with their count.
func NewListResponse[T any](items []T) ListResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return ListResponse[T]{
		Count: len(items),
		Data:  items,
	}
}
