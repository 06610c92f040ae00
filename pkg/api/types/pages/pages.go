package pages

// Page is one slice of a paginated listing.
//
// Pages are 1-origin: the first page has Index 1. TotalPages rounds up,
// so walking pages 1..TotalPages yields every item exactly once.
type Page[T any] struct {
	Index      int `json:"index"`
	MaxSize    int `json:"max_size"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
	Items      []T `json:"items"`
}

// New builds the page descriptor of the index-th page.
func New[T any](index int, size int, total int, items []T) Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = (total + size - 1) / size
	}
	return Page[T]{
		Index:      index,
		MaxSize:    size,
		TotalPages: totalPages,
		Total:      total,
		Items:      items,
	}
}

func (p Page[T]) EqualWith(o Page[T], pred func(T, T) bool) bool {
	if p.Index != o.Index || p.MaxSize != o.MaxSize ||
		p.TotalPages != o.TotalPages || p.Total != o.Total {
		return false
	}
	if len(p.Items) != len(o.Items) {
		return false
	}
	for i := range p.Items {
		if !pred(p.Items[i], o.Items[i]) {
			return false
		}
	}
	return true
}
