package models

// PageRequest is a zero-based page index plus page size. A nil *PageRequest
// selects the legacy unpaginated mode, where the full ordered collection is
// returned in one response.
type PageRequest struct {
	Page int
	Size int
}

// Offset returns the row offset for the request.
func (p *PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one page of projected records, with Spring-style field names kept
// for compatibility with existing consumers of the original API.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage assembles a Page from a slice of records. With a nil request the
// page is the whole collection: a single page sized to its content.
func NewPage[T any](content []T, req *PageRequest, total int64) *Page[T] {
	if req == nil {
		return &Page[T]{
			Content:       content,
			Page:          0,
			Size:          len(content),
			TotalElements: total,
			TotalPages:    1,
		}
	}

	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}
