package pagination

// Page описывает одну страницу упорядоченного списка.
// Номера страниц начинаются с 1, размер страницы задаётся конфигом.
type Page struct {
	Number     int `json:"page"`
	Size       int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// New clamps the page number at 1 and computes the page count.
// An out-of-range number keeps its value and just yields no rows.
func New(number, size, total int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}

	totalPages := (total + size - 1) / size

	return Page{
		Number:     number,
		Size:       size,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset - смещение для LIMIT/OFFSET запроса
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Slice returns the requested page of an already ordered slice.
// Requests past the end return an empty page, not an error.
func Slice[T any](items []T, number, size int) []T {
	p := New(number, size, len(items))

	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
