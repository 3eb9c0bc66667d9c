package domain

// ListParams carries the pagination convention shared by every list
// endpoint: page/limit plus an optional whitelisted sort column.
type ListParams struct {
	Page      int
	Limit     int
	SortField string
	SortOrder string
}

func (p ListParams) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit
}

// Desc reports whether the requested order is descending. Both DESC and
// desc are accepted; anything else sorts ascending.
func (p ListParams) Desc() bool {
	return p.SortOrder == "DESC" || p.SortOrder == "desc"
}
