package domain

type SortKey string

const (
	SortByDeadline SortKey = "deadline"
	SortByTitle    SortKey = "title"
	SortByStatus   SortKey = "status"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TaskFilter is the search/status/sort configuration applied to the task
// list. Empty Search and Status mean no filtering.
type TaskFilter struct {
	Search    string     `json:"search"`
	Status    TaskStatus `json:"status"`
	SortBy    SortKey    `json:"sort_by"`
	SortOrder SortOrder  `json:"sort_order"`
}

func DefaultTaskFilter() TaskFilter {
	return TaskFilter{SortBy: SortByDeadline, SortOrder: SortAsc}
}

// Normalize fills empty sort fields with their defaults.
func (f TaskFilter) Normalize() TaskFilter {
	if f.SortBy == "" {
		f.SortBy = SortByDeadline
	}
	if f.SortOrder == "" {
		f.SortOrder = SortAsc
	}
	return f
}

func (f TaskFilter) Validate() error {
	errs := ValidationErrors{}
	if f.Status != "" && !f.Status.Valid() {
		errs["status"] = "status must be one of: Pending, In Progress, Done"
	}
	switch f.SortBy {
	case "", SortByDeadline, SortByTitle, SortByStatus:
	default:
		errs["sort_by"] = "sort_by must be one of: deadline, title, status"
	}
	switch f.SortOrder {
	case "", SortAsc, SortDesc:
	default:
		errs["sort_order"] = "sort_order must be one of: asc, desc"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
