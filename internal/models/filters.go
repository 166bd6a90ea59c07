package model

// FilterAll is the wildcard value for the status and priority filters.
const FilterAll = "all"

// Filters narrows the task list view. Tags use OR semantics: a task matches
// when it carries at least one selected tag.
type Filters struct {
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
}

func DefaultFilters() Filters {
	return Filters{Status: FilterAll, Priority: FilterAll, Tags: []string{}}
}

// FiltersPatch merges into existing filters; nil fields are left untouched.
type FiltersPatch struct {
	Status   *string   `json:"status,omitempty"`
	Priority *string   `json:"priority,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}
