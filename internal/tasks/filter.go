package tasks

import "strings"

// FilterAll disables a Filter field, like leaving it empty.
const FilterAll = "all"

// Filter narrows a task list. Empty or "all" fields match everything.
type Filter struct {
	// Search matches title or description, case-insensitively.
	Search   string `json:"search,omitempty"`
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Category string `json:"category,omitempty"`
}

func active(v string) bool {
	return v != "" && v != FilterAll
}

// Match reports whether t passes every active criterion.
func (f Filter) Match(t Task) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if active(f.Status) && string(t.Status) != f.Status {
		return false
	}
	if active(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	if active(f.Category) && t.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the matching tasks, keeping their order.
func (f Filter) Apply(list []Task) []Task {
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
