package tasks

import (
	"math"
	"time"
)

type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"`
}

// ComputeStats counts list as of now. CompletionRate is the rounded
// percentage of completed tasks, 0 for an empty list.
func ComputeStats(list []Task, now time.Time) Stats {
	var st Stats
	st.Total = len(list)
	for _, t := range list {
		switch t.Status {
		case StatusCompleted:
			st.Completed++
		case StatusInProgress:
			st.InProgress++
		}
		if t.IsOverdue(now) {
			st.Overdue++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = int(math.Round(float64(st.Completed) / float64(st.Total) * 100))
	}
	return st
}
