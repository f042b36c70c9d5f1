package tasks

import (
	"context"
	"time"
)

const day = 24 * time.Hour

// sampleTasks are the demo tasks, with due dates relative to now.
func sampleTasks(now time.Time) []Input {
	return []Input{
		{
			Title:       "Complete project proposal",
			Description: "Finish the Q1 project proposal and submit to management",
			Status:      StatusInProgress,
			Priority:    PriorityHigh,
			Category:    "Work",
			DueDate:     FormatTimestamp(now.Add(2 * day)),
		},
		{
			Title:       "Review team performance",
			Description: "Conduct quarterly review meetings with team members",
			Status:      StatusTodo,
			Priority:    PriorityMedium,
			Category:    "Work",
			DueDate:     FormatTimestamp(now.Add(7 * day)),
		},
		{
			Title:       "Update portfolio website",
			Description: "Add recent projects and update design",
			Status:      StatusCompleted,
			Priority:    PriorityLow,
			Category:    "Personal",
		},
	}
}

// SeedSampleData gives a user with no tasks the three demo tasks and
// returns them. A user who already owns a task gets nothing.
func (s *Store) SeedSampleData(ctx context.Context, userID string) ([]Task, error) {
	existing, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	var created []Task
	for _, in := range sampleTasks(s.now()) {
		t, err := s.Create(ctx, in, userID)
		if err != nil {
			return created, err
		}
		created = append(created, *t)
	}
	s.log.Info(ctx, "sample data seeded", "user_id", userID, "count", len(created))
	return created, nil
}
