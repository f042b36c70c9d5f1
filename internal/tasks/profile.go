package tasks

import (
	"context"
	"time"
)

type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Earned      bool   `json:"earned"`
}

// Profile is the per-user summary shown on the profile screen.
type Profile struct {
	Stats        Stats         `json:"stats"`
	Categories   int           `json:"categories"`
	Achievements []Achievement `json:"achievements"`
	Rating       string        `json:"rating"`
}

// Rating tiers by completion rate.
const (
	RatingExcellent = "Excellent Performance"
	RatingGood      = "Good Progress"
	RatingKeepGoing = "Keep Going"
)

// BuildProfile derives the profile from a user's tasks.
func BuildProfile(list []Task, now time.Time) Profile {
	st := ComputeStats(list, now)

	cats := make(map[string]struct{})
	for _, t := range list {
		cats[t.Category] = struct{}{}
	}

	rating := RatingKeepGoing
	switch {
	case st.CompletionRate >= 80:
		rating = RatingExcellent
	case st.CompletionRate >= 60:
		rating = RatingGood
	}

	return Profile{
		Stats:      st,
		Categories: len(cats),
		Achievements: []Achievement{
			{Title: "Task Creator", Description: "Created your first task", Earned: len(list) > 0},
			{Title: "Getting Started", Description: "Completed 5 tasks", Earned: st.Completed >= 5},
			{Title: "Productivity Pro", Description: "Maintained 80% completion rate", Earned: st.CompletionRate >= 80},
		},
		Rating: rating,
	}
}

func (s *Store) Profile(ctx context.Context, userID string) (Profile, error) {
	list, err := s.ListByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return BuildProfile(list, s.now()), nil
}
