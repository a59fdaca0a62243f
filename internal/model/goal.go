package model

import "time"

// Progress bounds for goals, in percent.
const (
	ProgressMin = 0
	ProgressMax = 100
)

// Goal is a long-running objective tracked by percentage progress.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Progress    int        `json:"progress"`
	Category    Category   `json:"category"`
}

// IsDone reports whether the goal has reached full progress.
func (g Goal) IsDone() bool {
	return g.Progress >= ProgressMax
}

// IsOverdue reports whether the deadline has passed before completion.
func (g Goal) IsOverdue(now time.Time) bool {
	return g.Deadline != nil && g.Deadline.Before(now) && !g.IsDone()
}
