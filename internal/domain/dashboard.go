package domain

import "time"

type StatusCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

// Dashboard is the derived summary shown on the landing page. It is never
// stored.
type Dashboard struct {
	Counts      StatusCounts `json:"counts"`
	Upcoming    []Task       `json:"upcoming"`
	Overdue     []Task       `json:"overdue"`
	Greeting    string       `json:"greeting,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}
