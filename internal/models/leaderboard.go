package models

import "time"

// LeaderboardEntry is one submitted score. Never mutated after creation.
type LeaderboardEntry struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Score       int       `json:"score"`
	Date        time.Time `json:"date"`
	TotalTimeMs int64     `json:"total_time_ms"`
}

// ScoreSubmission is the request body for submitting a finished run
type ScoreSubmission struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	TotalTimeMs int64  `json:"total_time_ms"`
}
