package models

import "time"

// LeaderboardEntry is one submitted game result.
type LeaderboardEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Score     int       `json:"score"`
	Correct   int       `json:"correct"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}
