package models

import "time"

// DrawingDB represents one submitted hand-drawn image together with its
// computed risk score.
type DrawingDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    int64     `json:"user_id" db:"user_id"`       // Owning user
	ImagePath string    `json:"image_path" db:"image_path"` // Stored image location on disk
	Score     float64   `json:"score" db:"score"`           // Risk score in [0,1]
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Submission timestamp
}
