package domain

import "time"

// Workout is a single training session owned by one user.
// Its exercises are created together with it in one transaction.
type Workout struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"index;not null" json:"user_id"`
	Date            time.Time  `gorm:"index;not null" json:"date"`
	Name            string     `gorm:"not null" json:"name"` // e.g. "Push Day", "Cardio"
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Exercises       []Exercise `gorm:"foreignKey:WorkoutID" json:"exercises"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
