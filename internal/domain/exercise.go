package domain

// Exercise is one entry inside a workout. OrderIndex is the display
// position within the workout; it is a stable sort key, not unique.
type Exercise struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	WorkoutID       uint     `gorm:"index;not null" json:"workout_id"`
	Name            string   `gorm:"not null" json:"name"` // e.g. "Bench Press", "Squats"
	Sets            int      `gorm:"not null" json:"sets"`
	Reps            *int     `json:"reps,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"` // time-based exercises
	Distance        *float64 `json:"distance,omitempty"`         // cardio
	Notes           string   `json:"notes,omitempty"`
	OrderIndex      int      `gorm:"default:0" json:"order"`
}
