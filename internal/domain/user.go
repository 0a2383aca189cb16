package domain

import "time"

// Goal is the user's body-weight objective.
type Goal string

const (
	GoalMaintain Goal = "maintain"
	GoalLose     Goal = "lose"
	GoalGain     Goal = "gain"
)

// ActivityLevel describes how active the user is day to day.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// User is an account that owns workouts, nutrition logs and body stats.
type User struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	Email          string        `gorm:"uniqueIndex;not null" json:"email"`
	Username       string        `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string        `gorm:"not null" json:"-"` // never exposed via JSON
	FullName       string        `json:"full_name,omitempty"`
	IsActive       bool          `gorm:"default:true" json:"is_active"`
	Goal           Goal          `gorm:"default:maintain" json:"goal"`
	ActivityLevel  ActivityLevel `gorm:"default:moderate" json:"activity_level"`
	TargetWeight   *float64      `json:"target_weight,omitempty"`
	TargetCalories *int          `json:"target_calories,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
