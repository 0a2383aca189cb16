package domain

import "time"

// BodyStat is a dated snapshot of weight, body composition,
// measurements and lifestyle metrics. Multiple entries per day are
// allowed; "the" value for a day is resolved by the latest-non-null
// rule (most recently created row on or before that day with the field
// populated).
type BodyStat struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"index;not null" json:"user_id"`
	Date   time.Time `gorm:"index;not null" json:"date"`

	// Weight and body composition.
	Weight            *float64 `json:"weight,omitempty"` // kg
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	MuscleMass        *float64 `json:"muscle_mass,omitempty"`
	BoneDensity       *float64 `json:"bone_density,omitempty"`

	// Measurements in cm.
	Height     *float64 `json:"height,omitempty"`
	Chest      *float64 `json:"chest,omitempty"`
	Waist      *float64 `json:"waist,omitempty"`
	Hips       *float64 `json:"hips,omitempty"`
	BicepLeft  *float64 `json:"bicep_left,omitempty"`
	BicepRight *float64 `json:"bicep_right,omitempty"`
	ThighLeft  *float64 `json:"thigh_left,omitempty"`
	ThighRight *float64 `json:"thigh_right,omitempty"`

	// Health metrics.
	BloodPressureSystolic  *int `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int `json:"blood_pressure_diastolic,omitempty"`
	RestingHeartRate       *int `json:"resting_heart_rate,omitempty"`

	// Lifestyle metrics.
	WaterIntake *float64 `json:"water_intake,omitempty"` // liters
	SleepHours  *float64 `json:"sleep_hours,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
