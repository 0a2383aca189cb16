package domain

import "time"

// NutritionLog records one food entry. The per-unit nutrient values are
// the source of truth; the Total* columns are derived as value*Quantity
// and must be recomputed whenever quantity or per-unit values change.
type NutritionLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Date     time.Time `gorm:"index;not null" json:"date"`
	MealType string    `gorm:"not null" json:"meal_type"` // breakfast, lunch, dinner, snack
	FoodName string    `gorm:"not null" json:"food_name"`
	Quantity float64   `gorm:"not null" json:"quantity"`
	Unit     string    `gorm:"not null" json:"unit"` // g, ml, cup, piece, ...

	// Nutritional values per unit.
	Calories float64 `gorm:"not null" json:"calories"`
	Protein  float64 `gorm:"default:0" json:"protein"`
	Carbs    float64 `gorm:"default:0" json:"carbs"`
	Fat      float64 `gorm:"default:0" json:"fat"`
	Fiber    float64 `gorm:"default:0" json:"fiber"`
	Sugar    float64 `gorm:"default:0" json:"sugar"`
	Sodium   float64 `gorm:"default:0" json:"sodium"`

	// Derived totals for this entry.
	TotalCalories float64 `gorm:"not null" json:"total_calories"`
	TotalProtein  float64 `gorm:"default:0" json:"total_protein"`
	TotalCarbs    float64 `gorm:"default:0" json:"total_carbs"`
	TotalFat      float64 `gorm:"default:0" json:"total_fat"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecalculateTotals rederives the Total* columns from the per-unit
// values and quantity. Every mutation path that touches those inputs
// must call this before persisting.
func (n *NutritionLog) RecalculateTotals() {
	n.TotalCalories = n.Calories * n.Quantity
	n.TotalProtein = n.Protein * n.Quantity
	n.TotalCarbs = n.Carbs * n.Quantity
	n.TotalFat = n.Fat * n.Quantity
}
