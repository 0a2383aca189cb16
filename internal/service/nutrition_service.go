package service

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
)

var ErrNutritionLogNotFound = errors.New("nutrition log not found")

// NutritionInput carries the fields accepted when logging a food entry.
type NutritionInput struct {
	Date     time.Time
	MealType string
	FoodName string
	Quantity float64
	Unit     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sugar    float64
	Sodium   float64
	Notes    string
}

// NutritionUpdate is a partial patch. Nil fields are left untouched.
// Any change to quantity or a per-unit value rederives the totals.
type NutritionUpdate struct {
	Date     *time.Time
	MealType *string
	FoodName *string
	Quantity *float64
	Unit     *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Fiber    *float64
	Sugar    *float64
	Sodium   *float64
	Notes    *string
}

// DailyNutritionSummary is the per-day rollup of logged totals.
type DailyNutritionSummary struct {
	Date          time.Time `json:"date"`
	TotalCalories float64   `json:"total_calories"`
	TotalProtein  float64   `json:"total_protein"`
	TotalCarbs    float64   `json:"total_carbs"`
	TotalFat      float64   `json:"total_fat"`
	EntryCount    int       `json:"entry_count"`
}

// NutritionService exposes ownership-scoped nutrition log CRUD plus the
// per-day nutrition rollup.
type NutritionService interface {
	Create(ctx context.Context, userID uint, input NutritionInput) (*domain.NutritionLog, error)
	Get(ctx context.Context, userID, logID uint) (*domain.NutritionLog, error)
	List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.NutritionLog, error)
	ListForDate(ctx context.Context, userID uint, day time.Time) ([]domain.NutritionLog, error)
	Update(ctx context.Context, userID, logID uint, patch NutritionUpdate) (*domain.NutritionLog, error)
	Delete(ctx context.Context, userID, logID uint) error
	DailySummary(ctx context.Context, userID uint, day time.Time) (*DailyNutritionSummary, error)
}

type nutritionService struct {
	nutritionRepo repository.NutritionRepository
	userRepo      repository.UserRepository
}

// NewNutritionService creates a new NutritionService.
func NewNutritionService(nutritionRepo repository.NutritionRepository, userRepo repository.UserRepository) NutritionService {
	return &nutritionService{nutritionRepo: nutritionRepo, userRepo: userRepo}
}

func (s *nutritionService) Create(ctx context.Context, userID uint, input NutritionInput) (*domain.NutritionLog, error) {
	if input.FoodName == "" || input.MealType == "" || input.Quantity <= 0 {
		return nil, ErrValidationFailed
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	log := &domain.NutritionLog{
		UserID:   userID,
		Date:     input.Date,
		MealType: input.MealType,
		FoodName: input.FoodName,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
		Sodium:   input.Sodium,
		Notes:    input.Notes,
	}
	log.RecalculateTotals()

	if _, err := s.nutritionRepo.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *nutritionService) Get(ctx context.Context, userID, logID uint) (*domain.NutritionLog, error) {
	log, err := s.nutritionRepo.GetByIDForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNutritionLogNotFound
		}
		return nil, err
	}
	return log, nil
}

func (s *nutritionService) List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.NutritionLog, error) {
	return s.nutritionRepo.ListByUser(ctx, userID, filter)
}

func (s *nutritionService) ListForDate(ctx context.Context, userID uint, day time.Time) ([]domain.NutritionLog, error) {
	return s.nutritionRepo.ListByUserAndDate(ctx, userID, day)
}

func (s *nutritionService) Update(ctx context.Context, userID, logID uint, patch NutritionUpdate) (*domain.NutritionLog, error) {
	log, err := s.nutritionRepo.GetByIDForUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNutritionLogNotFound
		}
		return nil, err
	}

	applyNutritionPatch(log, patch)
	// Rederiving unconditionally keeps total_x == x * quantity no
	// matter which inputs the patch touched.
	log.RecalculateTotals()

	if err := s.nutritionRepo.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *nutritionService) Delete(ctx context.Context, userID, logID uint) error {
	err := s.nutritionRepo.DeleteForUser(ctx, logID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNutritionLogNotFound
	}
	return err
}

// DailySummary sums the stored totals over entries dated exactly day.
// No entries yields zeros, never an error.
func (s *nutritionService) DailySummary(ctx context.Context, userID uint, day time.Time) (*DailyNutritionSummary, error) {
	logs, err := s.nutritionRepo.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	summary := &DailyNutritionSummary{Date: day, EntryCount: len(logs)}
	for _, log := range logs {
		summary.TotalCalories += log.TotalCalories
		summary.TotalProtein += log.TotalProtein
		summary.TotalCarbs += log.TotalCarbs
		summary.TotalFat += log.TotalFat
	}
	return summary, nil
}

func applyNutritionPatch(log *domain.NutritionLog, patch NutritionUpdate) {
	if patch.Date != nil {
		log.Date = *patch.Date
	}
	if patch.MealType != nil {
		log.MealType = *patch.MealType
	}
	if patch.FoodName != nil {
		log.FoodName = *patch.FoodName
	}
	if patch.Quantity != nil {
		log.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		log.Unit = *patch.Unit
	}
	if patch.Calories != nil {
		log.Calories = *patch.Calories
	}
	if patch.Protein != nil {
		log.Protein = *patch.Protein
	}
	if patch.Carbs != nil {
		log.Carbs = *patch.Carbs
	}
	if patch.Fat != nil {
		log.Fat = *patch.Fat
	}
	if patch.Fiber != nil {
		log.Fiber = *patch.Fiber
	}
	if patch.Sugar != nil {
		log.Sugar = *patch.Sugar
	}
	if patch.Sodium != nil {
		log.Sodium = *patch.Sodium
	}
	if patch.Notes != nil {
		log.Notes = *patch.Notes
	}
}
