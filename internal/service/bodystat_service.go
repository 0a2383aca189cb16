package service

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
)

var ErrBodyStatNotFound = errors.New("body stat not found")

// BodyStatInput carries the fields accepted when recording a snapshot.
type BodyStatInput struct {
	Date                   time.Time
	Weight                 *float64
	BodyFatPercentage      *float64
	MuscleMass             *float64
	BoneDensity            *float64
	Height                 *float64
	Chest                  *float64
	Waist                  *float64
	Hips                   *float64
	BicepLeft              *float64
	BicepRight             *float64
	ThighLeft              *float64
	ThighRight             *float64
	BloodPressureSystolic  *int
	BloodPressureDiastolic *int
	RestingHeartRate       *int
	WaterIntake            *float64
	SleepHours             *float64
	Notes                  string
}

// BodyStatUpdate is a partial patch. Nil fields are left untouched.
type BodyStatUpdate struct {
	Date                   *time.Time
	Weight                 *float64
	BodyFatPercentage      *float64
	MuscleMass             *float64
	BoneDensity            *float64
	Height                 *float64
	Chest                  *float64
	Waist                  *float64
	Hips                   *float64
	BicepLeft              *float64
	BicepRight             *float64
	ThighLeft              *float64
	ThighRight             *float64
	BloodPressureSystolic  *int
	BloodPressureDiastolic *int
	RestingHeartRate       *int
	WaterIntake            *float64
	SleepHours             *float64
	Notes                  *string
}

// WeightPoint is one entry in a weight history series.
type WeightPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
}

// WeightHistory is the trailing-window series of non-null weights.
type WeightHistory struct {
	PeriodDays int           `json:"period_days"`
	StartDate  time.Time     `json:"start_date"`
	EndDate    time.Time     `json:"end_date"`
	History    []WeightPoint `json:"weight_history"`
	DataPoints int           `json:"data_points"`
}

// BodyStatService exposes ownership-scoped body stat CRUD plus the
// weight history series.
type BodyStatService interface {
	Create(ctx context.Context, userID uint, input BodyStatInput) (*domain.BodyStat, error)
	Get(ctx context.Context, userID, statID uint) (*domain.BodyStat, error)
	List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.BodyStat, error)
	Latest(ctx context.Context, userID uint) (*domain.BodyStat, error)
	Update(ctx context.Context, userID, statID uint, patch BodyStatUpdate) (*domain.BodyStat, error)
	Delete(ctx context.Context, userID, statID uint) error
	WeightHistory(ctx context.Context, userID uint, days int) (*WeightHistory, error)
}

type bodyStatService struct {
	statRepo repository.BodyStatRepository
	userRepo repository.UserRepository
}

// NewBodyStatService creates a new BodyStatService.
func NewBodyStatService(statRepo repository.BodyStatRepository, userRepo repository.UserRepository) BodyStatService {
	return &bodyStatService{statRepo: statRepo, userRepo: userRepo}
}

func (s *bodyStatService) Create(ctx context.Context, userID uint, input BodyStatInput) (*domain.BodyStat, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stat := &domain.BodyStat{
		UserID:                 userID,
		Date:                   input.Date,
		Weight:                 input.Weight,
		BodyFatPercentage:      input.BodyFatPercentage,
		MuscleMass:             input.MuscleMass,
		BoneDensity:            input.BoneDensity,
		Height:                 input.Height,
		Chest:                  input.Chest,
		Waist:                  input.Waist,
		Hips:                   input.Hips,
		BicepLeft:              input.BicepLeft,
		BicepRight:             input.BicepRight,
		ThighLeft:              input.ThighLeft,
		ThighRight:             input.ThighRight,
		BloodPressureSystolic:  input.BloodPressureSystolic,
		BloodPressureDiastolic: input.BloodPressureDiastolic,
		RestingHeartRate:       input.RestingHeartRate,
		WaterIntake:            input.WaterIntake,
		SleepHours:             input.SleepHours,
		Notes:                  input.Notes,
	}

	if _, err := s.statRepo.Create(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *bodyStatService) Get(ctx context.Context, userID, statID uint) (*domain.BodyStat, error) {
	stat, err := s.statRepo.GetByIDForUser(ctx, statID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBodyStatNotFound
		}
		return nil, err
	}
	return stat, nil
}

func (s *bodyStatService) List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.BodyStat, error) {
	return s.statRepo.ListByUser(ctx, userID, filter)
}

func (s *bodyStatService) Latest(ctx context.Context, userID uint) (*domain.BodyStat, error) {
	stat, err := s.statRepo.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBodyStatNotFound
		}
		return nil, err
	}
	return stat, nil
}

func (s *bodyStatService) Update(ctx context.Context, userID, statID uint, patch BodyStatUpdate) (*domain.BodyStat, error) {
	stat, err := s.statRepo.GetByIDForUser(ctx, statID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBodyStatNotFound
		}
		return nil, err
	}

	applyBodyStatPatch(stat, patch)

	if err := s.statRepo.Update(ctx, stat); err != nil {
		return nil, err
	}
	return stat, nil
}

func (s *bodyStatService) Delete(ctx context.Context, userID, statID uint) error {
	err := s.statRepo.DeleteForUser(ctx, statID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrBodyStatNotFound
	}
	return err
}

// WeightHistory returns the non-null weights of the trailing window,
// oldest first.
func (s *bodyStatService) WeightHistory(ctx context.Context, userID uint, days int) (*WeightHistory, error) {
	if days <= 0 {
		days = 30
	}
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	stats, err := s.statRepo.ListWeighingsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	history := &WeightHistory{
		PeriodDays: days,
		StartDate:  start,
		EndDate:    end,
		History:    make([]WeightPoint, 0, len(stats)),
	}
	for _, stat := range stats {
		if stat.Weight == nil {
			continue
		}
		history.History = append(history.History, WeightPoint{Date: stat.Date, Weight: *stat.Weight})
	}
	history.DataPoints = len(history.History)
	return history, nil
}

func applyBodyStatPatch(stat *domain.BodyStat, patch BodyStatUpdate) {
	if patch.Date != nil {
		stat.Date = *patch.Date
	}
	if patch.Weight != nil {
		stat.Weight = patch.Weight
	}
	if patch.BodyFatPercentage != nil {
		stat.BodyFatPercentage = patch.BodyFatPercentage
	}
	if patch.MuscleMass != nil {
		stat.MuscleMass = patch.MuscleMass
	}
	if patch.BoneDensity != nil {
		stat.BoneDensity = patch.BoneDensity
	}
	if patch.Height != nil {
		stat.Height = patch.Height
	}
	if patch.Chest != nil {
		stat.Chest = patch.Chest
	}
	if patch.Waist != nil {
		stat.Waist = patch.Waist
	}
	if patch.Hips != nil {
		stat.Hips = patch.Hips
	}
	if patch.BicepLeft != nil {
		stat.BicepLeft = patch.BicepLeft
	}
	if patch.BicepRight != nil {
		stat.BicepRight = patch.BicepRight
	}
	if patch.ThighLeft != nil {
		stat.ThighLeft = patch.ThighLeft
	}
	if patch.ThighRight != nil {
		stat.ThighRight = patch.ThighRight
	}
	if patch.BloodPressureSystolic != nil {
		stat.BloodPressureSystolic = patch.BloodPressureSystolic
	}
	if patch.BloodPressureDiastolic != nil {
		stat.BloodPressureDiastolic = patch.BloodPressureDiastolic
	}
	if patch.RestingHeartRate != nil {
		stat.RestingHeartRate = patch.RestingHeartRate
	}
	if patch.WaterIntake != nil {
		stat.WaterIntake = patch.WaterIntake
	}
	if patch.SleepHours != nil {
		stat.SleepHours = patch.SleepHours
	}
	if patch.Notes != nil {
		stat.Notes = *patch.Notes
	}
}
