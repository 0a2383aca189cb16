package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"go.uber.org/zap"
)

// SyncOperation tags a client-originated mutation.
type SyncOperation string

const (
	OpInsert SyncOperation = "INSERT"
	OpUpdate SyncOperation = "UPDATE"
	OpDelete SyncOperation = "DELETE"
)

// Table names accepted in a sync batch.
const (
	TableWorkouts  = "workouts"
	TableNutrition = "nutrition"
	TableBodyStats = "body_stats"
)

// SyncedItem reports one successfully reconciled operation.
type SyncedItem struct {
	Table     string        `json:"table"`
	RecordID  *uint         `json:"record_id"`
	Operation SyncOperation `json:"operation"`
}

// FailedItem reports one operation that could not be applied.
type FailedItem struct {
	Table    string `json:"table"`
	RecordID *uint  `json:"record_id"`
	Error    string `json:"error"`
}

// SyncResult is the outcome of a whole batch. Counts always add up to
// the number of submitted items; the timestamp is taken once at the
// end of the batch.
type SyncResult struct {
	Success       bool         `json:"success"`
	SyncedCount   int          `json:"synced_count"`
	FailedCount   int          `json:"failed_count"`
	SyncedItems   []SyncedItem `json:"synced_items"`
	FailedItems   []FailedItem `json:"failed_items"`
	SyncTimestamp time.Time    `json:"sync_timestamp"`
}

// SyncStatus summarizes the server-side record counts for a user.
type SyncStatus struct {
	UserID         uint       `json:"user_id"`
	TotalRecords   int64      `json:"total_records"`
	WorkoutCount   int64      `json:"workout_count"`
	NutritionCount int64      `json:"nutrition_count"`
	BodyStatCount  int64      `json:"body_stat_count"`
	LastSyncTime   *time.Time `json:"last_sync_time"`
	SyncHealthy    bool       `json:"sync_healthy"`
}

// SyncService reconciles batches of client-originated mutations
// against server state. Items are applied independently, each in its
// own transaction: one item's failure never aborts the batch, and
// partial success is reported per item so the client can retry only
// the failed subset.
type SyncService interface {
	Sync(ctx context.Context, userID uint, data map[string][]json.RawMessage) (*SyncResult, error)
	Status(ctx context.Context, userID uint) (*SyncStatus, error)
}

type syncService struct {
	userRepo      repository.UserRepository
	workoutRepo   repository.WorkoutRepository
	nutritionRepo repository.NutritionRepository
	statRepo      repository.BodyStatRepository
	log           *zap.SugaredLogger
}

// NewSyncService creates a new SyncService.
func NewSyncService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	nutritionRepo repository.NutritionRepository,
	statRepo repository.BodyStatRepository,
	log *zap.SugaredLogger,
) SyncService {
	return &syncService{
		userRepo:      userRepo,
		workoutRepo:   workoutRepo,
		nutritionRepo: nutritionRepo,
		statRepo:      statRepo,
		log:           log,
	}
}

// syncEnvelope is the part of every item shared across tables.
type syncEnvelope struct {
	LocalID   *uint         `json:"local_id"`
	Operation SyncOperation `json:"operation"`
}

// Sync applies the batch. An unknown user aborts before any item is
// touched; after that, every item is attempted.
func (s *syncService) Sync(ctx context.Context, userID uint, data map[string][]json.RawMessage) (*SyncResult, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	result := &SyncResult{
		SyncedItems: []SyncedItem{},
		FailedItems: []FailedItem{},
	}

	// Stable table order keeps responses deterministic.
	tables := make([]string, 0, len(data))
	for table := range data {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	for _, table := range tables {
		for _, raw := range data[table] {
			var env syncEnvelope
			if err := json.Unmarshal(raw, &env); err != nil {
				result.FailedItems = append(result.FailedItems, FailedItem{Table: table, Error: err.Error()})
				continue
			}
			if env.Operation == "" {
				env.Operation = OpInsert
			}

			if err := s.applyItem(ctx, userID, table, env, raw); err != nil {
				s.log.Warnw("sync item failed",
					"user_id", userID, "table", table, "operation", env.Operation, "error", err)
				result.FailedItems = append(result.FailedItems, FailedItem{
					Table:    table,
					RecordID: env.LocalID,
					Error:    err.Error(),
				})
				continue
			}
			result.SyncedItems = append(result.SyncedItems, SyncedItem{
				Table:     table,
				RecordID:  env.LocalID,
				Operation: env.Operation,
			})
		}
	}

	result.Success = true
	result.SyncedCount = len(result.SyncedItems)
	result.FailedCount = len(result.FailedItems)
	result.SyncTimestamp = time.Now().UTC()
	return result, nil
}

// applyItem dispatches one operation. A table name outside the known
// set is a no-op recorded as synced, mirroring long-standing client
// expectations.
func (s *syncService) applyItem(ctx context.Context, userID uint, table string, env syncEnvelope, raw json.RawMessage) error {
	switch table {
	case TableWorkouts:
		return s.applyWorkout(ctx, userID, env, raw)
	case TableNutrition:
		return s.applyNutrition(ctx, userID, env, raw)
	case TableBodyStats:
		return s.applyBodyStat(ctx, userID, env, raw)
	default:
		return nil
	}
}

// --- workouts ---

type workoutSyncPayload struct {
	Date            *string             `json:"date"`
	Name            *string             `json:"name"`
	DurationMinutes *int                `json:"duration_minutes"`
	Notes           *string             `json:"notes"`
	Exercises       []exerciseSyncEntry `json:"exercises"`
}

type exerciseSyncEntry struct {
	Name            string   `json:"name"`
	Sets            int      `json:"sets"`
	Reps            *int     `json:"reps"`
	Weight          *float64 `json:"weight"`
	DurationSeconds *int     `json:"duration_seconds"`
	Distance        *float64 `json:"distance"`
	Notes           string   `json:"notes"`
	OrderIndex      int      `json:"order"`
}

func (s *syncService) applyWorkout(ctx context.Context, userID uint, env syncEnvelope, raw json.RawMessage) error {
	var payload workoutSyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	switch env.Operation {
	case OpInsert:
		if payload.Name == nil {
			return fmt.Errorf("workout name is required")
		}
		if payload.Date == nil {
			return fmt.Errorf("workout date is required")
		}
		date, err := ParseDate(*payload.Date)
		if err != nil {
			return err
		}
		workout := &domain.Workout{
			UserID:          userID,
			Date:            date,
			Name:            *payload.Name,
			DurationMinutes: payload.DurationMinutes,
		}
		if payload.Notes != nil {
			workout.Notes = *payload.Notes
		}
		workout.Exercises = make([]domain.Exercise, len(payload.Exercises))
		for i, e := range payload.Exercises {
			workout.Exercises[i] = domain.Exercise{
				Name:            e.Name,
				Sets:            e.Sets,
				Reps:            e.Reps,
				Weight:          e.Weight,
				DurationSeconds: e.DurationSeconds,
				Distance:        e.Distance,
				Notes:           e.Notes,
				OrderIndex:      e.OrderIndex,
			}
		}
		_, err = s.workoutRepo.Create(ctx, workout)
		return err

	case OpUpdate:
		if env.LocalID == nil {
			return nil
		}
		workout, err := s.workoutRepo.GetByID(ctx, *env.LocalID)
		if err != nil {
			// A vanished row is skipped, not failed. Clients replay
			// whole journals; rejecting stale updates would wedge them.
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		if payload.Name != nil {
			workout.Name = *payload.Name
		}
		if payload.Date != nil {
			date, err := ParseDate(*payload.Date)
			if err != nil {
				return err
			}
			workout.Date = date
		}
		if payload.DurationMinutes != nil {
			workout.DurationMinutes = payload.DurationMinutes
		}
		if payload.Notes != nil {
			workout.Notes = *payload.Notes
		}
		return s.workoutRepo.Update(ctx, workout)

	case OpDelete:
		if env.LocalID == nil {
			return nil
		}
		err := s.workoutRepo.Delete(ctx, *env.LocalID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err

	default:
		return fmt.Errorf("unknown operation %q", env.Operation)
	}
}

// --- nutrition ---

type nutritionSyncPayload struct {
	Date     *string  `json:"date"`
	MealType *string  `json:"meal_type"`
	FoodName *string  `json:"food_name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`
	Notes    *string  `json:"notes"`
}

func (s *syncService) applyNutrition(ctx context.Context, userID uint, env syncEnvelope, raw json.RawMessage) error {
	var payload nutritionSyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	switch env.Operation {
	case OpInsert:
		if payload.FoodName == nil {
			return fmt.Errorf("food_name is required")
		}
		if payload.MealType == nil {
			return fmt.Errorf("meal_type is required")
		}
		if payload.Date == nil {
			return fmt.Errorf("nutrition date is required")
		}
		date, err := ParseDate(*payload.Date)
		if err != nil {
			return err
		}
		log := &domain.NutritionLog{
			UserID:   userID,
			Date:     date,
			MealType: *payload.MealType,
			FoodName: *payload.FoodName,
			Quantity: 1,
		}
		if payload.Quantity != nil {
			log.Quantity = *payload.Quantity
		}
		if payload.Unit != nil {
			log.Unit = *payload.Unit
		}
		if payload.Calories != nil {
			log.Calories = *payload.Calories
		}
		if payload.Protein != nil {
			log.Protein = *payload.Protein
		}
		if payload.Carbs != nil {
			log.Carbs = *payload.Carbs
		}
		if payload.Fat != nil {
			log.Fat = *payload.Fat
		}
		if payload.Fiber != nil {
			log.Fiber = *payload.Fiber
		}
		if payload.Sugar != nil {
			log.Sugar = *payload.Sugar
		}
		if payload.Sodium != nil {
			log.Sodium = *payload.Sodium
		}
		if payload.Notes != nil {
			log.Notes = *payload.Notes
		}
		log.RecalculateTotals()
		_, err = s.nutritionRepo.Create(ctx, log)
		return err

	case OpUpdate:
		if env.LocalID == nil {
			return nil
		}
		log, err := s.nutritionRepo.GetByID(ctx, *env.LocalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		patch := NutritionUpdate{
			MealType: payload.MealType,
			FoodName: payload.FoodName,
			Quantity: payload.Quantity,
			Unit:     payload.Unit,
			Calories: payload.Calories,
			Protein:  payload.Protein,
			Carbs:    payload.Carbs,
			Fat:      payload.Fat,
			Fiber:    payload.Fiber,
			Sugar:    payload.Sugar,
			Sodium:   payload.Sodium,
			Notes:    payload.Notes,
		}
		if payload.Date != nil {
			date, err := ParseDate(*payload.Date)
			if err != nil {
				return err
			}
			patch.Date = &date
		}
		applyNutritionPatch(log, patch)
		log.RecalculateTotals()
		return s.nutritionRepo.Update(ctx, log)

	case OpDelete:
		if env.LocalID == nil {
			return nil
		}
		err := s.nutritionRepo.Delete(ctx, *env.LocalID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err

	default:
		return fmt.Errorf("unknown operation %q", env.Operation)
	}
}

// --- body stats ---

type bodyStatSyncPayload struct {
	Date                   *string  `json:"date"`
	Weight                 *float64 `json:"weight"`
	BodyFatPercentage      *float64 `json:"body_fat_percentage"`
	MuscleMass             *float64 `json:"muscle_mass"`
	BoneDensity            *float64 `json:"bone_density"`
	Height                 *float64 `json:"height"`
	Chest                  *float64 `json:"chest"`
	Waist                  *float64 `json:"waist"`
	Hips                   *float64 `json:"hips"`
	BicepLeft              *float64 `json:"bicep_left"`
	BicepRight             *float64 `json:"bicep_right"`
	ThighLeft              *float64 `json:"thigh_left"`
	ThighRight             *float64 `json:"thigh_right"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
	RestingHeartRate       *int     `json:"resting_heart_rate"`
	WaterIntake            *float64 `json:"water_intake"`
	SleepHours             *float64 `json:"sleep_hours"`
	Notes                  *string  `json:"notes"`
}

func (s *syncService) applyBodyStat(ctx context.Context, userID uint, env syncEnvelope, raw json.RawMessage) error {
	var payload bodyStatSyncPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	switch env.Operation {
	case OpInsert:
		if payload.Date == nil {
			return fmt.Errorf("body stat date is required")
		}
		date, err := ParseDate(*payload.Date)
		if err != nil {
			return err
		}
		stat := &domain.BodyStat{
			UserID:                 userID,
			Date:                   date,
			Weight:                 payload.Weight,
			BodyFatPercentage:      payload.BodyFatPercentage,
			MuscleMass:             payload.MuscleMass,
			BoneDensity:            payload.BoneDensity,
			Height:                 payload.Height,
			Chest:                  payload.Chest,
			Waist:                  payload.Waist,
			Hips:                   payload.Hips,
			BicepLeft:              payload.BicepLeft,
			BicepRight:             payload.BicepRight,
			ThighLeft:              payload.ThighLeft,
			ThighRight:             payload.ThighRight,
			BloodPressureSystolic:  payload.BloodPressureSystolic,
			BloodPressureDiastolic: payload.BloodPressureDiastolic,
			RestingHeartRate:       payload.RestingHeartRate,
			WaterIntake:            payload.WaterIntake,
			SleepHours:             payload.SleepHours,
		}
		if payload.Notes != nil {
			stat.Notes = *payload.Notes
		}
		_, err = s.statRepo.Create(ctx, stat)
		return err

	case OpUpdate:
		if env.LocalID == nil {
			return nil
		}
		stat, err := s.statRepo.GetByID(ctx, *env.LocalID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return err
		}
		patch := BodyStatUpdate{
			Weight:                 payload.Weight,
			BodyFatPercentage:      payload.BodyFatPercentage,
			MuscleMass:             payload.MuscleMass,
			BoneDensity:            payload.BoneDensity,
			Height:                 payload.Height,
			Chest:                  payload.Chest,
			Waist:                  payload.Waist,
			Hips:                   payload.Hips,
			BicepLeft:              payload.BicepLeft,
			BicepRight:             payload.BicepRight,
			ThighLeft:              payload.ThighLeft,
			ThighRight:             payload.ThighRight,
			BloodPressureSystolic:  payload.BloodPressureSystolic,
			BloodPressureDiastolic: payload.BloodPressureDiastolic,
			RestingHeartRate:       payload.RestingHeartRate,
			WaterIntake:            payload.WaterIntake,
			SleepHours:             payload.SleepHours,
			Notes:                  payload.Notes,
		}
		if payload.Date != nil {
			date, err := ParseDate(*payload.Date)
			if err != nil {
				return err
			}
			patch.Date = &date
		}
		applyBodyStatPatch(stat, patch)
		return s.statRepo.Update(ctx, stat)

	case OpDelete:
		if env.LocalID == nil {
			return nil
		}
		err := s.statRepo.Delete(ctx, *env.LocalID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err

	default:
		return fmt.Errorf("unknown operation %q", env.Operation)
	}
}

// Status reports per-table record counts and the most recent
// modification time across all tables.
func (s *syncService) Status(ctx context.Context, userID uint) (*SyncStatus, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	workouts, err := s.workoutRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	nutrition, err := s.nutritionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lastSync *time.Time
	for _, fetch := range []func(context.Context, uint) (*time.Time, error){
		s.workoutRepo.LastUpdatedAt,
		s.nutritionRepo.LastUpdatedAt,
		s.statRepo.LastUpdatedAt,
	} {
		t, err := fetch(ctx, userID)
		if err != nil {
			return nil, err
		}
		if t != nil && (lastSync == nil || t.After(*lastSync)) {
			lastSync = t
		}
	}

	return &SyncStatus{
		UserID:         userID,
		TotalRecords:   workouts + nutrition + stats,
		WorkoutCount:   workouts,
		NutritionCount: nutrition,
		BodyStatCount:  stats,
		LastSyncTime:   lastSync,
		SyncHealthy:    true,
	}, nil
}
