package postgres

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"gorm.io/gorm"
)

const defaultListLimit = 100

// pgWorkoutRepository implements repository.WorkoutRepository on gorm.
type pgWorkoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a Postgres-backed workout repository.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &pgWorkoutRepository{db: db}
}

// Create persists the workout and its exercises in one transaction.
func (r *pgWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(workout).Error
	})
	if err != nil {
		return 0, err
	}
	return workout.ID, nil
}

func (r *pgWorkoutRepository) GetByID(ctx context.Context, id uint) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.preloaded(ctx).First(&workout, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *pgWorkoutRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*domain.Workout, error) {
	var workout domain.Workout
	err := r.preloaded(ctx).Where("id = ? AND user_id = ?", id, userID).First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *pgWorkoutRepository) ListByUser(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.Workout, error) {
	query := r.preloaded(ctx).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", dayStart(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", dayEnd(*filter.EndDate))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var workouts []domain.Workout
	err := query.Order("date DESC").Offset(filter.Offset).Limit(limit).Find(&workouts).Error
	return workouts, err
}

func (r *pgWorkoutRepository) ListByUserAndDate(ctx context.Context, userID uint, day time.Time) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := r.preloaded(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(day), dayEnd(day)).
		Find(&workouts).Error
	return workouts, err
}

func (r *pgWorkoutRepository) ListBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.Workout, error) {
	var workouts []domain.Workout
	err := r.preloaded(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(start), dayEnd(end)).
		Order("date ASC").
		Find(&workouts).Error
	return workouts, err
}

func (r *pgWorkoutRepository) ListRecent(ctx context.Context, userID uint, limit int) ([]domain.Workout, error) {
	if limit <= 0 {
		limit = 5
	}
	var workouts []domain.Workout
	err := r.preloaded(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&workouts).Error
	return workouts, err
}

func (r *pgWorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	workout.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Omit("Exercises").Save(workout).Error
}

func (r *pgWorkoutRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteWhere(ctx, "id = ?", id)
}

func (r *pgWorkoutRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	return r.deleteWhere(ctx, "id = ? AND user_id = ?", id, userID)
}

// deleteWhere removes matching workouts along with their exercises.
func (r *pgWorkoutRepository) deleteWhere(ctx context.Context, query string, args ...interface{}) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var workout domain.Workout
		if err := tx.Where(query, args...).First(&workout).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}
		if err := tx.Where("workout_id = ?", workout.ID).Delete(&domain.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&workout).Error
	})
}

func (r *pgWorkoutRepository) ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Workout{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(day), dayEnd(day)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *pgWorkoutRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Workout{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *pgWorkoutRepository) LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error) {
	var workout domain.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&workout).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workout.UpdatedAt, nil
}

func (r *pgWorkoutRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	})
}
