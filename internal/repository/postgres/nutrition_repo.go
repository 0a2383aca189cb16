package postgres

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"gorm.io/gorm"
)

// pgNutritionRepository implements repository.NutritionRepository on gorm.
type pgNutritionRepository struct {
	db *gorm.DB
}

// NewNutritionRepository creates a Postgres-backed nutrition log repository.
func NewNutritionRepository(db *gorm.DB) repository.NutritionRepository {
	return &pgNutritionRepository{db: db}
}

func (r *pgNutritionRepository) Create(ctx context.Context, log *domain.NutritionLog) (uint, error) {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return 0, err
	}
	return log.ID, nil
}

func (r *pgNutritionRepository) GetByID(ctx context.Context, id uint) (*domain.NutritionLog, error) {
	var log domain.NutritionLog
	err := r.db.WithContext(ctx).First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *pgNutritionRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*domain.NutritionLog, error) {
	var log domain.NutritionLog
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *pgNutritionRepository) ListByUser(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.NutritionLog, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.StartDate != nil {
		query = query.Where("date >= ?", dayStart(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", dayEnd(*filter.EndDate))
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var logs []domain.NutritionLog
	err := query.Order("date DESC").Offset(filter.Offset).Limit(limit).Find(&logs).Error
	return logs, err
}

func (r *pgNutritionRepository) ListByUserAndDate(ctx context.Context, userID uint, day time.Time) ([]domain.NutritionLog, error) {
	var logs []domain.NutritionLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(day), dayEnd(day)).
		Find(&logs).Error
	return logs, err
}

func (r *pgNutritionRepository) ListBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.NutritionLog, error) {
	var logs []domain.NutritionLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(start), dayEnd(end)).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}

func (r *pgNutritionRepository) Update(ctx context.Context, log *domain.NutritionLog) error {
	log.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *pgNutritionRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.NutritionLog{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgNutritionRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.NutritionLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgNutritionRepository) ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.NutritionLog{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(day), dayEnd(day)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *pgNutritionRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.NutritionLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *pgNutritionRepository) LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error) {
	var log domain.NutritionLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log.UpdatedAt, nil
}
