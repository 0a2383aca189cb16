package postgres

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"

	"gorm.io/gorm"
)

// pgBodyStatRepository implements repository.BodyStatRepository on gorm.
type pgBodyStatRepository struct {
	db *gorm.DB
}

// NewBodyStatRepository creates a Postgres-backed body stat repository.
func NewBodyStatRepository(db *gorm.DB) repository.BodyStatRepository {
	return &pgBodyStatRepository{db: db}
}

func (r *pgBodyStatRepository) Create(ctx context.Context, stat *domain.BodyStat) (uint, error) {
	if err := r.db.WithContext(ctx).Create(stat).Error; err != nil {
		return 0, err
	}
	return stat.ID, nil
}

func (r *pgBodyStatRepository) GetByID(ctx context.Context, id uint) (*domain.BodyStat, error) {
	var stat domain.BodyStat
	err := r.db.WithContext(ctx).First(&stat, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stat, nil
}

func (r *pgBodyStatRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*domain.BodyStat, error) {
	var stat domain.BodyStat
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stat, nil
}

func (r *pgBodyStatRepository) ListByUser(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.BodyStat, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
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

	var stats []domain.BodyStat
	err := query.Order("date DESC").Offset(filter.Offset).Limit(limit).Find(&stats).Error
	return stats, err
}

func (r *pgBodyStatRepository) Latest(ctx context.Context, userID uint) (*domain.BodyStat, error) {
	var stat domain.BodyStat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stat, nil
}

// LatestWeighingOnOrBefore resolves "weight as of day" by the
// latest-non-null rule: creation order decides, not row date.
func (r *pgBodyStatRepository) LatestWeighingOnOrBefore(ctx context.Context, userID uint, day time.Time) (*domain.BodyStat, error) {
	var stat domain.BodyStat
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date <= ? AND weight IS NOT NULL", userID, dayEnd(day)).
		Order("created_at DESC").
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &stat, nil
}

func (r *pgBodyStatRepository) ListWeighingsBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.BodyStat, error) {
	var stats []domain.BodyStat
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ? AND weight IS NOT NULL", userID, dayStart(start), dayEnd(end)).
		Order("date ASC").
		Find(&stats).Error
	return stats, err
}

func (r *pgBodyStatRepository) Update(ctx context.Context, stat *domain.BodyStat) error {
	stat.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(stat).Error
}

func (r *pgBodyStatRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.BodyStat{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgBodyStatRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.BodyStat{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgBodyStatRepository) ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BodyStat{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, dayStart(day), dayEnd(day)).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *pgBodyStatRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.BodyStat{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *pgBodyStatRepository) LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error) {
	var stat domain.BodyStat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stat.UpdatedAt, nil
}
