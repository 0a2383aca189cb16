package repository

import (
	"context"
	"time"

	"fittrack/backend/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicateKey = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ListFilter narrows ownership-scoped list queries. Zero values mean
// "no constraint"; Limit<=0 falls back to the implementation default.
type ListFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	MealType  string // nutrition logs only
	Offset    int
	Limit     int
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
}

// WorkoutRepository defines the interface for interacting with workout
// data. Create persists the workout together with its exercises in one
// transaction. The unscoped GetByID/Delete exist for the sync
// reconciler, which looks rows up by server id alone.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.Workout, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*domain.Workout, error)
	ListByUser(ctx context.Context, userID uint, filter ListFilter) ([]domain.Workout, error)
	ListByUserAndDate(ctx context.Context, userID uint, day time.Time) ([]domain.Workout, error)
	ListBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.Workout, error)
	ListRecent(ctx context.Context, userID uint, limit int) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id uint) error
	DeleteForUser(ctx context.Context, id, userID uint) error
	ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error)
}

// NutritionRepository defines the interface for interacting with
// nutrition log data.
type NutritionRepository interface {
	Create(ctx context.Context, log *domain.NutritionLog) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.NutritionLog, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*domain.NutritionLog, error)
	ListByUser(ctx context.Context, userID uint, filter ListFilter) ([]domain.NutritionLog, error)
	ListByUserAndDate(ctx context.Context, userID uint, day time.Time) ([]domain.NutritionLog, error)
	ListBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.NutritionLog, error)
	Update(ctx context.Context, log *domain.NutritionLog) error
	Delete(ctx context.Context, id uint) error
	DeleteForUser(ctx context.Context, id, userID uint) error
	ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error)
}

// BodyStatRepository defines the interface for interacting with body
// measurement snapshots. LatestWeighingOnOrBefore implements the
// latest-non-null rule for weight: among rows dated on or before the
// given day with a non-null weight, the most recently created wins.
type BodyStatRepository interface {
	Create(ctx context.Context, stat *domain.BodyStat) (uint, error)
	GetByID(ctx context.Context, id uint) (*domain.BodyStat, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*domain.BodyStat, error)
	ListByUser(ctx context.Context, userID uint, filter ListFilter) ([]domain.BodyStat, error)
	Latest(ctx context.Context, userID uint) (*domain.BodyStat, error)
	LatestWeighingOnOrBefore(ctx context.Context, userID uint, day time.Time) (*domain.BodyStat, error)
	ListWeighingsBetween(ctx context.Context, userID uint, start, end time.Time) ([]domain.BodyStat, error)
	Update(ctx context.Context, stat *domain.BodyStat) error
	Delete(ctx context.Context, id uint) error
	DeleteForUser(ctx context.Context, id, userID uint) error
	ExistsOnDate(ctx context.Context, userID uint, day time.Time) (bool, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	LastUpdatedAt(ctx context.Context, userID uint) (*time.Time, error)
}
