package service

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
)

var ErrWorkoutNotFound = errors.New("fitness session not found")

// ExerciseInput is one exercise inside a workout creation request.
type ExerciseInput struct {
	Name            string
	Sets            int
	Reps            *int
	Weight          *float64
	DurationSeconds *int
	Distance        *float64
	Notes           string
	OrderIndex      int
}

// WorkoutInput carries the fields accepted when creating a workout.
type WorkoutInput struct {
	Date            time.Time
	Name            string
	DurationMinutes *int
	Notes           string
	Exercises       []ExerciseInput
}

// WorkoutUpdate is a partial patch. Nil fields are left untouched.
type WorkoutUpdate struct {
	Date            *time.Time
	Name            *string
	DurationMinutes *int
	Notes           *string
}

// WorkoutService exposes ownership-scoped workout CRUD.
type WorkoutService interface {
	Create(ctx context.Context, userID uint, input WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, userID, workoutID uint) (*domain.Workout, error)
	List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.Workout, error)
	ListRecent(ctx context.Context, userID uint, limit int) ([]domain.Workout, error)
	Update(ctx context.Context, userID, workoutID uint, patch WorkoutUpdate) (*domain.Workout, error)
	Delete(ctx context.Context, userID, workoutID uint) error
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	userRepo    repository.UserRepository
}

// NewWorkoutService creates a new WorkoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, userRepo repository.UserRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo, userRepo: userRepo}
}

// Create persists the workout and its exercise list atomically.
func (s *workoutService) Create(ctx context.Context, userID uint, input WorkoutInput) (*domain.Workout, error) {
	if input.Name == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	workout := &domain.Workout{
		UserID:          userID,
		Date:            input.Date,
		Name:            input.Name,
		DurationMinutes: input.DurationMinutes,
		Notes:           input.Notes,
		Exercises:       buildExercises(input.Exercises),
	}

	if _, err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) Get(ctx context.Context, userID, workoutID uint) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByIDForUser(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID uint, filter repository.ListFilter) ([]domain.Workout, error) {
	return s.workoutRepo.ListByUser(ctx, userID, filter)
}

func (s *workoutService) ListRecent(ctx context.Context, userID uint, limit int) ([]domain.Workout, error) {
	return s.workoutRepo.ListRecent(ctx, userID, limit)
}

func (s *workoutService) Update(ctx context.Context, userID, workoutID uint, patch WorkoutUpdate) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByIDForUser(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	applyWorkoutPatch(workout, patch)

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) Delete(ctx context.Context, userID, workoutID uint) error {
	err := s.workoutRepo.DeleteForUser(ctx, workoutID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

func buildExercises(inputs []ExerciseInput) []domain.Exercise {
	exercises := make([]domain.Exercise, len(inputs))
	for i, in := range inputs {
		exercises[i] = domain.Exercise{
			Name:            in.Name,
			Sets:            in.Sets,
			Reps:            in.Reps,
			Weight:          in.Weight,
			DurationSeconds: in.DurationSeconds,
			Distance:        in.Distance,
			Notes:           in.Notes,
			OrderIndex:      in.OrderIndex,
		}
	}
	return exercises
}

func applyWorkoutPatch(workout *domain.Workout, patch WorkoutUpdate) {
	if patch.Date != nil {
		workout.Date = *patch.Date
	}
	if patch.Name != nil {
		workout.Name = *patch.Name
	}
	if patch.DurationMinutes != nil {
		workout.DurationMinutes = patch.DurationMinutes
	}
	if patch.Notes != nil {
		workout.Notes = *patch.Notes
	}
}
