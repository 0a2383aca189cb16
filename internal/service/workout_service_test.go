package service

import (
	"context"
	"testing"
	"time"

	"fittrack/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutCreate(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewWorkoutService(newMemWorkoutRepo(), users)

	workout, err := svc.Create(ctx, userID, WorkoutInput{
		Date:            time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Name:            "leg day",
		DurationMinutes: intp(60),
		Exercises: []ExerciseInput{
			{Name: "squat", Sets: 5, Reps: intp(5), Weight: floatp(100), OrderIndex: 0},
			{Name: "lunge", Sets: 3, Reps: intp(12), OrderIndex: 1},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, workout.ID)
	require.Len(t, workout.Exercises, 2)
	assert.Equal(t, "squat", workout.Exercises[0].Name)
}

func TestWorkoutCreateRequiresName(t *testing.T) {
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewWorkoutService(newMemWorkoutRepo(), users)

	_, err := svc.Create(context.Background(), userID, WorkoutInput{Date: time.Now()})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestWorkoutCreateUnknownUser(t *testing.T) {
	svc := NewWorkoutService(newMemWorkoutRepo(), newMemUserRepo())
	_, err := svc.Create(context.Background(), 42, WorkoutInput{Name: "x", Date: time.Now()})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestWorkoutUpdatePartialPatch(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewWorkoutService(newMemWorkoutRepo(), users)

	workout, err := svc.Create(ctx, userID, WorkoutInput{
		Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Name: "leg day", Notes: "heavy",
	})
	require.NoError(t, err)

	name := "push day"
	updated, err := svc.Update(ctx, userID, workout.ID, WorkoutUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "push day", updated.Name)
	assert.Equal(t, "heavy", updated.Notes)
}

func TestWorkoutOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	otherID, err := users.Create(ctx, &domain.User{Email: "bob@example.com", Username: "bob"})
	require.NoError(t, err)

	svc := NewWorkoutService(newMemWorkoutRepo(), users)
	workout, err := svc.Create(ctx, userID, WorkoutInput{Name: "leg day", Date: time.Now()})
	require.NoError(t, err)

	_, err = svc.Get(ctx, otherID, workout.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, otherID, workout.ID), ErrWorkoutNotFound)
}

func TestWorkoutDelete(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewWorkoutService(newMemWorkoutRepo(), users)

	workout, err := svc.Create(ctx, userID, WorkoutInput{Name: "leg day", Date: time.Now()})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, userID, workout.ID))
	_, err = svc.Get(ctx, userID, workout.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}
