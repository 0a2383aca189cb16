package service

import (
	"context"
	"testing"
	"time"

	"fittrack/backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users *memUserRepo) uint {
	t.Helper()
	id, err := users.Create(context.Background(), &domain.User{
		Email:    "ada@example.com",
		Username: "ada",
		IsActive: true,
	})
	require.NoError(t, err)
	return id
}

func TestNutritionCreateDerivesTotals(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewNutritionService(newMemNutritionRepo(), users)

	log, err := svc.Create(ctx, userID, NutritionInput{
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		MealType: "lunch",
		FoodName: "rice",
		Quantity: 2,
		Unit:     "cup",
		Calories: 200,
		Protein:  4.5,
		Carbs:    45,
		Fat:      0.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 400.0, log.TotalCalories)
	assert.Equal(t, 9.0, log.TotalProtein)
	assert.Equal(t, 90.0, log.TotalCarbs)
	assert.Equal(t, 1.0, log.TotalFat)
}

func TestNutritionUpdateRederivesTotals(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewNutritionService(newMemNutritionRepo(), users)

	log, err := svc.Create(ctx, userID, NutritionInput{
		Date:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		MealType: "lunch",
		FoodName: "rice",
		Quantity: 2,
		Calories: 200,
	})
	require.NoError(t, err)

	// Changing only the per-unit calories must still rederive totals.
	calories := 150.0
	updated, err := svc.Update(ctx, userID, log.ID, NutritionUpdate{Calories: &calories})
	require.NoError(t, err)
	assert.Equal(t, 300.0, updated.TotalCalories)

	// So must changing only the quantity.
	quantity := 3.0
	updated, err = svc.Update(ctx, userID, log.ID, NutritionUpdate{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.TotalCalories)
}

func TestNutritionCreateValidation(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewNutritionService(newMemNutritionRepo(), users)

	_, err := svc.Create(ctx, userID, NutritionInput{MealType: "lunch", Quantity: 1})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Create(ctx, userID, NutritionInput{MealType: "lunch", FoodName: "rice", Quantity: 0})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestNutritionCreateUnknownUser(t *testing.T) {
	svc := NewNutritionService(newMemNutritionRepo(), newMemUserRepo())
	_, err := svc.Create(context.Background(), 42, NutritionInput{MealType: "lunch", FoodName: "rice", Quantity: 1})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestNutritionOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	otherID, err := users.Create(ctx, &domain.User{Email: "bob@example.com", Username: "bob"})
	require.NoError(t, err)

	svc := NewNutritionService(newMemNutritionRepo(), users)
	log, err := svc.Create(ctx, userID, NutritionInput{
		Date: time.Now(), MealType: "lunch", FoodName: "rice", Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, otherID, log.ID)
	assert.ErrorIs(t, err, ErrNutritionLogNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, otherID, log.ID), ErrNutritionLogNotFound)

	// Still there for the owner.
	_, err = svc.Get(ctx, userID, log.ID)
	assert.NoError(t, err)
}

func TestNutritionDailySummary(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewNutritionService(newMemNutritionRepo(), users)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, userID, NutritionInput{Date: day, MealType: "breakfast", FoodName: "oats", Quantity: 1, Calories: 300, Protein: 10})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, NutritionInput{Date: day, MealType: "lunch", FoodName: "rice", Quantity: 2, Calories: 200, Protein: 4})
	require.NoError(t, err)
	// Entry on another day stays out of the rollup.
	_, err = svc.Create(ctx, userID, NutritionInput{Date: day.AddDate(0, 0, 1), MealType: "lunch", FoodName: "pasta", Quantity: 1, Calories: 500})
	require.NoError(t, err)

	summary, err := svc.DailySummary(ctx, userID, day)
	require.NoError(t, err)
	assert.Equal(t, 700.0, summary.TotalCalories)
	assert.Equal(t, 18.0, summary.TotalProtein)
	assert.Equal(t, 2, summary.EntryCount)
}

func TestNutritionDailySummaryEmpty(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	userID := seedUser(t, users)
	svc := NewNutritionService(newMemNutritionRepo(), users)

	summary, err := svc.DailySummary(ctx, userID, time.Now())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalCalories)
	assert.Zero(t, summary.EntryCount)
}
