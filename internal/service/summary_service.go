package service

import (
	"context"
	"errors"
	"time"

	"fittrack/backend/internal/repository"
)

const streakLookbackDays = 30

// DailySummary is the rollup for one calendar day. Weight follows the
// latest-non-null rule and is nil when no weighing exists on or before
// the day.
type DailySummary struct {
	Date                 time.Time `json:"date"`
	TotalCalories        float64   `json:"total_calories"`
	TotalProtein         float64   `json:"total_protein"`
	TotalCarbs           float64   `json:"total_carbs"`
	TotalFat             float64   `json:"total_fat"`
	WorkoutCount         int       `json:"workout_count"`
	TotalWorkoutDuration int       `json:"total_workout_duration"`
	Weight               *float64  `json:"weight"`
}

// WeeklySummary covers the 7-day window [WeekStart, WeekStart+6]. The
// daily averages divide the window total by the fixed window length;
// days without entries count as zero rather than being excluded.
type WeeklySummary struct {
	WeekStart            time.Time `json:"week_start"`
	WeekEnd              time.Time `json:"week_end"`
	AvgDailyCalories     float64   `json:"avg_daily_calories"`
	AvgDailyProtein      float64   `json:"avg_daily_protein"`
	TotalWorkouts        int       `json:"total_workouts"`
	TotalWorkoutDuration int       `json:"total_workout_duration"`
	WeightChange         *float64  `json:"weight_change"`
}

// Streak is the count of consecutive days, ending today, on which the
// user logged anything at all.
type Streak struct {
	UserID        uint      `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LastUpdated   time.Time `json:"last_updated"`
}

// PeriodTotals aggregates a multi-day window.
type PeriodTotals struct {
	Calories               float64 `json:"calories"`
	Protein                float64 `json:"protein"`
	Workouts               int     `json:"workouts"`
	WorkoutDurationMinutes int     `json:"workout_duration_minutes"`
}

// PeriodAverages are the window totals spread over the full window.
type PeriodAverages struct {
	DailyCalories   float64 `json:"daily_calories"`
	DailyProtein    float64 `json:"daily_protein"`
	WorkoutsPerWeek float64 `json:"workouts_per_week"`
}

// RecentSummary is the rollup for the trailing N-day window.
type RecentSummary struct {
	PeriodDays     int            `json:"period_days"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	DailySummaries []DailySummary `json:"daily_summaries"`
	Totals         PeriodTotals   `json:"totals"`
	Averages       PeriodAverages `json:"averages"`
	WeightTrend    []WeightPoint  `json:"weight_trend"`
}

// Progress reports calorie and weight trends over the trailing window.
// WeightChange is last minus first non-null weight, or 0 when fewer
// than two weighings fall inside the window.
type Progress struct {
	UserID           uint           `json:"user_id"`
	PeriodDays       int            `json:"period_days"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          time.Time      `json:"end_date"`
	DailySummaries   []DailySummary `json:"daily_summaries"`
	CaloriesTrend    []float64      `json:"calories_trend"`
	WeightTrend      []float64      `json:"weight_trend"`
	AvgDailyCalories float64        `json:"avg_daily_calories"`
	WeightChange     float64        `json:"weight_change"`
}

// SummaryService derives read-only rollups from raw rows. It never
// mutates state, and an empty period yields zeros, not errors.
type SummaryService interface {
	Daily(ctx context.Context, userID uint, day time.Time) (*DailySummary, error)
	Weekly(ctx context.Context, userID uint, weekStart time.Time) (*WeeklySummary, error)
	Recent(ctx context.Context, userID uint, days int) (*RecentSummary, error)
	Streak(ctx context.Context, userID uint) (*Streak, error)
	Progress(ctx context.Context, userID uint, days int) (*Progress, error)
}

type summaryService struct {
	userRepo      repository.UserRepository
	workoutRepo   repository.WorkoutRepository
	nutritionRepo repository.NutritionRepository
	statRepo      repository.BodyStatRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	nutritionRepo repository.NutritionRepository,
	statRepo repository.BodyStatRepository,
) SummaryService {
	return &summaryService{
		userRepo:      userRepo,
		workoutRepo:   workoutRepo,
		nutritionRepo: nutritionRepo,
		statRepo:      statRepo,
	}
}

func (s *summaryService) Daily(ctx context.Context, userID uint, day time.Time) (*DailySummary, error) {
	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.dailyUnchecked(ctx, userID, day)
}

// dailyUnchecked computes the per-day rollup without re-verifying the
// user; multi-day callers verify once up front.
func (s *summaryService) dailyUnchecked(ctx context.Context, userID uint, day time.Time) (*DailySummary, error) {
	summary := &DailySummary{Date: day}

	logs, err := s.nutritionRepo.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	for _, log := range logs {
		summary.TotalCalories += log.TotalCalories
		summary.TotalProtein += log.TotalProtein
		summary.TotalCarbs += log.TotalCarbs
		summary.TotalFat += log.TotalFat
	}

	workouts, err := s.workoutRepo.ListByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	summary.WorkoutCount = len(workouts)
	for _, w := range workouts {
		if w.DurationMinutes != nil {
			summary.TotalWorkoutDuration += *w.DurationMinutes
		}
	}

	weight, err := s.weightAsOf(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	summary.Weight = weight

	return summary, nil
}

func (s *summaryService) Weekly(ctx context.Context, userID uint, weekStart time.Time) (*WeeklySummary, error) {
	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	summary := &WeeklySummary{WeekStart: weekStart, WeekEnd: weekEnd}

	logs, err := s.nutritionRepo.ListBetween(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	var totalCalories, totalProtein float64
	for _, log := range logs {
		totalCalories += log.TotalCalories
		totalProtein += log.TotalProtein
	}
	// Fixed 7-day divisor: empty days count as zero, not excluded.
	summary.AvgDailyCalories = totalCalories / 7
	summary.AvgDailyProtein = totalProtein / 7

	workouts, err := s.workoutRepo.ListBetween(ctx, userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	summary.TotalWorkouts = len(workouts)
	for _, w := range workouts {
		if w.DurationMinutes != nil {
			summary.TotalWorkoutDuration += *w.DurationMinutes
		}
	}

	startWeight, err := s.weightAsOf(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}
	endWeight, err := s.weightAsOf(ctx, userID, weekEnd)
	if err != nil {
		return nil, err
	}
	if startWeight != nil && endWeight != nil {
		change := *endWeight - *startWeight
		summary.WeightChange = &change
	}

	return summary, nil
}

func (s *summaryService) Recent(ctx context.Context, userID uint, days int) (*RecentSummary, error) {
	if days <= 0 {
		days = 1
	}
	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	summaries, err := s.dailyRange(ctx, userID, start, days)
	if err != nil {
		return nil, err
	}

	out := &RecentSummary{
		PeriodDays:     days,
		StartDate:      start,
		EndDate:        end,
		DailySummaries: summaries,
	}
	for _, d := range summaries {
		out.Totals.Calories += d.TotalCalories
		out.Totals.Protein += d.TotalProtein
		out.Totals.Workouts += d.WorkoutCount
		out.Totals.WorkoutDurationMinutes += d.TotalWorkoutDuration
	}
	out.Averages.DailyCalories = out.Totals.Calories / float64(days)
	out.Averages.DailyProtein = out.Totals.Protein / float64(days)
	out.Averages.WorkoutsPerWeek = float64(out.Totals.Workouts) / float64(days) * 7

	stats, err := s.statRepo.ListWeighingsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	out.WeightTrend = make([]WeightPoint, 0, len(stats))
	for _, stat := range stats {
		if stat.Weight == nil {
			continue
		}
		out.WeightTrend = append(out.WeightTrend, WeightPoint{Date: stat.Date, Weight: *stat.Weight})
	}

	return out, nil
}

// Streak scans backward from today, at most 30 days, and stops at the
// first day without any nutrition log, workout or body stat. A gap
// today means the streak is zero.
func (s *summaryService) Streak(ctx context.Context, userID uint) (*Streak, error) {
	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	today := time.Now()
	streak := 0
	for i := 0; i < streakLookbackDays; i++ {
		day := today.AddDate(0, 0, -i)
		active, err := s.hasAnyEntry(ctx, userID, day)
		if err != nil {
			return nil, err
		}
		if !active {
			break
		}
		streak++
	}

	return &Streak{UserID: userID, CurrentStreak: streak, LastUpdated: today}, nil
}

func (s *summaryService) Progress(ctx context.Context, userID uint, days int) (*Progress, error) {
	if days <= 0 {
		days = 30
	}
	if err := s.verifyUser(ctx, userID); err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1))

	summaries, err := s.dailyRange(ctx, userID, start, days)
	if err != nil {
		return nil, err
	}

	out := &Progress{
		UserID:         userID,
		PeriodDays:     days,
		StartDate:      start,
		EndDate:        end,
		DailySummaries: summaries,
		CaloriesTrend:  make([]float64, 0, days),
		WeightTrend:    make([]float64, 0, days),
	}
	for _, d := range summaries {
		out.CaloriesTrend = append(out.CaloriesTrend, d.TotalCalories)
		if d.Weight != nil {
			out.WeightTrend = append(out.WeightTrend, *d.Weight)
		}
	}

	if len(out.CaloriesTrend) > 0 {
		var sum float64
		for _, c := range out.CaloriesTrend {
			sum += c
		}
		out.AvgDailyCalories = sum / float64(len(out.CaloriesTrend))
	}
	if len(out.WeightTrend) > 1 {
		out.WeightChange = out.WeightTrend[len(out.WeightTrend)-1] - out.WeightTrend[0]
	}

	return out, nil
}

func (s *summaryService) dailyRange(ctx context.Context, userID uint, start time.Time, days int) ([]DailySummary, error) {
	summaries := make([]DailySummary, 0, days)
	for i := 0; i < days; i++ {
		daily, err := s.dailyUnchecked(ctx, userID, start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *daily)
	}
	return summaries, nil
}

func (s *summaryService) hasAnyEntry(ctx context.Context, userID uint, day time.Time) (bool, error) {
	if ok, err := s.nutritionRepo.ExistsOnDate(ctx, userID, day); err != nil || ok {
		return ok, err
	}
	if ok, err := s.workoutRepo.ExistsOnDate(ctx, userID, day); err != nil || ok {
		return ok, err
	}
	return s.statRepo.ExistsOnDate(ctx, userID, day)
}

func (s *summaryService) weightAsOf(ctx context.Context, userID uint, day time.Time) (*float64, error) {
	stat, err := s.statRepo.LatestWeighingOnOrBefore(ctx, userID, day)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return stat.Weight, nil
}

func (s *summaryService) verifyUser(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
