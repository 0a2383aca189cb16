package service

import (
	"context"
	"sort"
	"time"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/repository"
)

// In-memory repositories for service tests. They mirror the Postgres
// implementations' contracts: sentinel errors, day-window matching and
// the latest-non-null weight rule.

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayCeil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func withinDays(t, start, end time.Time) bool {
	return !t.Before(dayFloor(start)) && !t.After(dayCeil(end))
}

// --- users ---

type memUserRepo struct {
	nextID uint
	users  map[uint]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[uint]*domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (uint, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return 0, repository.ErrDuplicateKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uint) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- workouts ---

type memWorkoutRepo struct {
	nextID   uint
	workouts map[uint]*domain.Workout
}

func newMemWorkoutRepo() *memWorkoutRepo {
	return &memWorkoutRepo{nextID: 1, workouts: map[uint]*domain.Workout{}}
}

func (r *memWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (uint, error) {
	workout.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	copied := *workout
	r.workouts[workout.ID] = &copied
	return workout.ID, nil
}

func (r *memWorkoutRepo) GetByID(_ context.Context, id uint) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (r *memWorkoutRepo) GetByIDForUser(_ context.Context, id, userID uint) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok || workout.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (r *memWorkoutRepo) ListByUser(_ context.Context, userID uint, filter repository.ListFilter) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID != userID {
			continue
		}
		if filter.StartDate != nil && w.Date.Before(dayFloor(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && w.Date.After(dayCeil(*filter.EndDate)) {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memWorkoutRepo) ListByUserAndDate(_ context.Context, userID uint, day time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID && sameDay(w.Date, day) {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memWorkoutRepo) ListBetween(_ context.Context, userID uint, start, end time.Time) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID && withinDays(w.Date, start, end) {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memWorkoutRepo) ListRecent(_ context.Context, userID uint, limit int) ([]domain.Workout, error) {
	out, _ := r.ListByUser(context.Background(), userID, repository.ListFilter{})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	workout.UpdatedAt = time.Now().UTC()
	copied := *workout
	r.workouts[workout.ID] = &copied
	return nil
}

func (r *memWorkoutRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *memWorkoutRepo) DeleteForUser(_ context.Context, id, userID uint) error {
	workout, ok := r.workouts[id]
	if !ok || workout.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *memWorkoutRepo) ExistsOnDate(_ context.Context, userID uint, day time.Time) (bool, error) {
	for _, w := range r.workouts {
		if w.UserID == userID && sameDay(w.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memWorkoutRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, w := range r.workouts {
		if w.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memWorkoutRepo) LastUpdatedAt(_ context.Context, userID uint) (*time.Time, error) {
	var last *time.Time
	for _, w := range r.workouts {
		if w.UserID != userID {
			continue
		}
		t := w.UpdatedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

// --- nutrition ---

type memNutritionRepo struct {
	nextID uint
	logs   map[uint]*domain.NutritionLog
}

func newMemNutritionRepo() *memNutritionRepo {
	return &memNutritionRepo{nextID: 1, logs: map[uint]*domain.NutritionLog{}}
}

func (r *memNutritionRepo) Create(_ context.Context, log *domain.NutritionLog) (uint, error) {
	log.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	log.CreatedAt = now
	log.UpdatedAt = now
	copied := *log
	r.logs[log.ID] = &copied
	return log.ID, nil
}

func (r *memNutritionRepo) GetByID(_ context.Context, id uint) (*domain.NutritionLog, error) {
	log, ok := r.logs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *log
	return &copied, nil
}

func (r *memNutritionRepo) GetByIDForUser(_ context.Context, id, userID uint) (*domain.NutritionLog, error) {
	log, ok := r.logs[id]
	if !ok || log.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *log
	return &copied, nil
}

func (r *memNutritionRepo) ListByUser(_ context.Context, userID uint, filter repository.ListFilter) ([]domain.NutritionLog, error) {
	var out []domain.NutritionLog
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		if filter.MealType != "" && log.MealType != filter.MealType {
			continue
		}
		out = append(out, *log)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memNutritionRepo) ListByUserAndDate(_ context.Context, userID uint, day time.Time) ([]domain.NutritionLog, error) {
	var out []domain.NutritionLog
	for _, log := range r.logs {
		if log.UserID == userID && sameDay(log.Date, day) {
			out = append(out, *log)
		}
	}
	return out, nil
}

func (r *memNutritionRepo) ListBetween(_ context.Context, userID uint, start, end time.Time) ([]domain.NutritionLog, error) {
	var out []domain.NutritionLog
	for _, log := range r.logs {
		if log.UserID == userID && withinDays(log.Date, start, end) {
			out = append(out, *log)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memNutritionRepo) Update(_ context.Context, log *domain.NutritionLog) error {
	if _, ok := r.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	log.UpdatedAt = time.Now().UTC()
	copied := *log
	r.logs[log.ID] = &copied
	return nil
}

func (r *memNutritionRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.logs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *memNutritionRepo) DeleteForUser(_ context.Context, id, userID uint) error {
	log, ok := r.logs[id]
	if !ok || log.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.logs, id)
	return nil
}

func (r *memNutritionRepo) ExistsOnDate(_ context.Context, userID uint, day time.Time) (bool, error) {
	for _, log := range r.logs {
		if log.UserID == userID && sameDay(log.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memNutritionRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, log := range r.logs {
		if log.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memNutritionRepo) LastUpdatedAt(_ context.Context, userID uint) (*time.Time, error) {
	var last *time.Time
	for _, log := range r.logs {
		if log.UserID != userID {
			continue
		}
		t := log.UpdatedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

// --- body stats ---

type memBodyStatRepo struct {
	nextID uint
	stats  map[uint]*domain.BodyStat
}

func newMemBodyStatRepo() *memBodyStatRepo {
	return &memBodyStatRepo{nextID: 1, stats: map[uint]*domain.BodyStat{}}
}

func (r *memBodyStatRepo) Create(_ context.Context, stat *domain.BodyStat) (uint, error) {
	stat.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	if stat.CreatedAt.IsZero() {
		stat.CreatedAt = now
	}
	stat.UpdatedAt = now
	copied := *stat
	r.stats[stat.ID] = &copied
	return stat.ID, nil
}

func (r *memBodyStatRepo) GetByID(_ context.Context, id uint) (*domain.BodyStat, error) {
	stat, ok := r.stats[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *stat
	return &copied, nil
}

func (r *memBodyStatRepo) GetByIDForUser(_ context.Context, id, userID uint) (*domain.BodyStat, error) {
	stat, ok := r.stats[id]
	if !ok || stat.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *stat
	return &copied, nil
}

func (r *memBodyStatRepo) ListByUser(_ context.Context, userID uint, _ repository.ListFilter) ([]domain.BodyStat, error) {
	var out []domain.BodyStat
	for _, stat := range r.stats {
		if stat.UserID == userID {
			out = append(out, *stat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *memBodyStatRepo) Latest(_ context.Context, userID uint) (*domain.BodyStat, error) {
	var latest *domain.BodyStat
	for _, stat := range r.stats {
		if stat.UserID != userID {
			continue
		}
		if latest == nil || stat.Date.After(latest.Date) {
			latest = stat
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *memBodyStatRepo) LatestWeighingOnOrBefore(_ context.Context, userID uint, day time.Time) (*domain.BodyStat, error) {
	var latest *domain.BodyStat
	for _, stat := range r.stats {
		if stat.UserID != userID || stat.Weight == nil || stat.Date.After(dayCeil(day)) {
			continue
		}
		if latest == nil || stat.CreatedAt.After(latest.CreatedAt) {
			latest = stat
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *memBodyStatRepo) ListWeighingsBetween(_ context.Context, userID uint, start, end time.Time) ([]domain.BodyStat, error) {
	var out []domain.BodyStat
	for _, stat := range r.stats {
		if stat.UserID == userID && stat.Weight != nil && withinDays(stat.Date, start, end) {
			out = append(out, *stat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memBodyStatRepo) Update(_ context.Context, stat *domain.BodyStat) error {
	if _, ok := r.stats[stat.ID]; !ok {
		return repository.ErrNotFound
	}
	stat.UpdatedAt = time.Now().UTC()
	copied := *stat
	r.stats[stat.ID] = &copied
	return nil
}

func (r *memBodyStatRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.stats[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.stats, id)
	return nil
}

func (r *memBodyStatRepo) DeleteForUser(_ context.Context, id, userID uint) error {
	stat, ok := r.stats[id]
	if !ok || stat.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.stats, id)
	return nil
}

func (r *memBodyStatRepo) ExistsOnDate(_ context.Context, userID uint, day time.Time) (bool, error) {
	for _, stat := range r.stats {
		if stat.UserID == userID && sameDay(stat.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBodyStatRepo) CountByUser(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, stat := range r.stats {
		if stat.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memBodyStatRepo) LastUpdatedAt(_ context.Context, userID uint) (*time.Time, error) {
	var last *time.Time
	for _, stat := range r.stats {
		if stat.UserID != userID {
			continue
		}
		t := stat.UpdatedAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

// --- hasher ---

// plainHasher keeps auth tests fast; it stores passwords verbatim.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (plainHasher) Compare(hashed, password string) error {
	if hashed != "hash:"+password {
		return ErrAuthenticationFailed
	}
	return nil
}
