package api

import (
	"net/http"

	"fittrack/backend/internal/repository"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the fitness session endpoints.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type exerciseRequest struct {
	Name            string   `json:"name" binding:"required"`
	Sets            int      `json:"sets" binding:"required,min=1"`
	Reps            *int     `json:"reps"`
	Weight          *float64 `json:"weight"`
	DurationSeconds *int     `json:"duration_seconds"`
	Distance        *float64 `json:"distance"`
	Notes           string   `json:"notes"`
	OrderIndex      int      `json:"order"`
}

type createWorkoutRequest struct {
	Date            string            `json:"date" binding:"required"`
	Name            string            `json:"name" binding:"required"`
	DurationMinutes *int              `json:"duration_minutes"`
	Notes           string            `json:"notes"`
	Exercises       []exerciseRequest `json:"exercises"`
}

type updateWorkoutRequest struct {
	Date            *string `json:"date"`
	Name            *string `json:"name"`
	DurationMinutes *int    `json:"duration_minutes"`
	Notes           *string `json:"notes"`
}

// Create handles POST /api/fitness.
func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req createWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	date, err := service.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	input := service.WorkoutInput{
		Date:            date,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Exercises:       make([]service.ExerciseInput, len(req.Exercises)),
	}
	for i, e := range req.Exercises {
		input.Exercises[i] = service.ExerciseInput{
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

	workout, err := h.workoutService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// List handles GET /api/fitness.
func (h *WorkoutHandler) List(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	filter := repository.ListFilter{
		Offset: intFromQuery(c, "skip", 0),
		Limit:  intFromQuery(c, "limit", 100),
	}
	if raw := c.Query("start_date"); raw != "" {
		start, err := service.ParseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := service.ParseDate(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		filter.EndDate = &end
	}

	workouts, err := h.workoutService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// ListRecent handles GET /api/fitness/recent/:limit.
func (h *WorkoutHandler) ListRecent(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	limit, ok := idFromParam(c, "limit")
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListRecent(c.Request.Context(), userID, int(limit))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// Get handles GET /api/fitness/:id.
func (h *WorkoutHandler) Get(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	workoutID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), userID, workoutID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Update handles PUT /api/fitness/:id.
func (h *WorkoutHandler) Update(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	workoutID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	var req updateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch := service.WorkoutUpdate{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}
	if req.Date != nil {
		date, err := service.ParseDate(*req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Date = &date
	}

	workout, err := h.workoutService.Update(c.Request.Context(), userID, workoutID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// Delete handles DELETE /api/fitness/:id.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	workoutID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), userID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fitness session deleted successfully"})
}
