package api

import (
	"net/http"

	"fittrack/backend/internal/repository"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// BodyStatHandler serves the body measurement endpoints.
type BodyStatHandler struct {
	statService service.BodyStatService
}

// NewBodyStatHandler creates a new BodyStatHandler.
func NewBodyStatHandler(statService service.BodyStatService) *BodyStatHandler {
	return &BodyStatHandler{statService: statService}
}

type bodyStatFields struct {
	Weight                 *float64 `json:"weight"`
	BodyFatPercentage      *float64 `json:"body_fat_percentage"`
	MuscleMass             *float64 `json:"muscle_mass"`
	BoneDensity            *float64 `json:"bone_density"`
	Height                 *float64 `json:"height"`
	Chest                  *float64 `json:"chest"`
	Waist                  *float64 `json:"waist"`
	Hips                   *float64 `json:"hips"`
	BicepLeft              *float64 `json:"bicep_left"`
	BicepRight             *float64 `json:"bicep_right"`
	ThighLeft              *float64 `json:"thigh_left"`
	ThighRight             *float64 `json:"thigh_right"`
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
	RestingHeartRate       *int     `json:"resting_heart_rate"`
	WaterIntake            *float64 `json:"water_intake"`
	SleepHours             *float64 `json:"sleep_hours"`
}

type createBodyStatRequest struct {
	Date string `json:"date" binding:"required"`
	bodyStatFields
	Notes string `json:"notes"`
}

type updateBodyStatRequest struct {
	Date *string `json:"date"`
	bodyStatFields
	Notes *string `json:"notes"`
}

// Create handles POST /api/body.
func (h *BodyStatHandler) Create(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req createBodyStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	date, err := service.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	stat, err := h.statService.Create(c.Request.Context(), userID, service.BodyStatInput{
		Date:                   date,
		Weight:                 req.Weight,
		BodyFatPercentage:      req.BodyFatPercentage,
		MuscleMass:             req.MuscleMass,
		BoneDensity:            req.BoneDensity,
		Height:                 req.Height,
		Chest:                  req.Chest,
		Waist:                  req.Waist,
		Hips:                   req.Hips,
		BicepLeft:              req.BicepLeft,
		BicepRight:             req.BicepRight,
		ThighLeft:              req.ThighLeft,
		ThighRight:             req.ThighRight,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		RestingHeartRate:       req.RestingHeartRate,
		WaterIntake:            req.WaterIntake,
		SleepHours:             req.SleepHours,
		Notes:                  req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, stat)
}

// List handles GET /api/body.
func (h *BodyStatHandler) List(c *gin.Context) {
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

	stats, err := h.statService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Latest handles GET /api/body/latest.
func (h *BodyStatHandler) Latest(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	stat, err := h.statService.Latest(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

// WeightHistory handles GET /api/body/weight/history.
func (h *BodyStatHandler) WeightHistory(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	days := intFromQuery(c, "days", 30)

	history, err := h.statService.WeightHistory(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Get handles GET /api/body/:id.
func (h *BodyStatHandler) Get(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	statID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	stat, err := h.statService.Get(c.Request.Context(), userID, statID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

// Update handles PUT /api/body/:id.
func (h *BodyStatHandler) Update(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	statID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	var req updateBodyStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch := service.BodyStatUpdate{
		Weight:                 req.Weight,
		BodyFatPercentage:      req.BodyFatPercentage,
		MuscleMass:             req.MuscleMass,
		BoneDensity:            req.BoneDensity,
		Height:                 req.Height,
		Chest:                  req.Chest,
		Waist:                  req.Waist,
		Hips:                   req.Hips,
		BicepLeft:              req.BicepLeft,
		BicepRight:             req.BicepRight,
		ThighLeft:              req.ThighLeft,
		ThighRight:             req.ThighRight,
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		RestingHeartRate:       req.RestingHeartRate,
		WaterIntake:            req.WaterIntake,
		SleepHours:             req.SleepHours,
		Notes:                  req.Notes,
	}
	if req.Date != nil {
		date, err := service.ParseDate(*req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Date = &date
	}

	stat, err := h.statService.Update(c.Request.Context(), userID, statID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stat)
}

// Delete handles DELETE /api/body/:id.
func (h *BodyStatHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	statID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	if err := h.statService.Delete(c.Request.Context(), userID, statID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Body stat deleted successfully"})
}
