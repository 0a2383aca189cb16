package api

import (
	"net/http"

	"fittrack/backend/internal/repository"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// NutritionHandler serves the nutrition log endpoints.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

type createNutritionRequest struct {
	Date     string  `json:"date" binding:"required"`
	MealType string  `json:"meal_type" binding:"required"`
	FoodName string  `json:"food_name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
	Notes    string  `json:"notes"`
}

type updateNutritionRequest struct {
	Date     *string  `json:"date"`
	MealType *string  `json:"meal_type"`
	FoodName *string  `json:"food_name"`
	Quantity *float64 `json:"quantity" binding:"omitempty,gt=0"`
	Unit     *string  `json:"unit"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Sugar    *float64 `json:"sugar"`
	Sodium   *float64 `json:"sodium"`
	Notes    *string  `json:"notes"`
}

// Create handles POST /api/nutrition.
func (h *NutritionHandler) Create(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req createNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	date, err := service.ParseDate(req.Date)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.nutritionService.Create(c.Request.Context(), userID, service.NutritionInput{
		Date:     date,
		MealType: req.MealType,
		FoodName: req.FoodName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		Sugar:    req.Sugar,
		Sodium:   req.Sodium,
		Notes:    req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

// List handles GET /api/nutrition.
func (h *NutritionHandler) List(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	filter := repository.ListFilter{
		Offset:   intFromQuery(c, "skip", 0),
		Limit:    intFromQuery(c, "limit", 100),
		MealType: c.Query("meal_type"),
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

	logs, err := h.nutritionService.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListForDate handles GET /api/nutrition/daily/:date.
func (h *NutritionHandler) ListForDate(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	day, err := service.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	logs, err := h.nutritionService.ListForDate(c.Request.Context(), userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// DailySummary handles GET /api/nutrition/summary/daily/:date.
func (h *NutritionHandler) DailySummary(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	day, err := service.ParseDate(c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.nutritionService.DailySummary(c.Request.Context(), userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Get handles GET /api/nutrition/:id.
func (h *NutritionHandler) Get(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	logID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	log, err := h.nutritionService.Get(c.Request.Context(), userID, logID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Update handles PUT /api/nutrition/:id.
func (h *NutritionHandler) Update(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	logID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	var req updateNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patch := service.NutritionUpdate{
		MealType: req.MealType,
		FoodName: req.FoodName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Fiber:    req.Fiber,
		Sugar:    req.Sugar,
		Sodium:   req.Sodium,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		date, err := service.ParseDate(*req.Date)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		patch.Date = &date
	}

	log, err := h.nutritionService.Update(c.Request.Context(), userID, logID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// Delete handles DELETE /api/nutrition/:id.
func (h *NutritionHandler) Delete(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	logID, ok := idFromParam(c, "id")
	if !ok {
		return
	}

	if err := h.nutritionService.Delete(c.Request.Context(), userID, logID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nutrition log deleted successfully"})
}
