package api

import (
	"net/http"

	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SummaryHandler serves the summary and analytics rollup endpoints.
type SummaryHandler struct {
	summaryService service.SummaryService
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// Daily handles GET /api/summary/daily/:date and
// GET /api/analytics/daily?date=.
func (h *SummaryHandler) Daily(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	raw := c.Param("date")
	if raw == "" {
		raw = c.Query("date")
	}
	day, err := service.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.summaryService.Daily(c.Request.Context(), userID, day)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Weekly handles GET /api/summary/weekly/:week_start and
// GET /api/analytics/weekly?start_date=.
func (h *SummaryHandler) Weekly(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	raw := c.Param("week_start")
	if raw == "" {
		raw = c.Query("start_date")
	}
	weekStart, err := service.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.summaryService.Weekly(c.Request.Context(), userID, weekStart)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Recent handles GET /api/summary/recent/:days.
func (h *SummaryHandler) Recent(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	days, ok := idFromParam(c, "days")
	if !ok {
		return
	}

	summary, err := h.summaryService.Recent(c.Request.Context(), userID, int(days))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Streak handles GET /api/analytics/streak.
func (h *SummaryHandler) Streak(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	streak, err := h.summaryService.Streak(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, streak)
}

// Progress handles GET /api/analytics/progress.
func (h *SummaryHandler) Progress(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	days := intFromQuery(c, "days", 30)

	progress, err := h.summaryService.Progress(c.Request.Context(), userID, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
