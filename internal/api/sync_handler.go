package api

import (
	"encoding/json"
	"net/http"

	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SyncHandler serves the offline reconciliation endpoints.
type SyncHandler struct {
	syncService service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

type syncRequest struct {
	UserID uint                         `json:"user_id" binding:"required"`
	Data   map[string][]json.RawMessage `json:"data"`
}

// Sync handles POST /api/sync/sync.
func (h *SyncHandler) Sync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.syncService.Sync(c.Request.Context(), req.UserID, req.Data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Status handles GET /api/sync/sync/status.
func (h *SyncHandler) Status(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	status, err := h.syncService.Status(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
