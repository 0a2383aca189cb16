package api

import (
	"errors"
	"net/http"
	"strconv"

	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// abortWithError returns a JSON error response and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// userIDFromQuery reads the acting user's id from the user_id query
// parameter. Authorization currently trusts this caller-supplied id;
// see the note on SetupRoutes.
func userIDFromQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		abortWithError(c, http.StatusBadRequest, "user_id query parameter is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "user_id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// idFromParam parses a numeric path parameter.
func idFromParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid "+name+" path parameter")
		return 0, false
	}
	return uint(id), true
}

// intFromQuery parses an optional integer query parameter.
func intFromQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// respondServiceError maps service-layer errors onto HTTP statuses per
// the error model: not-found 404, validation/conflict 400, bad
// credentials 401, anything else 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrNutritionLogNotFound),
		errors.Is(err, service.ErrBodyStatNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, err.Error())
	}
}
