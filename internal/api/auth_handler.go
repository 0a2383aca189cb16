package api

import (
	"net/http"

	"fittrack/backend/internal/domain"
	"fittrack/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email          string               `json:"email" binding:"required,email"`
	Username       string               `json:"username" binding:"required"`
	Password       string               `json:"password" binding:"required,min=8"`
	FullName       string               `json:"full_name"`
	Goal           domain.Goal          `json:"goal" binding:"omitempty,oneof=maintain lose gain"`
	ActivityLevel  domain.ActivityLevel `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	TargetWeight   *float64             `json:"target_weight"`
	TargetCalories *int                 `json:"target_calories"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updateProfileRequest struct {
	Email          *string               `json:"email" binding:"omitempty,email"`
	Username       *string               `json:"username"`
	FullName       *string               `json:"full_name"`
	Goal           *domain.Goal          `json:"goal" binding:"omitempty,oneof=maintain lose gain"`
	ActivityLevel  *domain.ActivityLevel `json:"activity_level" binding:"omitempty,oneof=sedentary light moderate active very_active"`
	TargetWeight   *float64              `json:"target_weight"`
	TargetCalories *int                  `json:"target_calories"`
}

// Register handles POST /api/users/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:          req.Email,
		Username:       req.Username,
		Password:       req.Password,
		FullName:       req.FullName,
		Goal:           req.Goal,
		ActivityLevel:  req.ActivityLevel,
		TargetWeight:   req.TargetWeight,
		TargetCalories: req.TargetCalories,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// GetProfile handles GET /api/users/me.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PUT /api/users/me.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Email:          req.Email,
		Username:       req.Username,
		FullName:       req.FullName,
		Goal:           req.Goal,
		ActivityLevel:  req.ActivityLevel,
		TargetWeight:   req.TargetWeight,
		TargetCalories: req.TargetCalories,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteAccount handles DELETE /api/users/me.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}
