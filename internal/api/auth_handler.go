package api

import (
	"net/http"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency plus the cookie
// parameters shared by register/login/refresh/logout.
type AuthHandler struct {
	authService  service.AuthService
	cookieTTL    time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. secureCookie should be true in
// production so the token cookie is only sent over TLS.
func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieTTL:    cookieTTL,
		secureCookie: secureCookie,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FitnessGoal     string `json:"fitnessGoal"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name          *string                   `json:"name"`
	Email         *string                   `json:"email"`
	FitnessGoal   *string                   `json:"fitnessGoal"`
	Age           *int                      `json:"age"`
	Weight        *float64                  `json:"weight"`
	Height        *float64                  `json:"height"`
	ActivityLevel *string                   `json:"activityLevel"`
	Notifications *domain.NotificationPrefs `json:"notifications"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

// UserResponse excludes sensitive info like the password hash.
type UserResponse struct {
	ID            string                   `json:"_id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	Role          domain.Role              `json:"role"`
	FitnessGoal   domain.FitnessGoal       `json:"fitnessGoal,omitempty"`
	Age           *int                     `json:"age,omitempty"`
	Weight        *float64                 `json:"weight,omitempty"`
	Height        *float64                 `json:"height,omitempty"`
	ActivityLevel domain.ActivityLevel     `json:"activityLevel"`
	Notifications domain.NotificationPrefs `json:"notifications"`
	AvatarURL     string                   `json:"avatarUrl,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:            user.ID.Hex(),
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		FitnessGoal:   user.FitnessGoal,
		Age:           user.Age,
		Weight:        user.Weight,
		Height:        user.Height,
		ActivityLevel: user.ActivityLevel,
		Notifications: user.Notifications,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// --- Cookie helpers ---

func (h *AuthHandler) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookieName, "", -1, "/", "", h.secureCookie, true)
}

// --- Handler Methods ---

// Register creates a new account, sets the auth cookie and returns the
// public user fields plus the token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FitnessGoal:     domain.FitnessGoal(req.FitnessGoal),
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"_id":         user.ID.Hex(),
			"name":        user.Name,
			"email":       user.Email,
			"fitnessGoal": user.FitnessGoal,
			"token":       token,
		},
	})
}

// Login authenticates and sets the auth cookie. A wrong password and an
// unknown email produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	h.setTokenCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"_id":         user.ID.Hex(),
			"name":        user.Name,
			"email":       user.Email,
			"fitnessGoal": user.FitnessGoal,
			"token":       token,
		},
	})
}

// Logout clears the auth cookie. Idempotent; always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Refresh requires a valid cookie token (the header fallback is deliberately
// not accepted here) and issues a replacement with a reset expiry.
func (h *AuthHandler) Refresh(c *gin.Context) {
	cookie, err := c.Cookie(TokenCookieName)
	if err != nil || cookie == "" {
		abortWithError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	newToken, err := h.authService.Refresh(c.Request.Context(), cookie)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	h.setTokenCookie(c, newToken)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": newToken})
}

// GetMe returns the caller's own record.
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	resp := MapUserToResponse(user)
	if url, err := h.authService.AvatarURL(c.Request.Context(), user); err == nil {
		resp.AvatarURL = url
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

// UpdateMe applies a partial profile update.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateProfileInput{
		Name:          req.Name,
		Email:         req.Email,
		Age:           req.Age,
		Weight:        req.Weight,
		Height:        req.Height,
		Notifications: req.Notifications,
	}
	if req.FitnessGoal != nil {
		goal := domain.FitnessGoal(*req.FitnessGoal)
		input.FitnessGoal = &goal
	}
	if req.ActivityLevel != nil {
		level := domain.ActivityLevel(*req.ActivityLevel)
		input.ActivityLevel = &level
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user.ID, input)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapUserToResponse(updated)})
}

// ChangePassword verifies the current password before storing a new hash.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// DeleteAccount removes the caller's account and everything they own, then
// clears the cookie.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		abortServiceError(c, err)
		return
	}

	h.clearTokenCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}

// Stats returns counts over the caller's owned resources.
func (h *AuthHandler) Stats(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	stats, err := h.authService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// UploadAvatar returns a presigned PUT URL; the client uploads the image
// directly to object storage.
func (h *AuthHandler) UploadAvatar(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	upload, err := h.authService.RequestAvatarUpload(c.Request.Context(), user.ID, req.ContentType)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": upload})
}

// Admin is the admin-gated probe endpoint.
func (h *AuthHandler) Admin(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Admin access granted",
		"user":    MapUserToResponse(user),
	})
}
