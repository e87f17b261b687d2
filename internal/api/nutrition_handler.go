package api

import (
	"net/http"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// NutritionHandler holds the nutrition service dependency.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// --- DTOs ---

type CreateNutritionRequest struct {
	Food     string     `json:"food"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fats     float64    `json:"fats"`
	Date     *time.Time `json:"date"`
}

type UpdateNutritionRequest struct {
	Food     *string    `json:"food"`
	Calories *float64   `json:"calories"`
	Protein  *float64   `json:"protein"`
	Carbs    *float64   `json:"carbs"`
	Fats     *float64   `json:"fats"`
	Date     *time.Time `json:"date"`
}

type NutritionResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Food      string    `json:"food"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fats      float64   `json:"fats"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func MapNutritionToResponse(entry *domain.NutritionLog) NutritionResponse {
	if entry == nil {
		return NutritionResponse{}
	}
	return NutritionResponse{
		ID:        entry.ID.Hex(),
		User:      entry.UserID.Hex(),
		Food:      entry.Food,
		Calories:  entry.Calories,
		Protein:   entry.Protein,
		Carbs:     entry.Carbs,
		Fats:      entry.Fats,
		Date:      entry.Date,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

// --- Handler Methods ---

// List returns the caller's nutrition logs, optionally filtered to a single
// day via ?date=YYYY-MM-DD.
func (h *NutritionHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var date *time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	logs, err := h.nutritionService.List(c.Request.Context(), user.ID, date)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	responses := make([]NutritionResponse, len(logs))
	for i := range logs {
		responses[i] = MapNutritionToResponse(&logs[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(responses), "data": responses})
}

// Create logs a new food entry for the caller.
func (h *NutritionHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req CreateNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.nutritionService.Create(c.Request.Context(), user.ID, service.CreateNutritionInput{
		Food:     req.Food,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		Date:     req.Date,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": MapNutritionToResponse(entry)})
}

// Update applies a partial update to an owned log entry.
func (h *NutritionHandler) Update(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	entryID, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateNutritionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := h.nutritionService.Update(c.Request.Context(), user.ID, entryID, service.UpdateNutritionInput{
		Food:     req.Food,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		Date:     req.Date,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapNutritionToResponse(entry)})
}

// Delete removes an owned log entry.
func (h *NutritionHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	entryID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.nutritionService.Delete(c.Request.Context(), user.ID, entryID); err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
