package api

import (
	"fmt"
	"net/http"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler holds the workout service dependency. baseURL is used to
// build share links.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	baseURL        string
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, baseURL string) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, baseURL: baseURL}
}

// --- DTOs ---

type WorkoutEntryRequest struct {
	Exercise string  `json:"exercise"`
	Sets     int     `json:"sets"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

type CreateWorkoutRequest struct {
	Name      string                `json:"name"`
	Date      *time.Time            `json:"date"`
	Exercises []WorkoutEntryRequest `json:"exercises"`
}

type UpdateWorkoutRequest struct {
	Name      *string                `json:"name"`
	Date      *time.Time             `json:"date"`
	Exercises *[]WorkoutEntryRequest `json:"exercises"`
}

// WorkoutEntryResponse is an entry with its exercise populated. Exercise is
// null when the referenced exercise no longer exists.
type WorkoutEntryResponse struct {
	Exercise *ExerciseResponse `json:"exercise"`
	Sets     int               `json:"sets"`
	Reps     int               `json:"reps"`
	Weight   float64           `json:"weight"`
}

// WorkoutResponse is the read model: populated entries plus the derived
// calorie total.
type WorkoutResponse struct {
	ID            string                 `json:"id"`
	User          string                 `json:"user"`
	Name          string                 `json:"name"`
	Exercises     []WorkoutEntryResponse `json:"exercises"`
	Date          time.Time              `json:"date"`
	TotalCalories float64                `json:"totalCalories"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// MapWorkoutToResponse converts a service.WorkoutDetail to the response DTO.
func MapWorkoutToResponse(detail *service.WorkoutDetail) WorkoutResponse {
	if detail == nil || detail.Workout == nil {
		return WorkoutResponse{}
	}
	entries := make([]WorkoutEntryResponse, len(detail.Entries))
	for i, entry := range detail.Entries {
		var ex *ExerciseResponse
		if entry.Exercise != nil {
			mapped := MapExerciseToResponse(entry.Exercise)
			ex = &mapped
		}
		entries[i] = WorkoutEntryResponse{
			Exercise: ex,
			Sets:     entry.Sets,
			Reps:     entry.Reps,
			Weight:   entry.Weight,
		}
	}
	w := detail.Workout
	return WorkoutResponse{
		ID:            w.ID.Hex(),
		User:          w.UserID.Hex(),
		Name:          w.Name,
		Exercises:     entries,
		Date:          w.Date,
		TotalCalories: detail.TotalCalories,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func mapEntries(entries []WorkoutEntryRequest) ([]domain.WorkoutEntry, error) {
	result := make([]domain.WorkoutEntry, len(entries))
	for i, entry := range entries {
		id, err := parseObjectID(entry.Exercise)
		if err != nil {
			return nil, err
		}
		result[i] = domain.WorkoutEntry{
			ExerciseID: id,
			Sets:       entry.Sets,
			Reps:       entry.Reps,
			Weight:     entry.Weight,
		}
	}
	return result, nil
}

// --- Handler Methods ---

// List returns all of the caller's workouts with calorie totals.
func (h *WorkoutHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	details, err := h.workoutService.List(c.Request.Context(), user.ID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	responses := make([]WorkoutResponse, len(details))
	for i := range details {
		responses[i] = MapWorkoutToResponse(&details[i])
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(responses), "data": responses})
}

// Get returns a single owned workout with its calorie total.
func (h *WorkoutHandler) Get(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	workoutID, ok := paramID(c)
	if !ok {
		return
	}

	detail, err := h.workoutService.Get(c.Request.Context(), user.ID, workoutID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapWorkoutToResponse(detail)})
}

// Create adds a new workout; every exercise reference must resolve to an
// exercise owned by the caller.
func (h *WorkoutHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	entries, err := mapEntries(req.Exercises)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	detail, err := h.workoutService.Create(c.Request.Context(), user.ID, service.CreateWorkoutInput{
		Name:    req.Name,
		Date:    req.Date,
		Entries: entries,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": MapWorkoutToResponse(detail)})
}

// Update applies a partial update; exercise references are re-validated
// when the entry list changes.
func (h *WorkoutHandler) Update(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	workoutID, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateWorkoutInput{
		Name: req.Name,
		Date: req.Date,
	}
	if req.Exercises != nil {
		entries, err := mapEntries(*req.Exercises)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
			return
		}
		input.Entries = &entries
	}

	detail, err := h.workoutService.Update(c.Request.Context(), user.ID, workoutID, input)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapWorkoutToResponse(detail)})
}

// Delete removes an owned workout.
func (h *WorkoutHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	workoutID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.workoutService.Delete(c.Request.Context(), user.ID, workoutID); err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// Share returns a public link for an owned workout.
func (h *WorkoutHandler) Share(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	workoutID, ok := paramID(c)
	if !ok {
		return
	}

	// Ownership check; only the owner can mint a share link.
	if _, err := h.workoutService.Get(c.Request.Context(), user.ID, workoutID); err != nil {
		abortServiceError(c, err)
		return
	}

	shareLink := fmt.Sprintf("%s/api/share/workouts/%s", h.baseURL, workoutID.Hex())
	c.JSON(http.StatusOK, gin.H{"success": true, "shareLink": shareLink})
}

// GetShared serves a shared workout without authentication.
func (h *WorkoutHandler) GetShared(c *gin.Context) {
	workoutID, ok := paramID(c)
	if !ok {
		return
	}

	detail, err := h.workoutService.GetShared(c.Request.Context(), workoutID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapWorkoutToResponse(detail)})
}
