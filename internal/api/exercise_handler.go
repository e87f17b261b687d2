package api

import (
	"net/http"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name           string  `json:"name"`
	MuscleGroup    string  `json:"muscleGroup"`
	Equipment      string  `json:"equipment"`
	Instructions   string  `json:"instructions"`
	CaloriesPerRep float64 `json:"caloriesPerRep"`
}

type UpdateExerciseRequest struct {
	Name           *string  `json:"name"`
	MuscleGroup    *string  `json:"muscleGroup"`
	Equipment      *string  `json:"equipment"`
	Instructions   *string  `json:"instructions"`
	CaloriesPerRep *float64 `json:"caloriesPerRep"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID             string             `json:"id"`
	User           string             `json:"user"`
	Name           string             `json:"name"`
	MuscleGroup    domain.MuscleGroup `json:"muscleGroup"`
	Equipment      domain.Equipment   `json:"equipment"`
	Instructions   string             `json:"instructions,omitempty"`
	CaloriesPerRep float64            `json:"caloriesPerRep"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:             ex.ID.Hex(),
		User:           ex.UserID.Hex(),
		Name:           ex.Name,
		MuscleGroup:    ex.MuscleGroup,
		Equipment:      ex.Equipment,
		Instructions:   ex.Instructions,
		CaloriesPerRep: ex.CaloriesPerRep,
		CreatedAt:      ex.CreatedAt,
		UpdatedAt:      ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// paramID parses the :id route parameter as an ObjectID.
func paramID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseObjectID parses an ObjectID hex string from a request body.
func parseObjectID(hex string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(hex)
}

// --- Handler Methods ---

// List returns all exercises owned by the caller.
func (h *ExerciseHandler) List(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	exercises, err := h.exerciseService.List(c.Request.Context(), user.ID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	responses := MapExercisesToResponse(exercises)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(responses), "data": responses})
}

// Get returns a single owned exercise.
func (h *ExerciseHandler) Get(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	exerciseID, ok := paramID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), user.ID, exerciseID)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapExerciseToResponse(exercise)})
}

// Create adds a new exercise owned by the caller.
func (h *ExerciseHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	exercise, err := h.exerciseService.Create(c.Request.Context(), user.ID, service.CreateExerciseInput{
		Name:           req.Name,
		MuscleGroup:    domain.MuscleGroup(req.MuscleGroup),
		Equipment:      domain.Equipment(req.Equipment),
		Instructions:   req.Instructions,
		CaloriesPerRep: req.CaloriesPerRep,
	})
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": MapExerciseToResponse(exercise)})
}

// Update applies a partial update to an owned exercise.
func (h *ExerciseHandler) Update(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	exerciseID, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	input := service.UpdateExerciseInput{
		Name:           req.Name,
		Instructions:   req.Instructions,
		CaloriesPerRep: req.CaloriesPerRep,
	}
	if req.MuscleGroup != nil {
		mg := domain.MuscleGroup(*req.MuscleGroup)
		input.MuscleGroup = &mg
	}
	if req.Equipment != nil {
		eq := domain.Equipment(*req.Equipment)
		input.Equipment = &eq
	}

	exercise, err := h.exerciseService.Update(c.Request.Context(), user.ID, exerciseID, input)
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": MapExerciseToResponse(exercise)})
}

// Delete removes an owned exercise unless a workout still references it.
func (h *ExerciseHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Not authorized")
		return
	}
	exerciseID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.exerciseService.Delete(c.Request.Context(), user.ID, exerciseID); err != nil {
		abortServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}, "message": "Exercise deleted successfully"})
}
