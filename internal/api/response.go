package api

import (
	"errors"
	"net/http"

	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// All failure bodies share the {success:false, message, errors?} envelope.

// abortWithError returns a JSON error response and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

// abortWithFieldErrors returns an itemized per-field error map.
func abortWithFieldErrors(c *gin.Context, code int, message string, fields map[string]string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message, "errors": fields})
}

// abortServiceError maps service-layer errors onto the HTTP taxonomy.
// Ownership mismatches surface as 401, matching the rest of the API's
// convention. Unrecognized errors become a generic 500; the underlying
// message is only exposed while gin runs in debug mode.
func abortServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var inUseErr *service.ExerciseInUseError
	var refErr *service.InvalidExerciseRefError

	switch {
	case errors.As(err, &validationErr):
		abortWithFieldErrors(c, http.StatusBadRequest, "Validation failed", validationErr.Fields)
	case errors.As(err, &inUseErr):
		abortWithError(c, http.StatusBadRequest, inUseErr.Error())
	case errors.As(err, &refErr):
		abortWithError(c, http.StatusBadRequest, "One or more exercises do not exist or are not yours")
	case errors.Is(err, service.ErrEmailTaken):
		abortWithFieldErrors(c, http.StatusBadRequest, "User already exists",
			map[string]string{"email": "User already exists with this email"})
	case errors.Is(err, service.ErrInvalidCredentials):
		abortWithFieldErrors(c, http.StatusUnauthorized, "Invalid email or password",
			map[string]string{"email": "Invalid email or password"})
	case errors.Is(err, service.ErrWrongPassword):
		abortWithError(c, http.StatusUnauthorized, "Current password is incorrect")
	case errors.Is(err, service.ErrNotOwner):
		abortWithError(c, http.StatusUnauthorized, "Not authorized to access this resource")
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, "Resource not found")
	default:
		if gin.IsDebugging() {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Server Error")
	}
}
