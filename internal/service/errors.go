package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the services. Handlers map these onto HTTP
// status codes; nothing below the API layer knows about HTTP.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrNotOwner           = errors.New("not authorized to access this resource")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrHashingFailed      = errors.New("failed to hash password")
	ErrTokenGeneration    = errors.New("failed to generate authentication token")
)

// ValidationError carries a per-field error map so the API can return
// itemized errors, e.g. {"errors": {"confirmPassword": "Passwords must match"}}.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// ExerciseInUseError blocks deletion of an exercise that is still referenced
// by the owner's workouts. WorkoutNames identifies the blockers.
type ExerciseInUseError struct {
	WorkoutNames []string
}

func (e *ExerciseInUseError) Error() string {
	return fmt.Sprintf(
		"Cannot delete exercise. It is currently used in the following workout(s): %s. Please remove it from these workouts first.",
		strings.Join(e.WorkoutNames, ", "),
	)
}

// InvalidExerciseRefError marks a workout entry referencing an exercise that
// does not exist or is not owned by the caller.
type InvalidExerciseRefError struct {
	ExerciseID string
}

func (e *InvalidExerciseRefError) Error() string {
	return fmt.Sprintf("invalid exercise reference: %s", e.ExerciseID)
}
