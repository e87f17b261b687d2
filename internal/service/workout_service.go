package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateWorkoutInput is the validated payload for creating a workout.
type CreateWorkoutInput struct {
	Name    string
	Date    *time.Time
	Entries []domain.WorkoutEntry
}

// UpdateWorkoutInput carries a partial update; nil fields are untouched.
// When Entries is present, every exercise reference is re-validated.
type UpdateWorkoutInput struct {
	Name    *string
	Date    *time.Time
	Entries *[]domain.WorkoutEntry
}

// WorkoutEntryDetail is a workout entry with its exercise populated.
// Exercise is nil when the referenced document was deleted out-of-band; such
// entries contribute 0 calories.
type WorkoutEntryDetail struct {
	Exercise *domain.Exercise
	Sets     int
	Reps     int
	Weight   float64
}

// WorkoutDetail is a workout enriched for reading: populated entries plus
// the derived calorie total. TotalCalories is computed on read and never
// persisted.
type WorkoutDetail struct {
	Workout       *domain.Workout
	Entries       []WorkoutEntryDetail
	TotalCalories float64
}

type WorkoutService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]WorkoutDetail, error)
	Get(ctx context.Context, userID, workoutID primitive.ObjectID) (*WorkoutDetail, error)
	Create(ctx context.Context, userID primitive.ObjectID, input CreateWorkoutInput) (*WorkoutDetail, error)
	Update(ctx context.Context, userID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*WorkoutDetail, error)
	Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error
	// GetShared reads a workout without an ownership check, for public
	// share links.
	GetShared(ctx context.Context, workoutID primitive.ObjectID) (*WorkoutDetail, error)
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// enrich populates each entry's exercise and computes the calorie total.
func (s *workoutService) enrich(ctx context.Context, workout *domain.Workout) (*WorkoutDetail, error) {
	ids := make([]primitive.ObjectID, 0, len(workout.Exercises))
	for _, entry := range workout.Exercises {
		ids = append(ids, entry.ExerciseID)
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]WorkoutEntryDetail, len(workout.Exercises))
	for i, entry := range workout.Exercises {
		entries[i] = WorkoutEntryDetail{
			Exercise: exercises[entry.ExerciseID], // nil when deleted out-of-band
			Sets:     entry.Sets,
			Reps:     entry.Reps,
			Weight:   entry.Weight,
		}
	}

	return &WorkoutDetail{
		Workout:       workout,
		Entries:       entries,
		TotalCalories: workout.TotalCalories(exercises),
	}, nil
}

// validateEntries checks shape and resolves every exercise reference to an
// exercise owned by the caller.
func (s *workoutService) validateEntries(ctx context.Context, userID primitive.ObjectID, entries []domain.WorkoutEntry) error {
	fields := map[string]string{}
	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		if entry.ExerciseID == primitive.NilObjectID {
			fields["exercises"] = "Every entry must reference an exercise"
			break
		}
		if entry.Sets < 0 || entry.Reps < 0 || entry.Weight < 0 {
			fields["exercises"] = "Sets, reps and weight cannot be negative"
			break
		}
		ids = append(ids, entry.ExerciseID)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		ex, ok := exercises[id]
		if !ok || ex.UserID != userID {
			return &InvalidExerciseRefError{ExerciseID: id.Hex()}
		}
	}
	return nil
}

// List returns all of the user's workouts, enriched.
func (s *workoutService) List(ctx context.Context, userID primitive.ObjectID) ([]WorkoutDetail, error) {
	workouts, err := s.workoutRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]WorkoutDetail, 0, len(workouts))
	for i := range workouts {
		detail, err := s.enrich(ctx, &workouts[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

// Get fetches one workout with the ownership check, enriched.
func (s *workoutService) Get(ctx context.Context, userID, workoutID primitive.ObjectID) (*WorkoutDetail, error) {
	workout, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, workout)
}

func (s *workoutService) getOwned(ctx context.Context, userID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if workout.UserID != userID {
		return nil, ErrNotOwner
	}
	return workout, nil
}

// Create validates the payload and every exercise reference, stamps the
// owner and persists. An empty entry list is allowed.
func (s *workoutService) Create(ctx context.Context, userID primitive.ObjectID, input CreateWorkoutInput) (*WorkoutDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Fields: map[string]string{"name": "Workout name is required"}}
	}
	if input.Entries == nil {
		input.Entries = []domain.WorkoutEntry{}
	}
	if err := s.validateEntries(ctx, userID, input.Entries); err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		UserID:    userID,
		Name:      name,
		Exercises: input.Entries,
	}
	if input.Date != nil {
		workout.Date = *input.Date
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID

	return s.enrich(ctx, workout)
}

// Update applies only the provided fields after the ownership check;
// exercise references are re-validated when the entry list changes.
func (s *workoutService) Update(ctx context.Context, userID, workoutID primitive.ObjectID, input UpdateWorkoutInput) (*WorkoutDetail, error) {
	workout, err := s.getOwned(ctx, userID, workoutID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &ValidationError{Fields: map[string]string{"name": "Workout name is required"}}
		}
		workout.Name = name
	}
	if input.Date != nil {
		workout.Date = *input.Date
	}
	if input.Entries != nil {
		if err := s.validateEntries(ctx, userID, *input.Entries); err != nil {
			return nil, err
		}
		workout.Exercises = *input.Entries
	}

	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.enrich(ctx, workout)
}

// Delete removes the workout after the ownership check.
func (s *workoutService) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, userID, workoutID); err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetShared reads a workout by id for a public share link.
func (s *workoutService) GetShared(ctx context.Context, workoutID primitive.ObjectID) (*WorkoutDetail, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.enrich(ctx, workout)
}
