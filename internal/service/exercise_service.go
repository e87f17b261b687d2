package service

import (
	"context"
	"errors"
	"strings"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateExerciseInput is the validated payload for creating an exercise.
type CreateExerciseInput struct {
	Name           string
	MuscleGroup    domain.MuscleGroup
	Equipment      domain.Equipment
	Instructions   string
	CaloriesPerRep float64
}

// UpdateExerciseInput carries a partial update; nil fields are untouched.
type UpdateExerciseInput struct {
	Name           *string
	MuscleGroup    *domain.MuscleGroup
	Equipment      *domain.Equipment
	Instructions   *string
	CaloriesPerRep *float64
}

type ExerciseService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Get(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	Create(ctx context.Context, userID primitive.ObjectID, input CreateExerciseInput) (*domain.Exercise, error)
	Update(ctx context.Context, userID, exerciseID primitive.ObjectID, input UpdateExerciseInput) (*domain.Exercise, error)
	Delete(ctx context.Context, userID, exerciseID primitive.ObjectID) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
}

// NewExerciseService creates a new instance of exerciseService. The workout
// repository backs the referential in-use check on delete.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
	}
}

// List returns all exercises owned by the user; an empty list is not an error.
func (s *exerciseService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByUserID(ctx, userID)
}

// Get fetches one exercise and enforces ownership: ErrNotFound when the id
// does not resolve, ErrNotOwner when it belongs to someone else.
func (s *exerciseService) Get(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if exercise.UserID != userID {
		return nil, ErrNotOwner
	}
	return exercise, nil
}

// Create validates the payload, stamps the owner and persists.
func (s *exerciseService) Create(ctx context.Context, userID primitive.ObjectID, input CreateExerciseInput) (*domain.Exercise, error) {
	fields := map[string]string{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields["name"] = "Exercise name is required"
	} else if len(name) < 3 || len(name) > 50 {
		fields["name"] = "Exercise name must be between 3 and 50 characters"
	}
	if input.MuscleGroup == "" {
		fields["muscleGroup"] = "Muscle group is required"
	} else if !input.MuscleGroup.Valid() {
		fields["muscleGroup"] = "Invalid muscle group selected"
	}
	if input.Equipment == "" {
		input.Equipment = domain.EquipmentBodyweight
	} else if !input.Equipment.Valid() {
		fields["equipment"] = "Invalid equipment type selected"
	}
	if input.CaloriesPerRep < 0 {
		fields["caloriesPerRep"] = "Calories per rep cannot be negative"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	exercise := &domain.Exercise{
		UserID:         userID,
		Name:           name,
		MuscleGroup:    input.MuscleGroup,
		Equipment:      input.Equipment,
		Instructions:   strings.TrimSpace(input.Instructions),
		CaloriesPerRep: input.CaloriesPerRep,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// Update applies only the provided fields after the ownership check.
func (s *exerciseService) Update(ctx context.Context, userID, exerciseID primitive.ObjectID, input UpdateExerciseInput) (*domain.Exercise, error) {
	exercise, err := s.Get(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			fields["name"] = "Exercise name is required"
		} else if len(name) < 3 || len(name) > 50 {
			fields["name"] = "Exercise name must be between 3 and 50 characters"
		} else {
			exercise.Name = name
		}
	}
	if input.MuscleGroup != nil {
		if !input.MuscleGroup.Valid() {
			fields["muscleGroup"] = "Invalid muscle group selected"
		} else {
			exercise.MuscleGroup = *input.MuscleGroup
		}
	}
	if input.Equipment != nil {
		if !input.Equipment.Valid() {
			fields["equipment"] = "Invalid equipment type selected"
		} else {
			exercise.Equipment = *input.Equipment
		}
	}
	if input.Instructions != nil {
		exercise.Instructions = strings.TrimSpace(*input.Instructions)
	}
	if input.CaloriesPerRep != nil {
		if *input.CaloriesPerRep < 0 {
			fields["caloriesPerRep"] = "Calories per rep cannot be negative"
		} else {
			exercise.CaloriesPerRep = *input.CaloriesPerRep
		}
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// Delete removes the exercise after the ownership check, unless any of the
// owner's workouts still references it.
func (s *exerciseService) Delete(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	if _, err := s.Get(ctx, userID, exerciseID); err != nil {
		return err
	}

	blocking, err := s.workoutRepo.GetByExerciseRef(ctx, userID, exerciseID)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		names := make([]string, len(blocking))
		for i, w := range blocking {
			names[i] = w.Name
		}
		return &ExerciseInUseError{WorkoutNames: names}
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
