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

// CreateNutritionInput is the validated payload for logging a food entry.
type CreateNutritionInput struct {
	Food     string
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Date     *time.Time
}

// UpdateNutritionInput carries a partial update; nil fields are untouched.
type UpdateNutritionInput struct {
	Food     *string
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fats     *float64
	Date     *time.Time
}

type NutritionService interface {
	// List returns the user's logs, optionally restricted to the calendar
	// day of the given date.
	List(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.NutritionLog, error)
	Create(ctx context.Context, userID primitive.ObjectID, input CreateNutritionInput) (*domain.NutritionLog, error)
	Update(ctx context.Context, userID, entryID primitive.ObjectID, input UpdateNutritionInput) (*domain.NutritionLog, error)
	Delete(ctx context.Context, userID, entryID primitive.ObjectID) error
}

// nutritionService implements the NutritionService interface.
type nutritionService struct {
	nutritionRepo repository.NutritionRepository
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(nutritionRepo repository.NutritionRepository) NutritionService {
	return &nutritionService{nutritionRepo: nutritionRepo}
}

func (s *nutritionService) List(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.NutritionLog, error) {
	if date == nil {
		return s.nutritionRepo.GetByUserID(ctx, userID)
	}
	// Day range [00:00, 24:00) in the date's location.
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)
	return s.nutritionRepo.GetByUserIDAndRange(ctx, userID, from, to)
}

func validateNutrient(fields map[string]string, name string, value float64) {
	if value < 0 {
		fields[name] = strings.ToUpper(name[:1]) + name[1:] + " cannot be negative"
	}
}

func (s *nutritionService) Create(ctx context.Context, userID primitive.ObjectID, input CreateNutritionInput) (*domain.NutritionLog, error) {
	fields := map[string]string{}
	food := strings.TrimSpace(input.Food)
	if food == "" {
		fields["food"] = "Food name is required"
	} else if len(food) < 2 || len(food) > 50 {
		fields["food"] = "Food name must be between 2 and 50 characters"
	}
	validateNutrient(fields, "calories", input.Calories)
	validateNutrient(fields, "protein", input.Protein)
	validateNutrient(fields, "carbs", input.Carbs)
	validateNutrient(fields, "fats", input.Fats)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	entry := &domain.NutritionLog{
		UserID:   userID,
		Food:     food,
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fats:     input.Fats,
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}

	entryID, err := s.nutritionRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = entryID
	return entry, nil
}

func (s *nutritionService) getOwned(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.NutritionLog, error) {
	entry, err := s.nutritionRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrNotOwner
	}
	return entry, nil
}

func (s *nutritionService) Update(ctx context.Context, userID, entryID primitive.ObjectID, input UpdateNutritionInput) (*domain.NutritionLog, error) {
	entry, err := s.getOwned(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if input.Food != nil {
		food := strings.TrimSpace(*input.Food)
		if food == "" {
			fields["food"] = "Food name is required"
		} else if len(food) < 2 || len(food) > 50 {
			fields["food"] = "Food name must be between 2 and 50 characters"
		} else {
			entry.Food = food
		}
	}
	if input.Calories != nil {
		validateNutrient(fields, "calories", *input.Calories)
		entry.Calories = *input.Calories
	}
	if input.Protein != nil {
		validateNutrient(fields, "protein", *input.Protein)
		entry.Protein = *input.Protein
	}
	if input.Carbs != nil {
		validateNutrient(fields, "carbs", *input.Carbs)
		entry.Carbs = *input.Carbs
	}
	if input.Fats != nil {
		validateNutrient(fields, "fats", *input.Fats)
		entry.Fats = *input.Fats
	}
	if input.Date != nil {
		entry.Date = *input.Date
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if err := s.nutritionRepo.Update(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *nutritionService) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.nutritionRepo.Delete(ctx, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
