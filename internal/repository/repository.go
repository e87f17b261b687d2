package repository

import (
	"context"
	"time"

	"fitbuzz/fitness-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	// GetByIDs returns the subset of the given ids that exist, keyed by id.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	// GetByExerciseRef returns the user's workouts containing an entry that
	// references the given exercise.
	GetByExerciseRef(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// NutritionRepository defines the interface for interacting with nutrition logs.
type NutritionRepository interface {
	Create(ctx context.Context, entry *domain.NutritionLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionLog, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionLog, error)
	// GetByUserIDAndRange returns the user's logs with date in [from, to),
	// newest first.
	GetByUserIDAndRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.NutritionLog, error)
	Update(ctx context.Context, entry *domain.NutritionLog) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
	CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error)
	SumCaloriesByUserID(ctx context.Context, userID primitive.ObjectID) (float64, error)
}
