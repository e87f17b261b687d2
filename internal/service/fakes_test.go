package service

import (
	"context"
	"sync"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/repository"
	"fitbuzz/fitness-api/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	clone := *user
	clone.ID = primitive.NewObjectID()
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.users[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	clone.UpdatedAt = time.Now()
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memExerciseRepo struct {
	mu        sync.Mutex
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *memExerciseRepo) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *exercise
	clone.ID = primitive.NewObjectID()
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.exercises[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memExerciseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *exercise
	return &clone, nil
}

func (r *memExerciseRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Exercise{}
	for _, exercise := range r.exercises {
		if exercise.UserID == userID {
			result = append(result, *exercise)
		}
	}
	return result, nil
}

func (r *memExerciseRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.Exercise, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[primitive.ObjectID]*domain.Exercise)
	for _, id := range ids {
		if exercise, ok := r.exercises[id]; ok {
			clone := *exercise
			result[id] = &clone
		}
	}
	return result, nil
}

func (r *memExerciseRepo) Update(ctx context.Context, exercise *domain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *exercise
	clone.UpdatedAt = time.Now()
	r.exercises[exercise.ID] = &clone
	return nil
}

func (r *memExerciseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *memExerciseRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, exercise := range r.exercises {
		if exercise.UserID == userID {
			delete(r.exercises, id)
		}
	}
	return nil
}

func (r *memExerciseRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, exercise := range r.exercises {
		if exercise.UserID == userID {
			count++
		}
	}
	return count, nil
}

type memWorkoutRepo struct {
	mu       sync.Mutex
	workouts map[primitive.ObjectID]*domain.Workout
}

func newMemWorkoutRepo() *memWorkoutRepo {
	return &memWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *memWorkoutRepo) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Mirror the mongo repository: defaults are stamped on the passed struct.
	workout.ID = primitive.NewObjectID()
	if workout.Date.IsZero() {
		workout.Date = time.Now()
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.WorkoutEntry{}
	}
	workout.CreatedAt = time.Now()
	workout.UpdatedAt = workout.CreatedAt
	clone := *workout
	r.workouts[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memWorkoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *workout
	return &clone, nil
}

func (r *memWorkoutRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Workout{}
	for _, workout := range r.workouts {
		if workout.UserID == userID {
			result = append(result, *workout)
		}
	}
	return result, nil
}

func (r *memWorkoutRepo) GetByExerciseRef(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.Workout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.Workout{}
	for _, workout := range r.workouts {
		if workout.UserID != userID {
			continue
		}
		for _, entry := range workout.Exercises {
			if entry.ExerciseID == exerciseID {
				result = append(result, *workout)
				break
			}
		}
	}
	return result, nil
}

func (r *memWorkoutRepo) Update(ctx context.Context, workout *domain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *workout
	clone.UpdatedAt = time.Now()
	r.workouts[workout.ID] = &clone
	return nil
}

func (r *memWorkoutRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workouts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *memWorkoutRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, workout := range r.workouts {
		if workout.UserID == userID {
			delete(r.workouts, id)
		}
	}
	return nil
}

func (r *memWorkoutRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, workout := range r.workouts {
		if workout.UserID == userID {
			count++
		}
	}
	return count, nil
}

type memNutritionRepo struct {
	mu      sync.Mutex
	entries map[primitive.ObjectID]*domain.NutritionLog
}

func newMemNutritionRepo() *memNutritionRepo {
	return &memNutritionRepo{entries: make(map[primitive.ObjectID]*domain.NutritionLog)}
}

func (r *memNutritionRepo) Create(ctx context.Context, entry *domain.NutritionLog) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	clone := *entry
	r.entries[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memNutritionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *entry
	return &clone, nil
}

func (r *memNutritionRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.NutritionLog{}
	for _, entry := range r.entries {
		if entry.UserID == userID {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (r *memNutritionRepo) GetByUserIDAndRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.NutritionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []domain.NutritionLog{}
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if !entry.Date.Before(from) && entry.Date.Before(to) {
			result = append(result, *entry)
		}
	}
	return result, nil
}

func (r *memNutritionRepo) Update(ctx context.Context, entry *domain.NutritionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *entry
	clone.UpdatedAt = time.Now()
	r.entries[entry.ID] = &clone
	return nil
}

func (r *memNutritionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memNutritionRepo) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, entry := range r.entries {
		if entry.UserID == userID {
			delete(r.entries, id)
		}
	}
	return nil
}

func (r *memNutritionRepo) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, entry := range r.entries {
		if entry.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *memNutritionRepo) SumCaloriesByUserID(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, entry := range r.entries {
		if entry.UserID == userID {
			sum += entry.Calories
		}
	}
	return sum, nil
}

// memStorage is a fake FileStorage recording deletions.
type memStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (s *memStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expiry time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *memStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *memStorage) DeleteObject(ctx context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, objectKey)
	return nil
}

var _ storage.FileStorage = (*memStorage)(nil)
var _ repository.UserRepository = (*memUserRepo)(nil)
var _ repository.ExerciseRepository = (*memExerciseRepo)(nil)
var _ repository.WorkoutRepository = (*memWorkoutRepo)(nil)
var _ repository.NutritionRepository = (*memNutritionRepo)(nil)
