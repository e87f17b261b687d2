package api

import (
	"context"
	"errors"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stub services with overridable function fields. Unset fields return a
// generic failure so tests only wire what they exercise.

var errStubNotWired = errors.New("stub not wired")

type stubAuthService struct {
	RegisterFn            func(ctx context.Context, input service.RegisterInput) (*domain.User, string, error)
	LoginFn               func(ctx context.Context, email, password string) (*domain.User, string, error)
	AuthenticateFn        func(ctx context.Context, token string) (*domain.User, error)
	RefreshFn             func(ctx context.Context, token string) (string, error)
	GetUserFn             func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfileFn       func(ctx context.Context, userID primitive.ObjectID, input service.UpdateProfileInput) (*domain.User, error)
	ChangePasswordFn      func(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error
	DeleteAccountFn       func(ctx context.Context, userID primitive.ObjectID) error
	StatsFn               func(ctx context.Context, userID primitive.ObjectID) (*service.UserStats, error)
	RequestAvatarUploadFn func(ctx context.Context, userID primitive.ObjectID, contentType string) (*service.AvatarUpload, error)
	AvatarURLFn           func(ctx context.Context, user *domain.User) (string, error)
}

func (s *stubAuthService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, string, error) {
	if s.RegisterFn == nil {
		return nil, "", errStubNotWired
	}
	return s.RegisterFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if s.LoginFn == nil {
		return nil, "", errStubNotWired
	}
	return s.LoginFn(ctx, email, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if s.AuthenticateFn == nil {
		return nil, errStubNotWired
	}
	return s.AuthenticateFn(ctx, token)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (string, error) {
	if s.RefreshFn == nil {
		return "", errStubNotWired
	}
	return s.RefreshFn(ctx, token)
}

func (s *stubAuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if s.GetUserFn == nil {
		return nil, errStubNotWired
	}
	return s.GetUserFn(ctx, id)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input service.UpdateProfileInput) (*domain.User, error) {
	if s.UpdateProfileFn == nil {
		return nil, errStubNotWired
	}
	return s.UpdateProfileFn(ctx, userID, input)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error {
	if s.ChangePasswordFn == nil {
		return errStubNotWired
	}
	return s.ChangePasswordFn(ctx, userID, current, newPassword)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	if s.DeleteAccountFn == nil {
		return errStubNotWired
	}
	return s.DeleteAccountFn(ctx, userID)
}

func (s *stubAuthService) Stats(ctx context.Context, userID primitive.ObjectID) (*service.UserStats, error) {
	if s.StatsFn == nil {
		return nil, errStubNotWired
	}
	return s.StatsFn(ctx, userID)
}

func (s *stubAuthService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*service.AvatarUpload, error) {
	if s.RequestAvatarUploadFn == nil {
		return nil, errStubNotWired
	}
	return s.RequestAvatarUploadFn(ctx, userID, contentType)
}

func (s *stubAuthService) AvatarURL(ctx context.Context, user *domain.User) (string, error) {
	if s.AvatarURLFn == nil {
		return "", nil
	}
	return s.AvatarURLFn(ctx, user)
}

var _ service.AuthService = (*stubAuthService)(nil)

type stubExerciseService struct {
	ListFn   func(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	GetFn    func(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	CreateFn func(ctx context.Context, userID primitive.ObjectID, input service.CreateExerciseInput) (*domain.Exercise, error)
	UpdateFn func(ctx context.Context, userID, exerciseID primitive.ObjectID, input service.UpdateExerciseInput) (*domain.Exercise, error)
	DeleteFn func(ctx context.Context, userID, exerciseID primitive.ObjectID) error
}

func (s *stubExerciseService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	if s.ListFn == nil {
		return nil, errStubNotWired
	}
	return s.ListFn(ctx, userID)
}

func (s *stubExerciseService) Get(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	if s.GetFn == nil {
		return nil, errStubNotWired
	}
	return s.GetFn(ctx, userID, exerciseID)
}

func (s *stubExerciseService) Create(ctx context.Context, userID primitive.ObjectID, input service.CreateExerciseInput) (*domain.Exercise, error) {
	if s.CreateFn == nil {
		return nil, errStubNotWired
	}
	return s.CreateFn(ctx, userID, input)
}

func (s *stubExerciseService) Update(ctx context.Context, userID, exerciseID primitive.ObjectID, input service.UpdateExerciseInput) (*domain.Exercise, error) {
	if s.UpdateFn == nil {
		return nil, errStubNotWired
	}
	return s.UpdateFn(ctx, userID, exerciseID, input)
}

func (s *stubExerciseService) Delete(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
	if s.DeleteFn == nil {
		return errStubNotWired
	}
	return s.DeleteFn(ctx, userID, exerciseID)
}

var _ service.ExerciseService = (*stubExerciseService)(nil)

type stubWorkoutService struct {
	ListFn      func(ctx context.Context, userID primitive.ObjectID) ([]service.WorkoutDetail, error)
	GetFn       func(ctx context.Context, userID, workoutID primitive.ObjectID) (*service.WorkoutDetail, error)
	CreateFn    func(ctx context.Context, userID primitive.ObjectID, input service.CreateWorkoutInput) (*service.WorkoutDetail, error)
	UpdateFn    func(ctx context.Context, userID, workoutID primitive.ObjectID, input service.UpdateWorkoutInput) (*service.WorkoutDetail, error)
	DeleteFn    func(ctx context.Context, userID, workoutID primitive.ObjectID) error
	GetSharedFn func(ctx context.Context, workoutID primitive.ObjectID) (*service.WorkoutDetail, error)
}

func (s *stubWorkoutService) List(ctx context.Context, userID primitive.ObjectID) ([]service.WorkoutDetail, error) {
	if s.ListFn == nil {
		return nil, errStubNotWired
	}
	return s.ListFn(ctx, userID)
}

func (s *stubWorkoutService) Get(ctx context.Context, userID, workoutID primitive.ObjectID) (*service.WorkoutDetail, error) {
	if s.GetFn == nil {
		return nil, errStubNotWired
	}
	return s.GetFn(ctx, userID, workoutID)
}

func (s *stubWorkoutService) Create(ctx context.Context, userID primitive.ObjectID, input service.CreateWorkoutInput) (*service.WorkoutDetail, error) {
	if s.CreateFn == nil {
		return nil, errStubNotWired
	}
	return s.CreateFn(ctx, userID, input)
}

func (s *stubWorkoutService) Update(ctx context.Context, userID, workoutID primitive.ObjectID, input service.UpdateWorkoutInput) (*service.WorkoutDetail, error) {
	if s.UpdateFn == nil {
		return nil, errStubNotWired
	}
	return s.UpdateFn(ctx, userID, workoutID, input)
}

func (s *stubWorkoutService) Delete(ctx context.Context, userID, workoutID primitive.ObjectID) error {
	if s.DeleteFn == nil {
		return errStubNotWired
	}
	return s.DeleteFn(ctx, userID, workoutID)
}

func (s *stubWorkoutService) GetShared(ctx context.Context, workoutID primitive.ObjectID) (*service.WorkoutDetail, error) {
	if s.GetSharedFn == nil {
		return nil, errStubNotWired
	}
	return s.GetSharedFn(ctx, workoutID)
}

var _ service.WorkoutService = (*stubWorkoutService)(nil)

type stubNutritionService struct {
	ListFn   func(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.NutritionLog, error)
	CreateFn func(ctx context.Context, userID primitive.ObjectID, input service.CreateNutritionInput) (*domain.NutritionLog, error)
	UpdateFn func(ctx context.Context, userID, entryID primitive.ObjectID, input service.UpdateNutritionInput) (*domain.NutritionLog, error)
	DeleteFn func(ctx context.Context, userID, entryID primitive.ObjectID) error
}

func (s *stubNutritionService) List(ctx context.Context, userID primitive.ObjectID, date *time.Time) ([]domain.NutritionLog, error) {
	if s.ListFn == nil {
		return nil, errStubNotWired
	}
	return s.ListFn(ctx, userID, date)
}

func (s *stubNutritionService) Create(ctx context.Context, userID primitive.ObjectID, input service.CreateNutritionInput) (*domain.NutritionLog, error) {
	if s.CreateFn == nil {
		return nil, errStubNotWired
	}
	return s.CreateFn(ctx, userID, input)
}

func (s *stubNutritionService) Update(ctx context.Context, userID, entryID primitive.ObjectID, input service.UpdateNutritionInput) (*domain.NutritionLog, error) {
	if s.UpdateFn == nil {
		return nil, errStubNotWired
	}
	return s.UpdateFn(ctx, userID, entryID, input)
}

func (s *stubNutritionService) Delete(ctx context.Context, userID, entryID primitive.ObjectID) error {
	if s.DeleteFn == nil {
		return errStubNotWired
	}
	return s.DeleteFn(ctx, userID, entryID)
}

var _ service.NutritionService = (*stubNutritionService)(nil)

func testUser() *domain.User {
	return &domain.User{
		ID:            primitive.NewObjectID(),
		Name:          "Alice",
		Email:         "alice@example.com",
		Role:          domain.RoleUser,
		FitnessGoal:   domain.GoalStrength,
		ActivityLevel: domain.ActivityModerate,
	}
}
