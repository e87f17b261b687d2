package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitbuzz/fitness-api/internal/auth"
	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/repository"
	"fitbuzz/fitness-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput is the validated-at-the-boundary registration payload.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	FitnessGoal     domain.FitnessGoal
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// untouched; present fields are re-validated against the model constraints.
type UpdateProfileInput struct {
	Name          *string
	Email         *string
	FitnessGoal   *domain.FitnessGoal
	Age           *int
	Weight        *float64
	Height        *float64
	ActivityLevel *domain.ActivityLevel
	Notifications *domain.NotificationPrefs
}

// UserStats summarizes a user's owned resources.
type UserStats struct {
	Exercises     int64   `json:"exercises"`
	Workouts      int64   `json:"workouts"`
	NutritionLogs int64   `json:"nutritionLogs"`
	TotalCalories float64 `json:"totalCalories"`
}

// AvatarUpload is the result of requesting an avatar upload slot.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Authenticate verifies a token and loads the matching user. Any
	// failure (bad signature, expiry, unknown user) is ErrInvalidCredentials
	// territory for the middleware to map to 401.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Refresh(ctx context.Context, token string) (string, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
	Stats(ctx context.Context, userID primitive.ObjectID) (*UserStats, error)
	RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error)
	AvatarURL(ctx context.Context, user *domain.User) (string, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	exerciseRepo  repository.ExerciseRepository
	workoutRepo   repository.WorkoutRepository
	nutritionRepo repository.NutritionRepository
	tokens        *auth.TokenManager
	fileStorage   storage.FileStorage
}

// NewAuthService creates a new instance of authService. The resource repos
// back the stats endpoint and the account-deletion cascade.
func NewAuthService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	nutritionRepo repository.NutritionRepository,
	tokens *auth.TokenManager,
	fileStorage storage.FileStorage,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		exerciseRepo:  exerciseRepo,
		workoutRepo:   workoutRepo,
		nutritionRepo: nutritionRepo,
		tokens:        tokens,
		fileStorage:   fileStorage,
	}
}

// Register handles new user registration. On success the user is persisted
// with a hashed password and a fresh token is issued.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	fields := map[string]string{}
	validateName(fields, input.Name)
	validateEmailField(fields, input.Email)
	validatePassword(fields, input.Password)
	if input.ConfirmPassword == "" {
		fields["confirmPassword"] = "Confirm password field is required"
	} else if input.Password != input.ConfirmPassword {
		fields["confirmPassword"] = "Passwords must match"
	}
	validateFitnessGoal(fields, input.FitnessGoal)
	if len(fields) > 0 {
		return nil, "", &ValidationError{Fields: fields}
	}

	email := normalizeEmail(input.Email)

	// Check first for a friendly error; the unique index still guards the
	// race between this check and the insert.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", ErrHashingFailed
	}

	user := &domain.User{
		Name:          strings.TrimSpace(input.Name),
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleUser,
		FitnessGoal:   input.FitnessGoal,
		ActivityLevel: domain.ActivityModerate,
		Notifications: domain.DefaultNotificationPrefs(),
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	user.ID = userID

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", ErrTokenGeneration
	}
	return user, token, nil
}

// Login authenticates a user and issues a token. A missing user and a wrong
// password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	fields := map[string]string{}
	validateEmailField(fields, email)
	if password == "" {
		fields["password"] = "Password field is required"
	}
	if len(fields) > 0 {
		return nil, "", &ValidationError{Fields: fields}
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return nil, "", ErrTokenGeneration
	}
	return user, token, nil
}

// Authenticate verifies the token and loads the acting user.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userIDHex, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Refresh validates the existing token and issues a replacement with a
// reset expiry.
func (s *authService) Refresh(ctx context.Context, token string) (string, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return "", err
	}
	newToken, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", ErrTokenGeneration
	}
	return newToken, nil
}

// GetUser loads a user by id.
func (s *authService) GetUser(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a whitelisted partial update. Any invalid provided
// field rejects the whole request with an itemized error map.
func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if input.Name != nil {
		validateName(fields, *input.Name)
	}
	if input.Email != nil {
		validateEmailField(fields, *input.Email)
	}
	if input.FitnessGoal != nil {
		validateFitnessGoal(fields, *input.FitnessGoal)
	}
	if input.Age != nil {
		validateAge(fields, *input.Age)
	}
	if input.Weight != nil {
		validateWeight(fields, *input.Weight)
	}
	if input.Height != nil {
		validateHeight(fields, *input.Height)
	}
	if input.ActivityLevel != nil && !input.ActivityLevel.Valid() {
		fields["activityLevel"] = "Invalid activity level selected"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			// Uniqueness check excluding self.
			if other, err := s.userRepo.GetByEmail(ctx, email); err == nil && other.ID != userID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.FitnessGoal != nil {
		user.FitnessGoal = *input.FitnessGoal
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.Weight != nil {
		user.Weight = input.Weight
	}
	if input.Height != nil {
		user.Height = input.Height
	}
	if input.ActivityLevel != nil {
		user.ActivityLevel = *input.ActivityLevel
	}
	if input.Notifications != nil {
		user.Notifications = *input.Notifications
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before re-hashing the new one.
func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(current, user.PasswordHash) {
		return ErrWrongPassword
	}

	fields := map[string]string{}
	if newPassword == "" {
		fields["newPassword"] = "New password field is required"
	} else if len(newPassword) < 6 || len(newPassword) > 30 {
		fields["newPassword"] = "Password must be between 6 and 30 characters"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return ErrHashingFailed
	}
	user.PasswordHash = hash

	return s.userRepo.Update(ctx, user)
}

// DeleteAccount removes the user and cascades to every resource they own.
// The source application left orphaned records behind; cascading here keeps
// the store free of records owned by nonexistent users.
func (s *authService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.workoutRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.exerciseRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if err := s.nutritionRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	if user.AvatarKey != "" && s.fileStorage != nil {
		// Best effort; a leaked object is not worth failing the deletion.
		if err := s.fileStorage.DeleteObject(ctx, user.AvatarKey); err != nil {
			log.Printf("WARN: failed to delete avatar object %s: %v", user.AvatarKey, err)
		}
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Stats aggregates counts over the user's owned resources.
func (s *authService) Stats(ctx context.Context, userID primitive.ObjectID) (*UserStats, error) {
	exercises, err := s.exerciseRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	logs, err := s.nutritionRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	calories, err := s.nutritionRepo.SumCaloriesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserStats{
		Exercises:     exercises,
		Workouts:      workouts,
		NutritionLogs: logs,
		TotalCalories: calories,
	}, nil
}

// RequestAvatarUpload issues a presigned PUT URL for the avatar image and
// records the new object key on the user. The previous avatar object, if
// any, is deleted best effort.
func (s *authService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if s.fileStorage == nil {
		return nil, errors.New("file storage is not configured")
	}
	if contentType == "" {
		return nil, &ValidationError{Fields: map[string]string{"contentType": "Content type is required"}}
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", userID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	oldKey := user.AvatarKey
	user.AvatarKey = objectKey
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if oldKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, oldKey); err != nil {
			log.Printf("WARN: failed to delete previous avatar object %s: %v", oldKey, err)
		}
	}

	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// AvatarURL returns a presigned download URL for the user's avatar, or ""
// when no avatar has been uploaded.
func (s *authService) AvatarURL(ctx context.Context, user *domain.User) (string, error) {
	if user.AvatarKey == "" || s.fileStorage == nil {
		return "", nil
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, time.Hour)
}
