package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newExerciseRouter(user *domain.User, stub *stubExerciseService) *gin.Engine {
	router := gin.New()
	handler := NewExerciseHandler(stub)
	authStub := &stubAuthService{
		AuthenticateFn: func(ctx context.Context, token string) (*domain.User, error) {
			return user, nil
		},
	}
	group := router.Group("/api/exercises")
	group.Use(AuthMiddleware(authStub))
	{
		group.GET("", handler.List)
		group.POST("", handler.Create)
		group.GET("/:id", handler.Get)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
	}
	return router
}

func authedRequest(method, path, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "good"})
	return req
}

func sampleExercise(userID primitive.ObjectID) *domain.Exercise {
	return &domain.Exercise{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		Name:           "Bench Press",
		MuscleGroup:    domain.MuscleChest,
		Equipment:      domain.EquipmentBarbell,
		CaloriesPerRep: 0.5,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestExerciseListHandler(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		ListFn: func(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
			assert.Equal(t, user.ID, userID)
			return []domain.Exercise{*sampleExercise(userID), *sampleExercise(userID)}, nil
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/exercises", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["data"], 2)
}

func TestExerciseCreateHandler(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		CreateFn: func(ctx context.Context, userID primitive.ObjectID, input service.CreateExerciseInput) (*domain.Exercise, error) {
			assert.Equal(t, "Bench Press", input.Name)
			assert.Equal(t, domain.MuscleChest, input.MuscleGroup)
			ex := sampleExercise(userID)
			return ex, nil
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/exercises",
		`{"name":"Bench Press","muscleGroup":"chest","equipment":"barbell","caloriesPerRep":0.5}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Bench Press", data["name"])
	assert.Equal(t, user.ID.Hex(), data["user"])
}

func TestExerciseGetHandlerNotFound(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		GetFn: func(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
			return nil, service.ErrNotFound
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/exercises/"+primitive.NewObjectID().Hex(), ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", decodeBody(t, rec)["message"])
}

func TestExerciseGetHandlerNotOwner(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		GetFn: func(ctx context.Context, userID, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
			return nil, service.ErrNotOwner
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/exercises/"+primitive.NewObjectID().Hex(), ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized to access this resource", decodeBody(t, rec)["message"])
}

func TestExerciseGetHandlerBadID(t *testing.T) {
	router := newExerciseRouter(testUser(), &stubExerciseService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/exercises/not-an-id", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", decodeBody(t, rec)["message"])
}

func TestExerciseDeleteHandlerInUse(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		DeleteFn: func(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
			return &service.ExerciseInUseError{WorkoutNames: []string{"Push Day", "Pull Day"}}
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/exercises/"+primitive.NewObjectID().Hex(), ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	message := decodeBody(t, rec)["message"].(string)
	assert.Contains(t, message, "Push Day, Pull Day")
	assert.Contains(t, message, "Cannot delete exercise")
}

func TestExerciseDeleteHandler(t *testing.T) {
	user := testUser()
	stub := &stubExerciseService{
		DeleteFn: func(ctx context.Context, userID, exerciseID primitive.ObjectID) error {
			return nil
		},
	}
	router := newExerciseRouter(user, stub)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/exercises/"+primitive.NewObjectID().Hex(), ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["success"])
}
