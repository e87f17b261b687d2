package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// FitnessGoal enumerates the goals a user can pick at registration.
type FitnessGoal string

const (
	GoalWeightLoss     FitnessGoal = "weight_loss"
	GoalMuscleGain     FitnessGoal = "muscle_gain"
	GoalEndurance      FitnessGoal = "endurance"
	GoalStrength       FitnessGoal = "strength"
	GoalGeneralFitness FitnessGoal = "general_fitness"
)

func (g FitnessGoal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalMuscleGain, GoalEndurance, GoalStrength, GoalGeneralFitness:
		return true
	}
	return false
}

// ActivityLevel enumerates how active a user reports being.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

// Numeric profile bounds.
const (
	MinAge      = 13
	MaxAge      = 120
	MinWeightKg = 20
	MaxWeightKg = 500
	MinHeightCm = 100
	MaxHeightCm = 250
)

// NotificationPrefs holds the user's notification toggles.
type NotificationPrefs struct {
	WorkoutReminders bool `bson:"workoutReminders" json:"workoutReminders"`
	NutritionTips    bool `bson:"nutritionTips" json:"nutritionTips"`
	ProgressUpdates  bool `bson:"progressUpdates" json:"progressUpdates"`
	EmailUpdates     bool `bson:"emailUpdates" json:"emailUpdates"`
}

// DefaultNotificationPrefs returns the defaults applied at registration.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		WorkoutReminders: true,
		NutritionTips:    true,
		ProgressUpdates:  true,
		EmailUpdates:     false,
	}
}

// User represents an account. Email is stored lowercased and trimmed; the
// password exists only as a bcrypt hash and is never serialized.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"` // unique
	PasswordHash  string             `bson:"passwordHash" json:"-"`
	Role          Role               `bson:"role" json:"role"`
	FitnessGoal   FitnessGoal        `bson:"fitnessGoal,omitempty" json:"fitnessGoal,omitempty"`
	Age           *int               `bson:"age,omitempty" json:"age,omitempty"`
	Weight        *float64           `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height        *float64           `bson:"height,omitempty" json:"height,omitempty"` // cm
	ActivityLevel ActivityLevel      `bson:"activityLevel" json:"activityLevel"`
	Notifications NotificationPrefs  `bson:"notifications" json:"notifications"`
	AvatarKey     string             `bson:"avatarKey,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
