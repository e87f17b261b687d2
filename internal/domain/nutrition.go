package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionLog is a single user-owned food log entry.
type NutritionLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Food      string             `bson:"food" json:"food"`
	Calories  float64            `bson:"calories" json:"calories"`
	Protein   float64            `bson:"protein" json:"protein"`
	Carbs     float64            `bson:"carbs" json:"carbs"`
	Fats      float64            `bson:"fats" json:"fats"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
