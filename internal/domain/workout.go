package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutEntry is one exercise slot inside a workout.
type WorkoutEntry struct {
	ExerciseID primitive.ObjectID `bson:"exercise" json:"exercise"`
	Sets       int                `bson:"sets" json:"sets"`
	Reps       int                `bson:"reps" json:"reps"`
	Weight     float64            `bson:"weight" json:"weight"`
}

// Workout is a user-owned, ordered list of exercise entries. Every entry
// must reference an exercise owned by the same user at write time.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Exercises []WorkoutEntry     `bson:"exercises" json:"exercises"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalCalories sums caloriesPerRep x sets x reps over the entries, looking
// each entry's exercise up in the supplied map. Entries whose exercise is
// missing (deleted out-of-band) contribute 0; the value is derived on read
// and never persisted.
func (w *Workout) TotalCalories(exercises map[primitive.ObjectID]*Exercise) float64 {
	var total float64
	for _, entry := range w.Exercises {
		ex, ok := exercises[entry.ExerciseID]
		if !ok {
			continue
		}
		total += ex.CaloriesPerRep * float64(entry.Sets) * float64(entry.Reps)
	}
	return total
}
