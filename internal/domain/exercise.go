package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MuscleGroup enumerates the body areas an exercise targets.
type MuscleGroup string

const (
	MuscleChest     MuscleGroup = "chest"
	MuscleBack      MuscleGroup = "back"
	MuscleArms      MuscleGroup = "arms"
	MuscleShoulders MuscleGroup = "shoulders"
	MuscleLegs      MuscleGroup = "legs"
	MuscleCore      MuscleGroup = "core"
	MuscleFullBody  MuscleGroup = "full-body"
)

func (m MuscleGroup) Valid() bool {
	switch m {
	case MuscleChest, MuscleBack, MuscleArms, MuscleShoulders, MuscleLegs, MuscleCore, MuscleFullBody:
		return true
	}
	return false
}

// Equipment enumerates what an exercise is performed with.
type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentCable      Equipment = "cable"
	EquipmentBands      Equipment = "bands"
	EquipmentOther      Equipment = "other"
)

func (e Equipment) Valid() bool {
	switch e {
	case EquipmentBarbell, EquipmentDumbbell, EquipmentMachine, EquipmentBodyweight,
		EquipmentKettlebell, EquipmentCable, EquipmentBands, EquipmentOther:
		return true
	}
	return false
}

// Exercise is a user-owned exercise definition. UserID is stamped at
// creation and never changed by updates.
type Exercise struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user" json:"user"`
	Name           string             `bson:"name" json:"name"`
	MuscleGroup    MuscleGroup        `bson:"muscleGroup" json:"muscleGroup"`
	Equipment      Equipment          `bson:"equipment" json:"equipment"`
	Instructions   string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	CaloriesPerRep float64            `bson:"caloriesPerRep" json:"caloriesPerRep"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
