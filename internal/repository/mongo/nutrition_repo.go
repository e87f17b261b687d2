package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitbuzz/fitness-api/internal/domain"
	"fitbuzz/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const nutritionCollectionName = "nutrition_logs"

// mongoNutritionRepository implements repository.NutritionRepository
type mongoNutritionRepository struct {
	collection *mongo.Collection
}

// NewMongoNutritionRepository creates a new NutritionLog repository.
func NewMongoNutritionRepository(db *mongo.Database) repository.NutritionRepository {
	return &mongoNutritionRepository{
		collection: db.Collection(nutritionCollectionName),
	}
}

// Create inserts a new nutrition log entry.
func (r *mongoNutritionRepository) Create(ctx context.Context, entry *domain.NutritionLog) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.Food == "" {
		return primitive.NilObjectID, errors.New("nutrition log requires user ID and food")
	}

	entry.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Date.IsZero() {
		entry.Date = now
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted nutrition log ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single nutrition log by its ID.
func (r *mongoNutritionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.NutritionLog, error) {
	var entry domain.NutritionLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GetByUserID retrieves all of a user's nutrition logs, newest first.
func (r *mongoNutritionRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.NutritionLog, error) {
	return r.find(ctx, bson.M{"user": userID})
}

// GetByUserIDAndRange retrieves the user's logs with date in [from, to).
func (r *mongoNutritionRepository) GetByUserIDAndRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.NutritionLog, error) {
	filter := bson.M{
		"user": userID,
		"date": bson.M{"$gte": from, "$lt": to},
	}
	return r.find(ctx, filter)
}

func (r *mongoNutritionRepository) find(ctx context.Context, filter bson.M) ([]domain.NutritionLog, error) {
	var entries []domain.NutritionLog

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Update modifies an existing nutrition log. The owner is never changed.
func (r *mongoNutritionRepository) Update(ctx context.Context, entry *domain.NutritionLog) error {
	if entry.ID == primitive.NilObjectID {
		return errors.New("nutrition log ID is required for update")
	}
	if entry.Food == "" {
		return errors.New("food cannot be empty")
	}

	filter := bson.M{"_id": entry.ID}
	update := bson.M{
		"$set": bson.M{
			"food":      entry.Food,
			"calories":  entry.Calories,
			"protein":   entry.Protein,
			"carbs":     entry.Carbs,
			"fats":      entry.Fats,
			"date":      entry.Date,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a nutrition log by id.
func (r *mongoNutritionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes every nutrition log owned by the user.
func (r *mongoNutritionRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	return err
}

// CountByUserID returns the number of logs owned by the user.
func (r *mongoNutritionRepository) CountByUserID(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user": userID})
}

// SumCaloriesByUserID aggregates the total calories logged by the user.
func (r *mongoNutritionRepository) SumCaloriesByUserID(ctx context.Context, userID primitive.ObjectID) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$calories"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

// EnsureNutritionIndexes creates necessary indexes for the nutrition_logs collection.
func EnsureNutritionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
