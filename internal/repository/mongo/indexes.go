package mongo

import (
	"alcyxob/fitness-admin/internal/domain"
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ordered(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}, Options: options.Index()}
}

// childOf indexes the parent reference together with the listing order.
func childOf(parent, order string, dir int) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: parent, Value: 1}, {Key: order, Value: dir}}}
}

// collectionIndexes lists the indexes each collection needs for its queries.
var collectionIndexes = map[string][]mongo.IndexModel{
	domain.UserCollection: {
		ordered("email"),
		ordered("role"),
	},
	domain.CategoryCollection:     {ordered("order")},
	domain.WorkoutTypeCollection:  {childOf("categoryId", "order", 1)},
	domain.LevelCollection:        {childOf("workoutTypeId", "order", 1)},
	domain.WorkoutPlanCollection:  {childOf("levelId", "order", 1)},
	domain.PlanExerciseCollection: {childOf("planId", "order", 1)},
	domain.ExerciseCollection: {
		childOf("levelId", "order", 1),
		ordered("muscleGroups"),
	},
	domain.WorkoutSessionCollection: {
		childOf("userId", "startTime", -1),
		ordered("levelId"),
		ordered("status"),
	},
	domain.UserProgressCollection: {
		childOf("userId", "completionDate", -1),
		ordered("levelId"),
		ordered("exerciseId"),
	},
	domain.UserFavoriteCollection: {childOf("userId", "createdAt", -1)},
	domain.MediaAssetCollection: {
		{Keys: bson.D{{Key: "publicId", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	domain.CredentialCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	domain.RevokedTokenCollection: {
		// Expired revocations are removed by the server.
		{Keys: bson.D{{Key: "expiresAt", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	},
}

// EnsureIndexes creates the indexes of every known collection.
// Call this once during application startup. Failures are logged, not fatal.
func EnsureIndexes(ctx context.Context, db *mongo.Database) {
	for name, indexes := range collectionIndexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			log.Printf("WARN: Failed to create indexes for collection %s: %v", name, err)
		}
	}
}
