package mongo

import (
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIDFilter(t *testing.T) {
	require.Equal(t, bson.M{"_id": "uid-123"}, idFilter("uid-123"))

	oid := primitive.NewObjectID()
	require.Equal(t, bson.M{"_id": bson.M{"$in": bson.A{oid, oid.Hex()}}}, idFilter(oid.Hex()))
}

func TestQueryFilter(t *testing.T) {
	f, err := queryFilter(nil)
	require.NoError(t, err)
	require.Empty(t, f)

	f, err = queryFilter([]repository.Filter{
		repository.Eq("levelId", "l1"),
		repository.Contains("muscleGroups", "legs"),
	})
	require.NoError(t, err)
	require.Equal(t, bson.M{"$and": bson.A{
		bson.M{"levelId": "l1"},
		bson.M{"muscleGroups": bson.M{"$elemMatch": bson.M{"$eq": "legs"}}},
	}}, f)

	_, err = queryFilter([]repository.Filter{{Field: "x", Op: ">", Value: 1}})
	require.ErrorIs(t, err, repository.ErrInvalidField)
}

func TestFromBSONNormalizesDriverTypes(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	id, doc := fromBSON(bson.M{
		"_id":       oid,
		"createdAt": primitive.NewDateTimeFromTime(when),
		"tags":      primitive.A{"a", "b"},
		"prefs":     primitive.M{"units": "metric"},
	})

	require.Equal(t, oid.Hex(), id)
	require.NotContains(t, doc, "_id")
	require.Equal(t, when, doc["createdAt"])
	require.Equal(t, []any{"a", "b"}, doc["tags"])
	require.Equal(t, map[string]any{"units": "metric"}, doc["prefs"])
	require.Equal(t, []string{"a", "b"}, doc.Strings("tags"))
}

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil))
	require.ErrorIs(t, mapError(mongo.ErrNoDocuments), repository.ErrNotFound)
	require.ErrorIs(t, mapError(context.DeadlineExceeded), repository.ErrStoreUnavailable)
	require.ErrorIs(t, mapError(mongo.ErrClientDisconnected), repository.ErrStoreUnavailable)

	other := errors.New("boom")
	require.Equal(t, other, mapError(other))
}
