package mongo

import (
	"alcyxob/fitness-admin/internal/domain"
	"alcyxob/fitness-admin/internal/repository"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store implements repository.Store on top of one MongoDB database.
type Store struct {
	db *mongo.Database
}

// NewStore expects a connected *mongo.Database instance.
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Collection implements repository.Store.
func (s *Store) Collection(name string) repository.Collection {
	return &mongoCollection{collection: s.db.Collection(name)}
}

type mongoCollection struct {
	collection *mongo.Collection
}

func (c *mongoCollection) Name() string { return c.collection.Name() }

func (c *mongoCollection) Get(ctx context.Context, id string) (domain.Document, error) {
	var raw bson.M
	err := c.collection.FindOne(ctx, idFilter(id)).Decode(&raw)
	if err != nil {
		return nil, mapError(err)
	}
	_, doc := fromBSON(raw)
	return doc, nil
}

func (c *mongoCollection) Find(ctx context.Context, q repository.Query) ([]repository.Snapshot, error) {
	filter, err := queryFilter(q.Filters)
	if err != nil {
		return nil, err
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := c.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	var raws []bson.M
	if err = cursor.All(ctx, &raws); err != nil {
		return nil, mapError(err)
	}

	out := make([]repository.Snapshot, 0, len(raws))
	for _, raw := range raws {
		id, doc := fromBSON(raw)
		out = append(out, repository.Snapshot{ID: id, Data: doc})
	}
	return out, nil
}

func (c *mongoCollection) Add(ctx context.Context, doc domain.Document) (string, error) {
	oid := primitive.NewObjectID()
	body := toBSON(doc)
	body["_id"] = oid

	if _, err := c.collection.InsertOne(ctx, body); err != nil {
		return "", mapError(err)
	}
	return oid.Hex(), nil
}

func (c *mongoCollection) Set(ctx context.Context, id string, doc domain.Document) error {
	body := toBSON(doc)

	// An existing document may have been stored under an ObjectID.
	result, err := c.collection.ReplaceOne(ctx, idFilter(id), body)
	if err != nil {
		return mapError(err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	_, err = c.collection.ReplaceOne(ctx, bson.M{"_id": id}, body, options.Replace().SetUpsert(true))
	return mapError(err)
}

func (c *mongoCollection) Update(ctx context.Context, id string, fields domain.Document) error {
	result, err := c.collection.UpdateOne(ctx, idFilter(id), bson.M{"$set": toBSON(fields)})
	if err != nil {
		return mapError(err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (c *mongoCollection) Delete(ctx context.Context, id string) error {
	result, err := c.collection.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return mapError(err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// idFilter matches id whether it was stored as a string or as an ObjectID.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

func queryFilter(filters []repository.Filter) (bson.M, error) {
	if len(filters) == 0 {
		return bson.M{}, nil
	}
	clauses := make(bson.A, 0, len(filters))
	for _, f := range filters {
		switch f.Op {
		case repository.OpEqual:
			clauses = append(clauses, bson.M{f.Field: f.Value})
		case repository.OpArrayContains:
			clauses = append(clauses, bson.M{f.Field: bson.M{"$elemMatch": bson.M{"$eq": f.Value}}})
		default:
			return nil, fmt.Errorf("%w: unsupported operator %q", repository.ErrInvalidField, f.Op)
		}
	}
	return bson.M{"$and": clauses}, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case errors.Is(err, mongo.ErrClientDisconnected),
		mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
	}
	return err
}

func toBSON(doc domain.Document) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// fromBSON splits off _id and converts driver types to the plain Go values
// domain documents carry.
func fromBSON(raw bson.M) (string, domain.Document) {
	var id string
	switch v := raw["_id"].(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		id = fmt.Sprint(v)
	}

	doc := make(domain.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		doc[k] = normalize(v)
	}
	return id, doc
}

func normalize(v any) any {
	switch x := v.(type) {
	case primitive.M:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(x))
		for _, e := range x {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}
		return out
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(x.T), 0).UTC()
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		n, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return nil
		}
		return n
	}
	return v
}
