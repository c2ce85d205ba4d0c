package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Vileyy/admin-halora-app/internal/logger"
)

// MongoStore maps store paths onto MongoDB: the first segment names the
// collection, the second the document _id, and the rest a dotted field path
// inside that document.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) FetchAll(ctx context.Context, path string) ([]Document, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	coll := s.db.Collection(segments[0])

	if len(segments) == 1 {
		cursor, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return nil, fmt.Errorf("mongo find %s: %w", path, err)
		}
		defer cursor.Close(ctx)

		docs := make([]Document, 0)
		for cursor.Next(ctx) {
			var raw bson.M
			if err := cursor.Decode(&raw); err != nil {
				return nil, fmt.Errorf("mongo decode %s: %w", path, err)
			}
			key := idString(raw["_id"])
			delete(raw, "_id")
			data, _ := normalizeBSON(raw).(map[string]interface{})
			docs = append(docs, Document{Key: key, Data: data})
		}
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("mongo cursor %s: %w", path, err)
		}
		return docs, nil
	}

	var raw bson.M
	err = coll.FindOne(ctx, idFilter(segments[1])).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", path, err)
	}
	delete(raw, "_id")
	return childrenOf(lookup(normalizeBSON(raw), segments[2:])), nil
}

// Subscribe watches the collection's change stream and refetches path on every
// event. It requires a replica set.
func (s *MongoStore) Subscribe(ctx context.Context, path string, onChange func([]Document)) (Unsubscribe, error) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	stream, err := s.db.Collection(segments[0]).Watch(subCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("mongo watch %s: %w", path, err)
	}

	docs, err := s.FetchAll(ctx, path)
	if err != nil {
		cancel()
		stream.Close(context.Background())
		return nil, err
	}
	onChange(docs)

	log := logger.WithCollection(path)
	go func() {
		defer stream.Close(context.Background())
		for stream.Next(subCtx) {
			docs, err := s.FetchAll(subCtx, path)
			if err != nil {
				if subCtx.Err() != nil {
					return
				}
				log.WithError(err).Warn("refetch after change failed")
				continue
			}
			if subCtx.Err() != nil {
				return
			}
			onChange(docs)
		}
		if err := stream.Err(); err != nil && subCtx.Err() == nil {
			log.WithError(err).Error("change stream closed")
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }, nil
}

func (s *MongoStore) WriteField(ctx context.Context, path string, fields map[string]interface{}) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segments) < 2 {
		return fmt.Errorf("write to collection root %s: %w", path, ErrInvalidPath)
	}
	if len(fields) == 0 {
		return nil
	}

	prefix := strings.Join(segments[2:], ".")
	set := bson.M{}
	unset := bson.M{}
	for k, v := range fields {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if v == nil {
			unset[key] = ""
			continue
		}
		set[key] = v
	}

	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err = s.db.Collection(segments[0]).UpdateOne(ctx, idFilter(segments[1]), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo update %s: %w", path, err)
	}
	return nil
}

func (s *MongoStore) Remove(ctx context.Context, path string) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}
	coll := s.db.Collection(segments[0])

	switch len(segments) {
	case 1:
		_, err = coll.DeleteMany(ctx, bson.M{})
	case 2:
		_, err = coll.DeleteOne(ctx, idFilter(segments[1]))
	default:
		_, err = coll.UpdateOne(ctx, idFilter(segments[1]), bson.M{"$unset": bson.M{strings.Join(segments[2:], "."): ""}})
	}
	if err != nil {
		return fmt.Errorf("mongo remove %s: %w", path, err)
	}
	return nil
}

// idFilter selects a document by key. Keys that parse as an ObjectID hex
// address ObjectID _ids, the form idString lists them in.
func idFilter(key string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(key); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": key}
}

func idString(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case primitive.ObjectID:
		return v.Hex()
	default:
		return fmt.Sprint(v)
	}
}

// normalizeBSON converts driver types into the plain JSON-like values the
// repositories decode: nested documents become maps, arrays slices, dates
// epoch milliseconds.
func normalizeBSON(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.M:
		return normalizeMap(val)
	case map[string]interface{}:
		return normalizeMap(val)
	case primitive.D:
		m := make(map[string]interface{}, len(val))
		for _, e := range val {
			m[e.Key] = normalizeBSON(e.Value)
		}
		return m
	case primitive.A:
		return normalizeSlice(val)
	case []interface{}:
		return normalizeSlice(val)
	case primitive.DateTime:
		return val.Time().UnixMilli()
	case primitive.ObjectID:
		return val.Hex()
	case primitive.Decimal128:
		return val.String()
	case int32:
		return int64(val)
	default:
		return v
	}
}

func normalizeMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = normalizeBSON(v)
	}
	return out
}

func normalizeSlice(s []interface{}) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = normalizeBSON(v)
	}
	return out
}
