// Package repo implements the data persistence layer. This file provides the
// MongoDB document store: one Mongo collection per logical collection, with
// records stored as native BSON documents plus a created_at timestamp.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/tbourn/newmum-companion/internal/domain"
	"github.com/tbourn/newmum-companion/internal/observability"
)

const (
	mongoIDField        = "_id"
	mongoCreatedAtField = "created_at"
)

// MongoStore is a document store over a MongoDB database.
// It is safe for concurrent use.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri, verifies the primary is reachable and returns a
// store bound to database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateDocument inserts record into collection and returns the hex ObjectID.
func (s *MongoStore) CreateDocument(ctx context.Context, collection string, record any) (string, error) {
	id := primitive.NewObjectID()
	doc, err := toBSON(record, id, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("encode %s record: %w", collection, err)
	}
	ctx, span := observability.StartSpan(ctx, "mongo.insert", mongoSpanAttrs(collection)...)
	_, err = s.db.Collection(collection).InsertOne(ctx, doc)
	observability.EndSpan(span, err)
	observe(backendMongo, "create", collection, err)
	if err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// GetDocuments returns up to limit documents of collection matching every
// filter field, newest first. A limit <= 0 means no cap.
func (s *MongoStore) GetDocuments(ctx context.Context, collection string, filter map[string]any, limit int) ([]domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: mongoCreatedAtField, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	ctx, span := observability.StartSpan(ctx, "mongo.find", mongoSpanAttrs(collection)...)
	out := []domain.Document{}
	cur, err := s.db.Collection(collection).Find(ctx, mongoFilter(filter), opts)
	if err == nil {
		var raw []bson.D
		if err = cur.All(ctx, &raw); err == nil {
			for _, d := range raw {
				doc, convErr := fromBSON(collection, d)
				if convErr != nil {
					err = convErr
					break
				}
				out = append(out, doc)
			}
		}
	}
	observability.EndSpan(span, err)
	observe(backendMongo, "find", collection, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mongoSpanAttrs(collection string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("db.system", "mongodb"),
		attribute.String("db.collection.name", collection),
	}
}

// toBSON converts record through its JSON form so field names follow the
// json tags, then prepends the id and appends the creation time.
func toBSON(record any, id primitive.ObjectID, createdAt time.Time) (bson.D, error) {
	b, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var body bson.D
	if err := bson.UnmarshalExtJSON(b, false, &body); err != nil {
		return nil, err
	}
	doc := make(bson.D, 0, len(body)+2)
	doc = append(doc, bson.E{Key: mongoIDField, Value: id})
	doc = append(doc, body...)
	doc = append(doc, bson.E{Key: mongoCreatedAtField, Value: primitive.NewDateTimeFromTime(createdAt)})
	return doc, nil
}

// fromBSON splits the stored document back into id, timestamp and JSON body.
func fromBSON(collection string, d bson.D) (domain.Document, error) {
	doc := domain.Document{Collection: collection}
	rest := make(bson.D, 0, len(d))
	for _, e := range d {
		switch e.Key {
		case mongoIDField:
			if oid, ok := e.Value.(primitive.ObjectID); ok {
				doc.ID = oid.Hex()
			} else {
				doc.ID = fmt.Sprint(e.Value)
			}
		case mongoCreatedAtField:
			if dt, ok := e.Value.(primitive.DateTime); ok {
				doc.CreatedAt = dt.Time().UTC()
			}
		default:
			rest = append(rest, e)
		}
	}
	body, err := bson.MarshalExtJSON(rest, false, false)
	if err != nil {
		return domain.Document{}, err
	}
	doc.Body = datatypes.JSON(body)
	return doc, nil
}

func mongoFilter(filter map[string]any) bson.D {
	f := bson.D{}
	for _, k := range sortedKeys(filter) {
		f = append(f, bson.E{Key: k, Value: filter[k]})
	}
	return f
}
