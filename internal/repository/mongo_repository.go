package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
)

// ErrNotFound is returned when no document matches an identifier.
var ErrNotFound = errors.New("document not found")

// CollectionOptions configures listing behaviour for a collection.
type CollectionOptions struct {
	// SearchFields are matched case-insensitively against ListQuery.Search.
	SearchFields []string
	// Sort defaults to newest first.
	Sort bson.D
}

// MongoRepository provides the CRUD operations shared by every document collection.
type MongoRepository[T any] struct {
	coll *mongo.Collection
	opts CollectionOptions
	now  func() time.Time
}

// NewMongoRepository binds a repository to a collection.
func NewMongoRepository[T any](db *mongo.Database, collection string, opts CollectionOptions) *MongoRepository[T] {
	if len(opts.Sort) == 0 {
		opts.Sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	return &MongoRepository[T]{coll: db.Collection(collection), opts: opts, now: time.Now}
}

// Collection exposes the underlying driver collection.
func (r *MongoRepository[T]) Collection() *mongo.Collection {
	return r.coll
}

// Insert stamps and stores the document, setting its generated ID.
func (r *MongoRepository[T]) Insert(ctx context.Context, doc *T) error {
	record := baseOf(doc)
	if record != nil {
		record.Stamp(r.now())
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok && record != nil {
		record.ID = id
	}
	return nil
}

// FindByID returns the document with the given hex identifier.
func (r *MongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.FindOne(ctx, bson.M{"_id": oid})
}

// FindOne returns the first document matching filter.
func (r *MongoRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	if err := r.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
	}
	return &out, nil
}

// List returns one page of documents along with the total number of matches.
func (r *MongoRepository[T]) List(ctx context.Context, query models.ListQuery) ([]T, int64, error) {
	query = query.Normalize()
	filter := r.buildFilter(query)

	findOpts := options.Find().
		SetSort(r.opts.Sort).
		SetSkip(query.Skip()).
		SetLimit(int64(query.Limit))

	items, err := r.find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return items, total, nil
}

// FindAll returns every document matching the query filters, ignoring pagination.
func (r *MongoRepository[T]) FindAll(ctx context.Context, query models.ListQuery) ([]T, error) {
	return r.find(ctx, r.buildFilter(query), options.Find().SetSort(r.opts.Sort))
}

// Exists reports whether any document matches filter.
func (r *MongoRepository[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, fmt.Errorf("lookup in %s: %w", r.coll.Name(), err)
}

// Update applies set to the document and returns the updated version.
func (r *MongoRepository[T]) Update(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	fields := bson.M{"updatedAt": r.now().UTC()}
	for k, v := range set {
		fields[k] = v
	}

	var out T
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update in %s: %w", r.coll.Name(), err)
	}
	return &out, nil
}

// UpdateStatus sets the status field.
func (r *MongoRepository[T]) UpdateStatus(ctx context.Context, id, status string) (*T, error) {
	return r.Update(ctx, id, bson.M{"status": status})
}

// Delete removes the document and returns what was deleted.
func (r *MongoRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var out T
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete from %s: %w", r.coll.Name(), err)
	}
	return &out, nil
}

func (r *MongoRepository[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	items := make([]T, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return items, nil
}

func (r *MongoRepository[T]) buildFilter(query models.ListQuery) bson.M {
	filter := bson.M{}
	for key, value := range query.Filters {
		filter[key] = value
	}
	if query.Search != "" && len(r.opts.SearchFields) > 0 {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query.Search), Options: "i"}
		or := make(bson.A, 0, len(r.opts.SearchFields))
		for _, field := range r.opts.SearchFields {
			or = append(or, bson.M{field: pattern})
		}
		filter["$or"] = or
	}
	return filter
}

func baseOf(v interface{}) *models.Record {
	if doc, ok := v.(models.Document); ok {
		return doc.Base()
	}
	return nil
}
