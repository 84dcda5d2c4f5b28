package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	CollectionUsers              = "users"
	CollectionEnquiries          = "enquiries"
	CollectionComplaints         = "complaints"
	CollectionAdmissions         = "admissions"
	CollectionExamRegistrations  = "exam_registrations"
	CollectionCareers            = "career_applications"
	CollectionGAETDates          = "gaet_dates"
	CollectionAITSVideoSolutions = "aits_video_solutions"
)

var listing = map[string]CollectionOptions{
	CollectionEnquiries:          {SearchFields: []string{"name", "email", "phone", "course"}},
	CollectionComplaints:         {SearchFields: []string{"name", "email", "phone", "subject", "uid"}},
	CollectionAdmissions:         {SearchFields: []string{"fullName", "email", "phone", "course"}},
	CollectionExamRegistrations:  {SearchFields: []string{"name", "email", "phone"}},
	CollectionCareers:            {SearchFields: []string{"name", "email", "position"}},
	CollectionGAETDates:          {Sort: bson.D{{Key: "date", Value: 1}}},
	CollectionAITSVideoSolutions: {Sort: bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}}},
}

// NewCollectionRepository binds T to a named collection with its listing options.
func NewCollectionRepository[T any](db *mongo.Database, collection string) *MongoRepository[T] {
	return NewMongoRepository[T](db, collection, listing[collection])
}

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func indexSpecs() []indexSpec {
	createdAt := func(coll string) indexSpec {
		return indexSpec{coll, mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}}}
	}
	return []indexSpec{
		{CollectionUsers, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		}},
		{CollectionEnquiries, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}, {Key: "phone", Value: 1}, {Key: "course", Value: 1}}}},
		createdAt(CollectionEnquiries),
		createdAt(CollectionComplaints),
		{CollectionAdmissions, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}, {Key: "course", Value: 1}}}},
		createdAt(CollectionAdmissions),
		{CollectionExamRegistrations, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}, {Key: "exam", Value: 1}}}},
		createdAt(CollectionExamRegistrations),
		{CollectionCareers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}, {Key: "position", Value: 1}}}},
		createdAt(CollectionCareers),
		{CollectionGAETDates, mongo.IndexModel{Keys: bson.D{{Key: "date", Value: 1}}}},
		{CollectionAITSVideoSolutions, mongo.IndexModel{Keys: bson.D{{Key: "order", Value: 1}}}},
	}
}

// EnsureIndexes creates the lookup indexes and the unique constraint on user emails.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexSpecs() {
		if _, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
	}
	return nil
}
