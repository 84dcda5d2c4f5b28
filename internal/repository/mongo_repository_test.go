package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

func enquiryDoc(id primitive.ObjectID, name string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: name},
		{Key: "email", Value: "asha@example.com"},
		{Key: "phone", Value: "9876543210"},
		{Key: "course", Value: "JEE"},
		{Key: "status", Value: models.EnquiryStatusPending},
		{Key: "createdAt", Value: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)},
	}
}

func newEnquiryRepo(mt *mtest.T) *MongoRepository[models.Enquiry] {
	return NewMongoRepository[models.Enquiry](mt.DB, CollectionEnquiries, CollectionOptions{
		SearchFields: []string{"name", "email", "phone"},
	})
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test." + CollectionEnquiries

	mt.Run("insert assigns id and timestamps", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := newEnquiryRepo(mt)

		enquiry := &models.Enquiry{Name: "Asha", Status: models.EnquiryStatusPending}
		require.NoError(mt, repo.Insert(context.Background(), enquiry))
		assert.False(mt, enquiry.ID.IsZero())
		assert.False(mt, enquiry.CreatedAt.IsZero())
		assert.Equal(mt, enquiry.CreatedAt, enquiry.UpdatedAt)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, enquiryDoc(id, "Asha")))
		repo := newEnquiryRepo(mt)

		found, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, found.ID)
		assert.Equal(mt, "Asha", found.Name)
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := newEnquiryRepo(mt)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := newEnquiryRepo(mt)
		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("list pages and counts", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				enquiryDoc(primitive.NewObjectID(), "Asha"),
				enquiryDoc(primitive.NewObjectID(), "Ravi"),
			),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(12)}}),
		)
		repo := newEnquiryRepo(mt)

		items, total, err := repo.List(context.Background(), models.ListQuery{Page: 1, Limit: 2, Search: "a+", Filters: map[string]interface{}{"status": "pending"}})
		require.NoError(mt, err)
		assert.Len(mt, items, 2)
		assert.Equal(mt, int64(12), total)
	})

	mt.Run("exists", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
		)
		repo := newEnquiryRepo(mt)

		found, err := repo.Exists(context.Background(), bson.M{"email": "asha@example.com"})
		require.NoError(mt, err)
		assert.True(mt, found)

		found, err = repo.Exists(context.Background(), bson.M{"email": "nobody@example.com"})
		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("update status returns new document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		updated := enquiryDoc(id, "Asha")
		updated[5] = bson.E{Key: "status", Value: models.EnquiryStatusContacted}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: updated}})
		repo := newEnquiryRepo(mt)

		got, err := repo.UpdateStatus(context.Background(), id.Hex(), models.EnquiryStatusContacted)
		require.NoError(mt, err)
		assert.Equal(mt, models.EnquiryStatusContacted, got.Status)
	})

	mt.Run("update missing document", func(mt *mtest.T) {
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})
		repo := newEnquiryRepo(mt)

		_, err := repo.UpdateStatus(context.Background(), primitive.NewObjectID().Hex(), models.EnquiryStatusClosed)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete returns removed document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: enquiryDoc(id, "Asha")}})
		repo := newEnquiryRepo(mt)

		got, err := repo.Delete(context.Background(), id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
	})

	mt.Run("insert failure is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		repo := newEnquiryRepo(mt)

		err := repo.Insert(context.Background(), &models.Enquiry{Name: "Asha"})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create maps duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: users index: uniq_email"}))
		repo := NewUserRepository(mt.DB)

		err := repo.Create(context.Background(), &models.User{Email: "ops@goal.in", Role: models.RoleAdmin})
		assert.ErrorIs(mt, err, ErrDuplicateEmail)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollectionUsers, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "ops@goal.in"},
			{Key: "password", Value: "hash"},
			{Key: "role", Value: "admin"},
			{Key: "isActive", Value: true},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(context.Background(), "ops@goal.in")
		require.NoError(mt, err)
		assert.Equal(mt, "hash", user.PasswordHash)
		assert.Equal(mt, models.RoleAdmin, user.Role)
		assert.Equal(mt, id.Hex(), user.Info().ID)
	})

	mt.Run("count by role", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test."+CollectionUsers, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))
		repo := NewUserRepository(mt.DB)

		count, err := repo.CountByRole(context.Background(), models.RoleSuperAdmin)
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), count)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates every index", func(mt *mtest.T) {
		for range indexSpecs() {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}

func TestBuildFilterEscapesSearch(t *testing.T) {
	repo := &MongoRepository[models.Enquiry]{opts: CollectionOptions{SearchFields: []string{"name", "email"}}}
	filter := repo.buildFilter(models.ListQuery{Search: "a+b", Filters: map[string]interface{}{"status": "pending"}})

	assert.Equal(t, "pending", filter["status"])
	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"name": primitive.Regex{Pattern: `a\+b`, Options: "i"}}, or[0])
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "goal:", nil)
	var dest []string
	assert.ErrorIs(t, repo.Get(context.Background(), "k", &dest), appErrors.ErrCacheMiss)

	acquired, err := repo.SetIfAbsent(context.Background(), "guard", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)

	exists, err := repo.Exists(context.Background(), "blacklist")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, repo.Set(context.Background(), "k", dest, time.Second))
	assert.NoError(t, repo.DeleteByPattern(context.Background(), "*"))
}
