package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/schemas"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

type countingStore struct {
	*mockStore[models.GAETDate]
	findAllCalls int
}

func (c *countingStore) FindAll(ctx context.Context, query models.ListQuery) ([]models.GAETDate, error) {
	c.findAllCalls++
	return c.mockStore.FindAll(ctx, query)
}

func newGAETFixture() (*CatalogService[models.GAETDate, *models.GAETDate], *countingStore, *mockCacheRepo) {
	store := &countingStore{mockStore: newMockStore[models.GAETDate]()}
	cacheRepo := newMockCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewCatalogService[models.GAETDate, *models.GAETDate](GAETDateCatalog, store, cache, time.Minute, nil)
	return svc, store, cacheRepo
}

func TestCatalogListActiveIsCached(t *testing.T) {
	svc, store, _ := newGAETFixture()
	require.NoError(t, store.Insert(context.Background(), &models.GAETDate{Date: "2025-06-01", Mode: "offline", IsActive: true}))

	first, err := svc.ListActive(context.Background(), map[string]interface{}{"mode": "offline"})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, map[string]interface{}{"isActive": true, "mode": "offline"}, store.lastQuery.Filters)

	second, err := svc.ListActive(context.Background(), map[string]interface{}{"mode": "offline"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.findAllCalls)
}

func TestCatalogWritesInvalidateCache(t *testing.T) {
	svc, store, cacheRepo := newGAETFixture()

	_, err := svc.ListActive(context.Background(), nil)
	require.NoError(t, err)

	doc, violations := schemas.GAETDate().Create.Validate(map[string]interface{}{"date": "2025-07-06", "mode": "Online"})
	require.Empty(t, violations)

	created, err := svc.Create(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "online", created.Mode)
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"gaet-dates:*"}, cacheRepo.invalidated)

	items, err := svc.ListActive(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, store.findAllCalls)
}

func TestCatalogUpdate(t *testing.T) {
	svc, store, _ := newGAETFixture()
	item := &models.GAETDate{Date: "2025-06-01", Mode: "offline", IsActive: true}
	require.NoError(t, store.Insert(context.Background(), item))

	_, err := svc.Update(context.Background(), item.ID.Hex(), nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	doc, violations := schemas.GAETDate().Update.Validate(map[string]interface{}{"isActive": "false"})
	require.Empty(t, violations)
	_, err = svc.Update(context.Background(), item.ID.Hex(), doc)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"isActive": false}, store.lastSet)

	_, err = svc.Update(context.Background(), "507f1f77bcf86cd799439011", doc)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCatalogGetAndDelete(t *testing.T) {
	svc, store, _ := newGAETFixture()
	item := &models.GAETDate{Date: "2025-06-01", Mode: "offline"}
	require.NoError(t, store.Insert(context.Background(), item))

	got, err := svc.Get(context.Background(), item.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", got.Date)

	require.NoError(t, svc.Delete(context.Background(), item.ID.Hex()))
	_, err = svc.Get(context.Background(), item.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, "GAET date not found", appErrors.FromError(err).Message)
}
