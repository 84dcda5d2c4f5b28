package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
	"github.com/man-in-dev/goal-backend-sub001/internal/repository"
	appErrors "github.com/man-in-dev/goal-backend-sub001/pkg/errors"
)

type mockStore[T any] struct {
	items        map[string]*T
	order        []string
	exists       bool
	existsCalls  int
	existsFilter bson.M
	lastQuery    models.ListQuery
	lastSet      bson.M
	insertErr    error
}

func newMockStore[T any]() *mockStore[T] {
	return &mockStore[T]{items: map[string]*T{}}
}

func (m *mockStore[T]) Insert(ctx context.Context, doc *T) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	record := any(doc).(models.Document).Base()
	record.ID = primitive.NewObjectID()
	record.Stamp(time.Now())
	id := record.ID.Hex()
	m.items[id] = doc
	m.order = append(m.order, id)
	return nil
}

func (m *mockStore[T]) FindByID(ctx context.Context, id string) (*T, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (m *mockStore[T]) all() []T {
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		if item, ok := m.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out
}

func (m *mockStore[T]) List(ctx context.Context, query models.ListQuery) ([]T, int64, error) {
	m.lastQuery = query
	all := m.all()
	start := int(query.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + query.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

func (m *mockStore[T]) FindAll(ctx context.Context, query models.ListQuery) ([]T, error) {
	m.lastQuery = query
	return m.all(), nil
}

func (m *mockStore[T]) Exists(ctx context.Context, filter bson.M) (bool, error) {
	m.existsCalls++
	m.existsFilter = filter
	return m.exists, nil
}

func (m *mockStore[T]) Update(ctx context.Context, id string, set bson.M) (*T, error) {
	m.lastSet = set
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (m *mockStore[T]) UpdateStatus(ctx context.Context, id, status string) (*T, error) {
	return m.Update(ctx, id, bson.M{"status": status})
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) (*T, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.items, id)
	return item, nil
}

type mockFiles struct {
	deleted []string
}

func (m *mockFiles) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

type mockGuard struct {
	acquired bool
	keys     []string
}

func (m *mockGuard) AcquireGuard(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	m.keys = append(m.keys, key)
	return m.acquired, nil
}

type mockAuditStore struct {
	logs []*models.AuditLog
	err  error
}

func (m *mockAuditStore) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if m.err != nil {
		return m.err
	}
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockAuditStore) List(ctx context.Context, query models.ListQuery) ([]models.AuditLog, int64, error) {
	out := make([]models.AuditLog, 0, len(m.logs))
	for _, log := range m.logs {
		out = append(out, *log)
	}
	return out, int64(len(out)), nil
}

// mockCacheRepo is an in-memory CacheRepository.
type mockCacheRepo struct {
	values      map[string]interface{}
	invalidated []string
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: map[string]interface{}{}}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.GAETDate:
		*d = value.([]models.GAETDate)
	case *string:
		*d = value.(string)
	}
	return nil
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *mockCacheRepo) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = "1"
	return true, nil
}

func (m *mockCacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.values[key]
	return ok, nil
}

func (m *mockCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.values = map[string]interface{}{}
	return nil
}

type mockUserRepo struct {
	users       map[string]*models.User
	createErr   error
	lastLoginID string
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		repo.users[u.ID.Hex()] = u
	}
	return repo
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, err := m.FindByEmail(ctx, user.Email); err == nil {
		return repository.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID.Hex()] = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginID = id
	return nil
}
