package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/man-in-dev/goal-backend-sub001/internal/models"
)

// ErrDuplicateEmail is returned when the unique email index rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository provides database access for operator accounts.
type UserRepository struct {
	docs *MongoRepository[models.User]
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{docs: NewMongoRepository[models.User](db, CollectionUsers, CollectionOptions{
		SearchFields: []string{"name", "email"},
	})}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.docs.FindOne(ctx, bson.M{"email": email})
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.docs.FindByID(ctx, id)
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.docs.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateLastLogin records the time of the latest successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.docs.Update(ctx, id, bson.M{"lastLoginAt": ts.UTC()}); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// CountByRole returns how many accounts hold the role.
func (r *UserRepository) CountByRole(ctx context.Context, role models.UserRole) (int64, error) {
	count, err := r.docs.Collection().CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}
