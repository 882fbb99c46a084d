package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

// MongoUsersRepository persists accounts as documents with a unique email index.
type MongoUsersRepository struct {
	coll *mongo.Collection
}

// Create stores a new account. A duplicate email yields ErrConflict.
func (r *MongoUsersRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByEmail fetches an account by email.
func (r *MongoUsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return decodeUser(r.coll.FindOne(ctx, bson.M{"email": email}))
}

// GetByID fetches an account by identifier.
func (r *MongoUsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	if !validID(id) {
		return domain.User{}, ErrNotFound
	}
	return decodeUser(r.coll.FindOne(ctx, bson.M{"_id": id}))
}

func decodeUser(res *mongo.SingleResult) (domain.User, error) {
	var u domain.User
	if err := res.Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}
