package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/store"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict indicates a uniqueness constraint rejected the write.
	ErrConflict = errors.New("repository: conflict")
)

// ReviewCreateParams bundles the fields required to create a review.
type ReviewCreateParams struct {
	MovieTitle string
	Rating     float64
	Comment    string
	Author     string
}

// Reviews is the review persistence contract shared by every backend.
type Reviews interface {
	Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error)
	Get(ctx context.Context, id string) (domain.Review, error)
	ListByTitle(ctx context.Context, title string) ([]domain.Review, error)
	Update(ctx context.Context, id string, fields domain.ReviewUpdate) (domain.Review, error)
	Delete(ctx context.Context, id string) (domain.Review, bool, error)
	IncrementLike(ctx context.Context, id string) (domain.Review, error)
	IncrementDislike(ctx context.Context, id string) (domain.Review, error)
}

// Bookmarks is the bookmark persistence contract shared by every backend.
type Bookmarks interface {
	Toggle(ctx context.Context, title string) (bool, error)
	Exists(ctx context.Context, title string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Bookmark, error)
}

// Users is the account persistence contract shared by every backend.
type Users interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Reviews   Reviews
	Bookmarks Bookmarks
	Users     Users
}

// New constructs a Repository backed by the provided Postgres store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Reviews:   &ReviewsRepository{pool: pool},
		Bookmarks: &BookmarksRepository{pool: pool},
		Users:     &UsersRepository{pool: pool},
	}
}

// NewMongo constructs a Repository backed by MongoDB collections.
func NewMongo(m *store.Mongo) *Repository {
	return &Repository{
		Reviews:   &MongoReviewsRepository{coll: m.Collection(store.ReviewsCollection)},
		Bookmarks: &MongoBookmarksRepository{coll: m.Collection(store.BookmarksCollection)},
		Users:     &MongoUsersRepository{coll: m.Collection(store.UsersCollection)},
	}
}

// validID reports whether id has the shape of an identifier we issue. Anything
// else cannot exist and is treated as not found.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
