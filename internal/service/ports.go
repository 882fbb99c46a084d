package service

import (
	"context"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/repository"
)

// MovieLookup resolves a title to movie metadata.
type MovieLookup interface {
	Fetch(ctx context.Context, title string) (*domain.Movie, error)
}

// ReviewStore is the review persistence the workflows depend on.
type ReviewStore interface {
	Create(ctx context.Context, params repository.ReviewCreateParams) (domain.Review, error)
	ListByTitle(ctx context.Context, title string) ([]domain.Review, error)
	Update(ctx context.Context, id string, fields domain.ReviewUpdate) (domain.Review, error)
	Delete(ctx context.Context, id string) (domain.Review, bool, error)
	IncrementLike(ctx context.Context, id string) (domain.Review, error)
	IncrementDislike(ctx context.Context, id string) (domain.Review, error)
}

// BookmarkStore is the bookmark persistence the workflows depend on.
type BookmarkStore interface {
	Toggle(ctx context.Context, title string) (bool, error)
	Exists(ctx context.Context, title string) (bool, error)
	ListAll(ctx context.Context) ([]domain.Bookmark, error)
}

// UserStore is the account persistence used by AuthWorkflow.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
