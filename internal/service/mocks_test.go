package service_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/repository"
)

type MockMovieLookup struct {
	mock.Mock
}

func (m *MockMovieLookup) Fetch(ctx context.Context, title string) (*domain.Movie, error) {
	args := m.Called(ctx, title)
	movie, _ := args.Get(0).(*domain.Movie)
	return movie, args.Error(1)
}

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Create(ctx context.Context, params repository.ReviewCreateParams) (domain.Review, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewStore) ListByTitle(ctx context.Context, title string) ([]domain.Review, error) {
	args := m.Called(ctx, title)
	reviews, _ := args.Get(0).([]domain.Review)
	return reviews, args.Error(1)
}

func (m *MockReviewStore) Update(ctx context.Context, id string, fields domain.ReviewUpdate) (domain.Review, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewStore) Delete(ctx context.Context, id string) (domain.Review, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Bool(1), args.Error(2)
}

func (m *MockReviewStore) IncrementLike(ctx context.Context, id string) (domain.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewStore) IncrementDislike(ctx context.Context, id string) (domain.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Error(1)
}

type MockBookmarkStore struct {
	mock.Mock
}

func (m *MockBookmarkStore) Toggle(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkStore) Exists(ctx context.Context, title string) (bool, error) {
	args := m.Called(ctx, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkStore) ListAll(ctx context.Context) ([]domain.Bookmark, error) {
	args := m.Called(ctx)
	bookmarks, _ := args.Get(0).([]domain.Bookmark)
	return bookmarks, args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
