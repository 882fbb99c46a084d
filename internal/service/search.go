package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/omdb"
)

// SearchState is the terminal state of a movie search.
type SearchState string

const (
	StateEmptyQuery   SearchState = "empty_query"
	StateNoResult     SearchState = "no_result"
	StateLookupFailed SearchState = "lookup_failed"
	StateFound        SearchState = "found"
)

// User-facing messages for the states without a movie.
const (
	MsgEmptyQuery   = "Please enter a movie title."
	MsgNoResult     = "No information was found for that movie."
	MsgLookupFailed = "Failed to fetch movie information. Please try again later."
)

// SearchResult is the renderable outcome of a search. Reviews is never nil and
// AvgRating is nil when there are no reviews.
type SearchResult struct {
	State        SearchState     `json:"state"`
	Query        string          `json:"query"`
	Movie        *domain.Movie   `json:"movie"`
	Error        string          `json:"error,omitempty"`
	Reviews      []domain.Review `json:"reviews"`
	AvgRating    *float64        `json:"avgRating"`
	IsBookmarked bool            `json:"isBookmarked"`
}

func emptyResult(state SearchState, query, message string) SearchResult {
	return SearchResult{
		State:   state,
		Query:   query,
		Error:   message,
		Reviews: []domain.Review{},
	}
}

// SearchWorkflow answers "search for a movie" by combining the lookup with the
// stored reviews and bookmark state.
type SearchWorkflow struct {
	movies    MovieLookup
	reviews   ReviewStore
	bookmarks BookmarkStore
	logger    *zap.SugaredLogger
}

// NewSearchWorkflow wires the search workflow.
func NewSearchWorkflow(movies MovieLookup, reviews ReviewStore, bookmarks BookmarkStore, logger *zap.SugaredLogger) *SearchWorkflow {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SearchWorkflow{movies: movies, reviews: reviews, bookmarks: bookmarks, logger: logger}
}

// Search never fails: every outcome is a renderable SearchResult.
func (w *SearchWorkflow) Search(ctx context.Context, query string) SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyResult(StateEmptyQuery, query, MsgEmptyQuery)
	}

	movie, err := w.movies.Fetch(ctx, query)
	switch {
	case errors.Is(err, omdb.ErrNotFound):
		return emptyResult(StateNoResult, query, MsgNoResult)
	case err != nil:
		w.logger.Warnw("search: movie lookup failed", "query", query, "error", err)
		return emptyResult(StateLookupFailed, query, MsgLookupFailed)
	case movie == nil:
		return emptyResult(StateNoResult, query, MsgNoResult)
	}

	result := emptyResult(StateFound, query, "")
	result.Movie = movie

	// Each branch degrades on its own; neither returns an error to the group.
	var g errgroup.Group
	g.Go(func() error {
		reviews, err := w.reviews.ListByTitle(ctx, movie.Title)
		if err != nil {
			reportStoreError(ctx, w.logger, "search: list reviews", err, "title", movie.Title)
			return nil
		}
		result.Reviews = reviews
		if avg, ok := domain.AverageRating(reviews); ok {
			result.AvgRating = &avg
		}
		return nil
	})
	g.Go(func() error {
		bookmarked, err := w.bookmarks.Exists(ctx, movie.Title)
		if err != nil {
			reportStoreError(ctx, w.logger, "search: bookmark lookup", err, "title", movie.Title)
			return nil
		}
		result.IsBookmarked = bookmarked
		return nil
	})
	_ = g.Wait()

	if result.Reviews == nil {
		result.Reviews = []domain.Review{}
	}
	return result
}
