package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/errs"
)

// BookmarkWorkflow toggles and lists bookmarks. Titles are not checked
// against the lookup.
type BookmarkWorkflow struct {
	bookmarks BookmarkStore
	logger    *zap.SugaredLogger
}

// NewBookmarkWorkflow wires the bookmark workflow.
func NewBookmarkWorkflow(bookmarks BookmarkStore, logger *zap.SugaredLogger) *BookmarkWorkflow {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BookmarkWorkflow{bookmarks: bookmarks, logger: logger}
}

// Toggle flips the bookmark for title and reports the new state.
func (w *BookmarkWorkflow) Toggle(ctx context.Context, title string) (bool, error) {
	if strings.TrimSpace(title) == "" {
		return false, errs.Errorf(errs.EINVALID, "movieTitle is required.")
	}
	bookmarked, err := w.bookmarks.Toggle(ctx, title)
	if err != nil {
		reportStoreError(ctx, w.logger, "bookmarks: toggle", err, "title", title)
		return false, errs.Errorf(errs.EINTERNAL, "Could not update the bookmark. Please try again later.")
	}
	return bookmarked, nil
}

// List returns every bookmark, oldest first.
func (w *BookmarkWorkflow) List(ctx context.Context) ([]domain.Bookmark, error) {
	bookmarks, err := w.bookmarks.ListAll(ctx)
	if err != nil {
		reportStoreError(ctx, w.logger, "bookmarks: list", err)
		return nil, errs.Errorf(errs.EINTERNAL, "Could not load bookmarks. Please try again later.")
	}
	return bookmarks, nil
}
