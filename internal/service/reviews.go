package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
	"github.com/Clark-Hu/movie-reviews/internal/errs"
	"github.com/Clark-Hu/movie-reviews/internal/repository"
)

const (
	msgReviewNotFound = "Review not found."
	msgReviewSave     = "Could not save the review. Please try again later."
	msgNothingToEdit  = "Provide a rating or a comment to update."
	msgBadReaction    = "Reaction must be like or dislike."
)

// ReviewWorkflow mutates reviews and re-renders the affected movie.
//
// Every method returns a SearchResult that can be rendered even when the
// error is non-nil; errors are always *errs.Error.
type ReviewWorkflow struct {
	reviews  ReviewStore
	search   *SearchWorkflow
	validate *Validator
	logger   *zap.SugaredLogger
}

// NewReviewWorkflow wires the review workflow.
func NewReviewWorkflow(reviews ReviewStore, search *SearchWorkflow, validate *Validator, logger *zap.SugaredLogger) *ReviewWorkflow {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if validate == nil {
		validate = NewValidator()
	}
	return &ReviewWorkflow{reviews: reviews, search: search, validate: validate, logger: logger}
}

// Submit stores a new review and re-renders its movie.
func (w *ReviewWorkflow) Submit(ctx context.Context, input domain.ReviewInput) (SearchResult, error) {
	if err := w.validate.Validate(input); err != nil {
		return w.render(ctx, input.MovieTitle), err
	}

	review, err := w.reviews.Create(ctx, repository.ReviewCreateParams{
		MovieTitle: input.MovieTitle,
		Rating:     *input.Rating,
		Comment:    input.Comment,
		Author:     input.Author,
	})
	if err != nil {
		reportStoreError(ctx, w.logger, "reviews: create", err, "title", input.MovieTitle)
		return w.render(ctx, input.MovieTitle), errs.Errorf(errs.EINTERNAL, msgReviewSave)
	}

	result := w.render(ctx, review.MovieTitle)
	if orphaned(result, review) {
		w.logger.Warnw("reviews: stored review is not listed under any resolved movie",
			"review_id", review.ID, "title", review.MovieTitle, "state", result.State)
	}
	return result, nil
}

// orphaned reports whether review will not appear on its movie's page. Reviews
// are keyed by exact title, so a query that resolves to a differently spelled
// canonical title leaves the review unlisted too.
func orphaned(result SearchResult, review domain.Review) bool {
	switch result.State {
	case StateLookupFailed:
		return false
	case StateFound:
		return result.Movie == nil || result.Movie.Title != review.MovieTitle
	default:
		return true
	}
}

// Edit applies a partial update to an existing review.
func (w *ReviewWorkflow) Edit(ctx context.Context, id string, update domain.ReviewUpdate) (SearchResult, error) {
	if update.Empty() {
		return w.render(ctx, ""), errs.Errorf(errs.EINVALID, msgNothingToEdit)
	}
	if err := w.validate.Validate(update); err != nil {
		return w.render(ctx, ""), err
	}

	review, err := w.reviews.Update(ctx, id, update)
	if err != nil {
		return w.renderStoreFailure(ctx, "reviews: update", id, err)
	}
	return w.render(ctx, review.MovieTitle), nil
}

// Remove deletes a review. Removing an absent id succeeds; fallbackTitle is
// rendered when the deleted record cannot tell us its movie.
func (w *ReviewWorkflow) Remove(ctx context.Context, id, fallbackTitle string) (SearchResult, error) {
	review, deleted, err := w.reviews.Delete(ctx, id)
	if err != nil {
		reportStoreError(ctx, w.logger, "reviews: delete", err, "review_id", id)
		return w.render(ctx, fallbackTitle), errs.Errorf(errs.EINTERNAL, msgReviewSave)
	}
	if !deleted {
		w.logger.Infow("reviews: delete of absent review", "review_id", id)
		return w.render(ctx, fallbackTitle), nil
	}
	return w.render(ctx, review.MovieTitle), nil
}

// React adds a like or a dislike.
func (w *ReviewWorkflow) React(ctx context.Context, id string, reaction domain.Reaction) (SearchResult, error) {
	var (
		review domain.Review
		err    error
	)
	switch reaction {
	case domain.ReactionLike:
		review, err = w.reviews.IncrementLike(ctx, id)
	case domain.ReactionDislike:
		review, err = w.reviews.IncrementDislike(ctx, id)
	default:
		return w.render(ctx, ""), errs.Errorf(errs.EINVALID, msgBadReaction)
	}
	if err != nil {
		return w.renderStoreFailure(ctx, "reviews: "+string(reaction), id, err)
	}
	return w.render(ctx, review.MovieTitle), nil
}

func (w *ReviewWorkflow) renderStoreFailure(ctx context.Context, op, id string, err error) (SearchResult, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return w.render(ctx, ""), errs.Errorf(errs.ENOTFOUND, msgReviewNotFound)
	}
	reportStoreError(ctx, w.logger, op, err, "review_id", id)
	return w.render(ctx, ""), errs.Errorf(errs.EINTERNAL, msgReviewSave)
}

// render re-runs the search for title. A blank title yields an empty result
// without calling the lookup.
func (w *ReviewWorkflow) render(ctx context.Context, title string) SearchResult {
	if strings.TrimSpace(title) == "" {
		return emptyResult(StateEmptyQuery, "", "")
	}
	return w.search.Search(ctx, title)
}
