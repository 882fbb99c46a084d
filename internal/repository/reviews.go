package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

// ReviewsRepository persists reviews in Postgres.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    id,
    movie_title,
    rating,
    comment,
    author,
    likes,
    dislikes,
    created_at,
    updated_at
`

// Create inserts a new review with zeroed counters and returns the stored row.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	query := fmt.Sprintf(`
        INSERT INTO reviews (id, movie_title, rating, comment, author)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, reviewColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.MovieTitle, params.Rating, params.Comment, params.Author)
	return scanReview(row)
}

// Get fetches a review by its identifier.
func (r *ReviewsRepository) Get(ctx context.Context, id string) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)
	return scanReviewOrNotFound(r.pool.QueryRow(ctx, query, id))
}

// ListByTitle returns every review for an exact title, most liked first.
func (r *ReviewsRepository) ListByTitle(ctx context.Context, title string) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews
        WHERE movie_title = $1
        ORDER BY likes DESC, created_at ASC, id ASC
    `, reviewColumns)

	rows, err := r.pool.Query(ctx, query, title)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Update changes rating and/or comment. Nil fields keep their stored value.
func (r *ReviewsRepository) Update(ctx context.Context, id string, fields domain.ReviewUpdate) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	query := fmt.Sprintf(`
        UPDATE reviews
        SET rating = COALESCE($2, rating),
            comment = COALESCE($3, comment),
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, reviewColumns)

	return scanReviewOrNotFound(r.pool.QueryRow(ctx, query, id, fields.Rating, fields.Comment))
}

// Delete removes a review. Deleting an absent id is not an error; the boolean
// reports whether a row was removed.
func (r *ReviewsRepository) Delete(ctx context.Context, id string) (domain.Review, bool, error) {
	if !validID(id) {
		return domain.Review{}, false, nil
	}
	query := fmt.Sprintf(`DELETE FROM reviews WHERE id = $1 RETURNING %s`, reviewColumns)

	review, err := scanReview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, err
	}
	return review, true, nil
}

// IncrementLike atomically adds one like.
func (r *ReviewsRepository) IncrementLike(ctx context.Context, id string) (domain.Review, error) {
	return r.increment(ctx, id, "likes")
}

// IncrementDislike atomically adds one dislike.
func (r *ReviewsRepository) IncrementDislike(ctx context.Context, id string) (domain.Review, error) {
	return r.increment(ctx, id, "dislikes")
}

// increment runs as a single UPDATE so concurrent reactions never lose a count.
// column is one of two constants, never user input.
func (r *ReviewsRepository) increment(ctx context.Context, id, column string) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	query := fmt.Sprintf(`
        UPDATE reviews
        SET %[1]s = %[1]s + 1, updated_at = now()
        WHERE id = $1
        RETURNING %[2]s
    `, column, reviewColumns)

	return scanReviewOrNotFound(r.pool.QueryRow(ctx, query, id))
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var (
		review    domain.Review
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&review.ID,
		&review.MovieTitle,
		&review.Rating,
		&review.Comment,
		&review.Author,
		&review.Likes,
		&review.Dislikes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	review.CreatedAt = createdAt.UTC()
	review.UpdatedAt = updatedAt.UTC()
	return review, nil
}

func scanReviewOrNotFound(row pgx.Row) (domain.Review, error) {
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}
