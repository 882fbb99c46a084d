package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

// BookmarksRepository persists bookmarks in Postgres. movie_title is the
// primary key, so at most one row exists per title.
type BookmarksRepository struct {
	pool *pgxpool.Pool
}

// Toggle removes the bookmark for title if present, otherwise creates it, and
// reports whether the title is bookmarked afterwards.
//
// Each step is a single statement. A concurrent toggle that inserts first makes
// our insert a no-op, and we still report true since the bookmark exists.
func (r *BookmarksRepository) Toggle(ctx context.Context, title string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bookmarks WHERE movie_title = $1`, title)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	const insert = `
        INSERT INTO bookmarks (movie_title)
        VALUES ($1)
        ON CONFLICT (movie_title) DO NOTHING
    `
	if _, err := r.pool.Exec(ctx, insert, title); err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether title is bookmarked.
func (r *BookmarksRepository) Exists(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookmarks WHERE movie_title = $1)`, title).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListAll returns every bookmark, oldest first.
func (r *BookmarksRepository) ListAll(ctx context.Context) ([]domain.Bookmark, error) {
	rows, err := r.pool.Query(ctx, `SELECT movie_title, created_at FROM bookmarks ORDER BY created_at ASC, movie_title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := make([]domain.Bookmark, 0)
	for rows.Next() {
		var b domain.Bookmark
		if err := rows.Scan(&b.MovieTitle, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.CreatedAt = b.CreatedAt.UTC()
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookmarks, nil
}
