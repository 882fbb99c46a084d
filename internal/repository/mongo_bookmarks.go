package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

// MongoBookmarksRepository persists bookmarks as documents. The collection
// carries a unique index on movie_title.
type MongoBookmarksRepository struct {
	coll *mongo.Collection
}

// Toggle removes the bookmark for title if present, otherwise creates it, and
// reports whether the title is bookmarked afterwards. A duplicate-key error on
// insert means a concurrent toggle created it first.
func (r *MongoBookmarksRepository) Toggle(ctx context.Context, title string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"movie_title": title})
	if err != nil {
		return false, err
	}
	if res.DeletedCount > 0 {
		return false, nil
	}

	_, err = r.coll.InsertOne(ctx, domain.Bookmark{
		MovieTitle: title,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return false, err
	}
	return true, nil
}

// Exists reports whether title is bookmarked.
func (r *MongoBookmarksRepository) Exists(ctx context.Context, title string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"movie_title": title}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListAll returns every bookmark, oldest first.
func (r *MongoBookmarksRepository) ListAll(ctx context.Context) ([]domain.Bookmark, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "movie_title", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	bookmarks := make([]domain.Bookmark, 0)
	if err := cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	for i := range bookmarks {
		bookmarks[i].CreatedAt = bookmarks[i].CreatedAt.UTC()
	}
	return bookmarks, nil
}
