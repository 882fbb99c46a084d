package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

// MongoReviewsRepository persists reviews as documents.
type MongoReviewsRepository struct {
	coll *mongo.Collection
}

// Create inserts a new review document with zeroed counters.
func (r *MongoReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	review := domain.Review{
		ID:         uuid.NewString(),
		MovieTitle: params.MovieTitle,
		Rating:     params.Rating,
		Comment:    params.Comment,
		Author:     params.Author,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

// Get fetches a review by its identifier.
func (r *MongoReviewsRepository) Get(ctx context.Context, id string) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	return decodeReview(r.coll.FindOne(ctx, bson.M{"_id": id}))
}

// ListByTitle returns every review for an exact title, most liked first.
func (r *MongoReviewsRepository) ListByTitle(ctx context.Context, title string) ([]domain.Review, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "likes", Value: -1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, bson.M{"movie_title": title}, opts)
	if err != nil {
		return nil, err
	}

	reviews := make([]domain.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	for i := range reviews {
		normalizeReviewTimes(&reviews[i])
	}
	return reviews, nil
}

// Update changes rating and/or comment. Nil fields keep their stored value.
func (r *MongoReviewsRepository) Update(ctx context.Context, id string, fields domain.ReviewUpdate) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Rating != nil {
		set["rating"] = *fields.Rating
	}
	if fields.Comment != nil {
		set["comment"] = *fields.Comment
	}
	return r.findAndUpdate(ctx, id, bson.M{"$set": set})
}

// Delete removes a review. Deleting an absent id is not an error; the boolean
// reports whether a document was removed.
func (r *MongoReviewsRepository) Delete(ctx context.Context, id string) (domain.Review, bool, error) {
	if !validID(id) {
		return domain.Review{}, false, nil
	}
	review, err := decodeReview(r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, err
	}
	return review, true, nil
}

// IncrementLike atomically adds one like.
func (r *MongoReviewsRepository) IncrementLike(ctx context.Context, id string) (domain.Review, error) {
	return r.increment(ctx, id, "likes")
}

// IncrementDislike atomically adds one dislike.
func (r *MongoReviewsRepository) IncrementDislike(ctx context.Context, id string) (domain.Review, error) {
	return r.increment(ctx, id, "dislikes")
}

func (r *MongoReviewsRepository) increment(ctx context.Context, id, field string) (domain.Review, error) {
	if !validID(id) {
		return domain.Review{}, ErrNotFound
	}
	return r.findAndUpdate(ctx, id, bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *MongoReviewsRepository) findAndUpdate(ctx context.Context, id string, update bson.M) (domain.Review, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeReview(r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts))
}

func decodeReview(res *mongo.SingleResult) (domain.Review, error) {
	var review domain.Review
	if err := res.Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	normalizeReviewTimes(&review)
	return review, nil
}

func normalizeReviewTimes(review *domain.Review) {
	review.CreatedAt = review.CreatedAt.UTC()
	review.UpdatedAt = review.UpdatedAt.UTC()
}
