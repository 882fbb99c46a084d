package domain

import "time"

// Review is a user review attached to a movie by title.
type Review struct {
	ID         string    `json:"id" bson:"_id"`
	MovieTitle string    `json:"movieTitle" bson:"movie_title"`
	Rating     float64   `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	Author     string    `json:"author" bson:"author"`
	Likes      int64     `json:"likes" bson:"likes"`
	Dislikes   int64     `json:"dislikes" bson:"dislikes"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// ReviewInput carries the fields of a review submission. Rating is a pointer so
// a missing value can be told apart from zero.
type ReviewInput struct {
	MovieTitle string   `json:"movieTitle" validate:"required,notblank"`
	Rating     *float64 `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string   `json:"comment" validate:"required,notblank"`
	Author     string   `json:"author" validate:"required,notblank"`
}

// ReviewUpdate is a partial update; nil fields are left untouched.
type ReviewUpdate struct {
	Rating  *float64 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string  `json:"comment" validate:"omitempty,notblank"`
}

// Empty reports whether the update changes nothing.
func (u ReviewUpdate) Empty() bool {
	return u.Rating == nil && u.Comment == nil
}

// Reaction is a like or a dislike on a review.
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Valid reports whether r is a known reaction.
func (r Reaction) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}
