package domain

import "time"

// Bookmark marks a movie title as saved. At most one bookmark exists per title.
type Bookmark struct {
	MovieTitle string    `json:"movieTitle" bson:"movie_title"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}
