package domain

// SourceRating is a third-party score attached to a movie (IMDb, Rotten Tomatoes, ...).
type SourceRating struct {
	Source string `json:"source"`
	Value  string `json:"value"`
}

// Movie is the metadata returned by the movie lookup. Title is the canonical
// title resolved by the upstream service, which may differ from the query.
type Movie struct {
	Title      string         `json:"title"`
	Year       string         `json:"year,omitempty"`
	Rated      string         `json:"rated,omitempty"`
	Released   string         `json:"released,omitempty"`
	Runtime    string         `json:"runtime,omitempty"`
	Genre      string         `json:"genre,omitempty"`
	Director   string         `json:"director,omitempty"`
	Writer     string         `json:"writer,omitempty"`
	Actors     string         `json:"actors,omitempty"`
	Plot       string         `json:"plot,omitempty"`
	Language   string         `json:"language,omitempty"`
	Country    string         `json:"country,omitempty"`
	Awards     string         `json:"awards,omitempty"`
	Poster     string         `json:"poster,omitempty"`
	Ratings    []SourceRating `json:"ratings,omitempty"`
	Metascore  string         `json:"metascore,omitempty"`
	IMDbRating string         `json:"imdbRating,omitempty"`
	IMDbVotes  string         `json:"imdbVotes,omitempty"`
	IMDbID     string         `json:"imdbId,omitempty"`
	Type       string         `json:"type,omitempty"`
	BoxOffice  string         `json:"boxOffice,omitempty"`
}
