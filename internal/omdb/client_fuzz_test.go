package omdb

import (
	"strings"
	"testing"
)

func FuzzConvertToMovie(f *testing.F) {
	f.Add("Inception", "2010", "N/A", "Internet Movie Database", "8.8/10")
	f.Add("  Heat ", "N/A", "8.3", "", "N/A")

	f.Fuzz(func(t *testing.T, title, year, imdbRating, source, value string) {
		payload := apiResponse{
			Title:      title,
			Year:       year,
			IMDbRating: imdbRating,
			Ratings:    []ratingPayload{{Source: source, Value: value}},
		}

		movie := convertToMovie(payload)
		if movie == nil {
			t.Fatalf("convertToMovie returned nil")
		}
		if movie.Title != strings.TrimSpace(title) {
			t.Fatalf("title = %q, want trimmed %q", movie.Title, title)
		}
		if movie.Year == "N/A" || movie.IMDbRating == "N/A" {
			t.Fatalf("placeholder leaked: %+v", movie)
		}
		for _, r := range movie.Ratings {
			if strings.TrimSpace(r.Source) == "" || strings.TrimSpace(r.Value) == "" {
				t.Fatalf("blank rating kept: %+v", r)
			}
		}
	})
}
