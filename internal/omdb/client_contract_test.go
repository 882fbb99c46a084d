package omdb

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestHTTPClientSmoke checks that the client can parse a live (or mock)
// OMDb record. It runs only when OMDB_URL is provided.
func TestHTTPClientSmoke(t *testing.T) {
	baseURL := os.Getenv("OMDB_URL")
	if baseURL == "" {
		t.Skip("OMDB_URL not provided")
	}
	apiKey := os.Getenv("OMDB_API_KEY")
	client, err := NewHTTPClient(baseURL, apiKey, 3*time.Second, nil)
	if err != nil {
		t.Fatalf("create http client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	movie, err := client.Fetch(ctx, "Inception")
	if err != nil {
		t.Fatalf("fetch movie: %v", err)
	}
	if movie.Title == "" {
		t.Fatalf("unexpected movie payload: %+v", movie)
	}
}
