package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

var (
	// ErrNotFound is returned when OMDb answers but has no movie for the title.
	ErrNotFound = errors.New("omdb: not found")
	// ErrUnavailable wraps every transport, status or decoding failure.
	ErrUnavailable = errors.New("omdb: unavailable")
)

// Client defines the contract for looking up a movie by title.
type Client interface {
	Fetch(ctx context.Context, title string) (*domain.Movie, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
	logger  *zap.SugaredLogger
}

// NewHTTPClient constructs a new HTTP-backed OMDb client.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *zap.SugaredLogger) (*HTTPClient, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse omdb url: %w", err)
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Fetch retrieves movie metadata by title.
func (c *HTTPClient) Fetch(ctx context.Context, title string) (*domain.Movie, error) {
	// The query goes to the base path itself, so OMDB_URL may carry a prefix.
	endpoint := *c.baseURL
	endpoint.Path += "/"
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("t", title)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warnw("omdb: request failed", "title", title, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("omdb: unexpected status", "status", resp.StatusCode, "title", title)
		return nil, fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warnw("omdb: malformed response", "title", title, "error", err)
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if strings.EqualFold(payload.Response, "False") {
		return nil, ErrNotFound
	}
	if strings.TrimSpace(payload.Title) == "" {
		return nil, fmt.Errorf("%w: response without title", ErrUnavailable)
	}
	return convertToMovie(payload), nil
}

// apiResponse mirrors the OMDb "by title" payload. Field names are the
// upstream's PascalCase keys.
type apiResponse struct {
	Title      string          `json:"Title"`
	Year       string          `json:"Year"`
	Rated      string          `json:"Rated"`
	Released   string          `json:"Released"`
	Runtime    string          `json:"Runtime"`
	Genre      string          `json:"Genre"`
	Director   string          `json:"Director"`
	Writer     string          `json:"Writer"`
	Actors     string          `json:"Actors"`
	Plot       string          `json:"Plot"`
	Language   string          `json:"Language"`
	Country    string          `json:"Country"`
	Awards     string          `json:"Awards"`
	Poster     string          `json:"Poster"`
	Ratings    []ratingPayload `json:"Ratings"`
	Metascore  string          `json:"Metascore"`
	IMDbRating string          `json:"imdbRating"`
	IMDbVotes  string          `json:"imdbVotes"`
	IMDbID     string          `json:"imdbID"`
	Type       string          `json:"Type"`
	BoxOffice  string          `json:"BoxOffice"`
	Response   string          `json:"Response"`
	Error      string          `json:"Error"`
}

type ratingPayload struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// convertToMovie drops OMDb's "N/A" placeholders.
func convertToMovie(payload apiResponse) *domain.Movie {
	movie := &domain.Movie{
		Title:      strings.TrimSpace(payload.Title),
		Year:       clean(payload.Year),
		Rated:      clean(payload.Rated),
		Released:   clean(payload.Released),
		Runtime:    clean(payload.Runtime),
		Genre:      clean(payload.Genre),
		Director:   clean(payload.Director),
		Writer:     clean(payload.Writer),
		Actors:     clean(payload.Actors),
		Plot:       clean(payload.Plot),
		Language:   clean(payload.Language),
		Country:    clean(payload.Country),
		Awards:     clean(payload.Awards),
		Poster:     clean(payload.Poster),
		Metascore:  clean(payload.Metascore),
		IMDbRating: clean(payload.IMDbRating),
		IMDbVotes:  clean(payload.IMDbVotes),
		IMDbID:     clean(payload.IMDbID),
		Type:       clean(payload.Type),
		BoxOffice:  clean(payload.BoxOffice),
	}
	for _, r := range payload.Ratings {
		if clean(r.Source) == "" || clean(r.Value) == "" {
			continue
		}
		movie.Ratings = append(movie.Ratings, domain.SourceRating{Source: r.Source, Value: r.Value})
	}
	return movie
}

func clean(value string) string {
	value = strings.TrimSpace(value)
	if value == "N/A" {
		return ""
	}
	return value
}
