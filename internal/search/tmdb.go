package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/metrics"
	"github.com/kdimtricp/cinemente/internal/models"
)

const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"

	// MaxDiscoverPages caps how many discovery pages a single query reads.
	MaxDiscoverPages = 5

	famousMinVotes  = 1000
	obscureMaxVotes = 200

	maxErrorBodySize = 64 * 1024
)

type TMDbClient struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*TMDbClient)

func WithBaseURL(baseURL string) Option {
	return func(c *TMDbClient) { c.baseURL = baseURL }
}

func WithLanguage(language string) Option {
	return func(c *TMDbClient) { c.language = language }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *TMDbClient) { c.httpClient = hc }
}

// WithRateLimit throttles outgoing requests to perSecond requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *TMDbClient) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

type MovieDetails struct {
	ID                  int         `json:"id"`
	Title               string      `json:"title"`
	ReleaseDate         string      `json:"release_date"`
	OriginalLanguage    string      `json:"original_language"`
	Popularity          float64     `json:"popularity"`
	VoteCount           int         `json:"vote_count"`
	Runtime             *int        `json:"runtime"`
	BelongsToCollection *Collection `json:"belongs_to_collection"`
}

type Collection struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// InCollection reports whether the movie is part of a saga or franchise.
func (d *MovieDetails) InCollection() bool {
	return d.BelongsToCollection != nil
}

type genreListResponse struct {
	Genres []models.Genre `json:"genres"`
}

type DiscoverResult struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
	VoteCount        int     `json:"vote_count"`
}

func (m Movie) toFilm() models.Film {
	return models.Film{
		ID:               m.ID,
		Title:            m.Title,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
		Popularity:       m.Popularity,
		VoteCount:        m.VoteCount,
	}
}

// APIError is returned for any non-200 response from TMDb.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDb API returned status %d for %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("TMDb API returned status %d for %s", e.StatusCode, e.Endpoint)
}

// NewHTTPClient returns the HTTP client used for TMDb calls. A non-positive
// timeout falls back to 30 seconds.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func NewTMDbClient(apiKey string, opts ...Option) *TMDbClient {
	c := &TMDbClient{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		language:   DefaultLanguage,
		httpClient: NewHTTPClient(0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *TMDbClient) GetGenres(ctx context.Context) ([]models.Genre, error) {
	var resp genreListResponse
	if err := c.get(ctx, "/genre/movie/list", "genres", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

// DiscoverMovies reads up to MaxDiscoverPages pages of the discovery
// endpoint, most popular first, and returns the concatenated results.
func (c *TMDbClient) DiscoverMovies(ctx context.Context, filters models.Filters) ([]models.Film, error) {
	params := DiscoverParams(filters)

	var films []models.Film
	for page := 1; page <= MaxDiscoverPages; page++ {
		params.Set("page", strconv.Itoa(page))

		var result DiscoverResult
		if err := c.get(ctx, "/discover/movie", "discover", params, &result); err != nil {
			return nil, err
		}

		for _, m := range result.Results {
			films = append(films, m.toFilm())
		}

		totalPages := result.TotalPages
		if totalPages == 0 {
			totalPages = 1
		}
		if page >= totalPages {
			break
		}
	}

	logging.Debug().
		Int("genre_id", filters.GenreID).
		Int("candidates", len(films)).
		Msg("discovery finished")

	return films, nil
}

// DiscoverParams maps filters to discovery query parameters. It does not
// include the api_key, language or page parameters.
func DiscoverParams(filters models.Filters) url.Values {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")

	if filters.GenreID != 0 {
		params.Set("with_genres", strconv.Itoa(filters.GenreID))
	}
	if filters.ReleasedFrom != "" {
		params.Set("primary_release_date.gte", filters.ReleasedFrom)
	}
	if filters.ReleasedUntil != "" {
		params.Set("primary_release_date.lte", filters.ReleasedUntil)
	}

	switch filters.Popularity {
	case models.PopularityFamous:
		params.Set("vote_count.gte", strconv.Itoa(famousMinVotes))
	case models.PopularityObscure:
		params.Set("vote_count.lte", strconv.Itoa(obscureMaxVotes))
	}

	if filters.OriginalLanguage != "" {
		params.Set("with_original_language", filters.OriginalLanguage)
	}

	return params
}

func (c *TMDbClient) GetMovie(ctx context.Context, id int) (*MovieDetails, error) {
	var details MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), "movie", nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *TMDbClient) get(ctx context.Context, path, endpoint string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)
	query.Set("language", c.language)

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.TMDbRequests.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	metrics.TMDbRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return newAPIError(endpoint, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

func newAPIError(endpoint string, resp *http.Response) *APIError {
	apiErr := &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		StatusMessage string `json:"status_message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.StatusMessage
	}
	return apiErr
}
