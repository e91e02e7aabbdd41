package recommend

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/metrics"
	"github.com/kdimtricp/cinemente/internal/models"
	"github.com/kdimtricp/cinemente/internal/search"
)

type MovieSource interface {
	DiscoverMovies(ctx context.Context, filters models.Filters) ([]models.Film, error)
	GetMovie(ctx context.Context, id int) (*search.MovieDetails, error)
}

type History interface {
	IsSeen(ctx context.Context, filmID int) (bool, error)
	Record(ctx context.Context, record *models.HistoryRecord) (bool, error)
}

type Outcome string

const (
	OutcomePicked    Outcome = "picked"
	OutcomeAllSeen   Outcome = "all_seen"
	OutcomeNoResults Outcome = "no_results"
)

type Result struct {
	CycleID      string        `json:"cycle_id"`
	Outcome      Outcome       `json:"outcome"`
	Pick         *models.Film  `json:"pick,omitempty"`
	Alternatives []models.Film `json:"alternatives,omitempty"`
	Discovered   int           `json:"discovered"`
	Matched      int           `json:"matched"`
}

type Service struct {
	source  MovieSource
	history History
	intn    func(n int) int
}

type Option func(*Service)

// WithRandom replaces the selection function. intn must return a value
// in [0, n).
func WithRandom(intn func(n int) int) Option {
	return func(s *Service) { s.intn = intn }
}

func NewService(source MovieSource, history History, opts ...Option) *Service {
	s := &Service{
		source:  source,
		history: history,
		intn:    rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend runs one cycle: discovery, per-film detail lookups with the
// runtime and franchise predicates, then a random pick among films not in
// the history. The pick is recorded before returning. Any API or store
// failure aborts the cycle.
func (s *Service) Recommend(ctx context.Context, filters models.Filters) (*Result, error) {
	result := &Result{CycleID: uuid.New().String()}
	log := logging.With("recommend").With().Str("cycle_id", result.CycleID).Logger()

	candidates, err := s.source.DiscoverMovies(ctx, filters)
	if err != nil {
		metrics.Recommendations.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("discovering movies: %w", err)
	}
	result.Discovered = len(candidates)

	filtered, err := s.filter(ctx, candidates, filters)
	if err != nil {
		metrics.Recommendations.WithLabelValues("error").Inc()
		return nil, err
	}
	result.Matched = len(filtered)
	metrics.CandidatesFiltered.Observe(float64(len(filtered)))

	var unseen []models.Film
	for _, film := range filtered {
		seen, err := s.history.IsSeen(ctx, film.ID)
		if err != nil {
			metrics.Recommendations.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("checking history: %w", err)
		}
		if !seen {
			unseen = append(unseen, film)
		}
	}

	switch {
	case len(unseen) > 0:
		pick := unseen[s.intn(len(unseen))]
		if _, err := s.history.Record(ctx, models.NewHistoryRecord(pick.ID, pick.Title)); err != nil {
			metrics.Recommendations.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("recording pick: %w", err)
		}
		result.Outcome = OutcomePicked
		result.Pick = &pick
	case len(filtered) > 0:
		result.Outcome = OutcomeAllSeen
		result.Alternatives = filtered
	default:
		result.Outcome = OutcomeNoResults
	}

	metrics.Recommendations.WithLabelValues(string(result.Outcome)).Inc()

	log.Info().
		Str("outcome", string(result.Outcome)).
		Int("discovered", result.Discovered).
		Int("matched", result.Matched).
		Int("unseen", len(unseen)).
		Msg("recommendation cycle finished")

	return result, nil
}

func (s *Service) filter(ctx context.Context, candidates []models.Film, filters models.Filters) ([]models.Film, error) {
	var filtered []models.Film
	for _, film := range candidates {
		details, err := s.source.GetMovie(ctx, film.ID)
		if err != nil {
			return nil, fmt.Errorf("getting details for film %d: %w", film.ID, err)
		}

		film.Runtime = details.Runtime
		film.InCollection = details.InCollection()

		if Matches(film, filters) {
			filtered = append(filtered, film)
		}
	}
	return filtered, nil
}
