package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/kdimtricp/cinemente/internal/models"
	"github.com/kdimtricp/cinemente/internal/search"
)

type fakeSource struct {
	films       []models.Film
	details     map[int]*search.MovieDetails
	discoverErr error
	detailErr   map[int]error
	lookups     []int
}

func (f *fakeSource) DiscoverMovies(ctx context.Context, filters models.Filters) ([]models.Film, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.films, nil
}

func (f *fakeSource) GetMovie(ctx context.Context, id int) (*search.MovieDetails, error) {
	f.lookups = append(f.lookups, id)
	if err := f.detailErr[id]; err != nil {
		return nil, err
	}
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return &search.MovieDetails{ID: id}, nil
}

type fakeHistory struct {
	seen     map[int]string
	recorded []int
	err      error
}

func newFakeHistory(ids ...int) *fakeHistory {
	h := &fakeHistory{seen: map[int]string{}}
	for _, id := range ids {
		h.seen[id] = "seen"
	}
	return h
}

func (h *fakeHistory) IsSeen(ctx context.Context, filmID int) (bool, error) {
	if h.err != nil {
		return false, h.err
	}
	_, ok := h.seen[filmID]
	return ok, nil
}

func (h *fakeHistory) Record(ctx context.Context, record *models.HistoryRecord) (bool, error) {
	if _, ok := h.seen[record.FilmID]; ok {
		return false, nil
	}
	h.seen[record.FilmID] = record.Title
	h.recorded = append(h.recorded, record.FilmID)
	return true, nil
}

func standaloneDetails(id, runtime int) *search.MovieDetails {
	return &search.MovieDetails{ID: id, Runtime: &runtime}
}

func franchiseDetails(id, runtime int) *search.MovieDetails {
	return &search.MovieDetails{ID: id, Runtime: &runtime, BelongsToCollection: &search.Collection{ID: 1, Name: "Saga"}}
}

func newCatalogue() *fakeSource {
	return &fakeSource{
		films: []models.Film{
			{ID: 1, Title: "Short Standalone"},
			{ID: 2, Title: "Standard Standalone"},
			{ID: 3, Title: "Standard Franchise"},
			{ID: 4, Title: "Another Standard Standalone"},
			{ID: 5, Title: "Unknown Runtime"},
		},
		details: map[int]*search.MovieDetails{
			1: standaloneDetails(1, 85),
			2: standaloneDetails(2, 110),
			3: franchiseDetails(3, 115),
			4: standaloneDetails(4, 95),
			5: {ID: 5},
		},
	}
}

var standardStandalone = models.Filters{Duration: models.DurationStandard}

func TestService_Recommend_PicksUnseenAndRecords(t *testing.T) {
	source := newCatalogue()
	history := newFakeHistory()
	svc := NewService(source, history, WithRandom(func(n int) int { return n - 1 }))

	result, err := svc.Recommend(context.Background(), standardStandalone)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.Outcome != OutcomePicked {
		t.Fatalf("Expected picked outcome, got %s", result.Outcome)
	}
	if result.Pick.ID != 4 {
		t.Errorf("Expected last unseen match (4), got %d", result.Pick.ID)
	}
	if result.Pick.Runtime == nil || *result.Pick.Runtime != 95 {
		t.Errorf("Expected pick to carry runtime from details, got %v", result.Pick.Runtime)
	}
	if result.Discovered != 5 || result.Matched != 2 {
		t.Errorf("Expected 5 discovered / 2 matched, got %d / %d", result.Discovered, result.Matched)
	}
	if len(history.recorded) != 1 || history.recorded[0] != 4 {
		t.Errorf("Expected pick to be recorded, got %v", history.recorded)
	}
	if result.CycleID == "" {
		t.Error("Expected a cycle id")
	}
	if len(source.lookups) != 5 {
		t.Errorf("Expected a detail lookup per candidate, got %v", source.lookups)
	}
}

func TestService_Recommend_SkipsSeen(t *testing.T) {
	source := newCatalogue()
	history := newFakeHistory(2)
	svc := NewService(source, history, WithRandom(func(n int) int {
		if n != 1 {
			t.Errorf("Expected a single unseen candidate, got %d", n)
		}
		return 0
	}))

	result, err := svc.Recommend(context.Background(), standardStandalone)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.Pick == nil || result.Pick.ID != 4 {
		t.Fatalf("Expected film 4, got %+v", result.Pick)
	}
}

func TestService_Recommend_NeverRepeats(t *testing.T) {
	source := newCatalogue()
	history := newFakeHistory()
	svc := NewService(source, history)

	picked := map[int]bool{}
	for i := 0; i < 2; i++ {
		result, err := svc.Recommend(context.Background(), standardStandalone)
		if err != nil {
			t.Fatalf("Recommend failed: %v", err)
		}
		if result.Outcome != OutcomePicked {
			t.Fatalf("Cycle %d: expected pick, got %s", i, result.Outcome)
		}
		if picked[result.Pick.ID] {
			t.Fatalf("Film %d recommended twice", result.Pick.ID)
		}
		picked[result.Pick.ID] = true
	}

	result, err := svc.Recommend(context.Background(), standardStandalone)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if result.Outcome != OutcomeAllSeen {
		t.Errorf("Expected all-seen once every match is in history, got %s", result.Outcome)
	}
}

func TestService_Recommend_AllSeenListsMatches(t *testing.T) {
	source := newCatalogue()
	history := newFakeHistory(2, 4)
	svc := NewService(source, history)

	result, err := svc.Recommend(context.Background(), standardStandalone)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.Outcome != OutcomeAllSeen {
		t.Fatalf("Expected all_seen, got %s", result.Outcome)
	}
	if result.Pick != nil {
		t.Error("Expected no pick")
	}
	if len(result.Alternatives) != 2 || result.Alternatives[0].ID != 2 || result.Alternatives[1].ID != 4 {
		t.Errorf("Expected both matches as alternatives in order, got %+v", result.Alternatives)
	}
	if len(history.recorded) != 0 {
		t.Errorf("Nothing should be recorded, got %v", history.recorded)
	}
}

func TestService_Recommend_NoResults(t *testing.T) {
	source := newCatalogue()
	svc := NewService(source, newFakeHistory())

	result, err := svc.Recommend(context.Background(), models.Filters{Duration: models.DurationLong, Franchise: true})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.Outcome != OutcomeNoResults {
		t.Errorf("Expected no_results, got %s", result.Outcome)
	}
	if len(result.Alternatives) != 0 {
		t.Errorf("Expected no alternatives, got %d", len(result.Alternatives))
	}
}

func TestService_Recommend_DiscoveryError(t *testing.T) {
	source := &fakeSource{discoverErr: &search.APIError{Endpoint: "discover", StatusCode: 401}}
	svc := NewService(source, newFakeHistory())

	_, err := svc.Recommend(context.Background(), standardStandalone)
	var apiErr *search.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Errorf("Expected wrapped APIError, got %v", err)
	}
}

func TestService_Recommend_DetailErrorAborts(t *testing.T) {
	source := newCatalogue()
	source.detailErr = map[int]error{3: errors.New("connection reset")}
	history := newFakeHistory()
	svc := NewService(source, history)

	if _, err := svc.Recommend(context.Background(), standardStandalone); err == nil {
		t.Fatal("Expected detail failure to abort the cycle")
	}

	if len(source.lookups) != 3 {
		t.Errorf("Expected lookups to stop at the failing film, got %v", source.lookups)
	}
	if len(history.recorded) != 0 {
		t.Errorf("Nothing should be recorded after a failure, got %v", history.recorded)
	}
}

func TestService_Recommend_HistoryError(t *testing.T) {
	history := newFakeHistory()
	history.err = errors.New("database is locked")
	svc := NewService(newCatalogue(), history)

	if _, err := svc.Recommend(context.Background(), standardStandalone); err == nil {
		t.Fatal("Expected history failure to abort the cycle")
	}
}

func TestService_Recommend_ZeroRuntimeCountsAsShort(t *testing.T) {
	source := &fakeSource{
		films: []models.Film{
			{ID: 10, Title: "Zero Runtime"},
			{ID: 11, Title: "Null Runtime"},
		},
		details: map[int]*search.MovieDetails{
			10: standaloneDetails(10, 0),
			11: {ID: 11},
		},
	}
	svc := NewService(source, newFakeHistory())

	result, err := svc.Recommend(context.Background(), models.Filters{Duration: models.DurationShort})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.Outcome != OutcomePicked || result.Pick.ID != 10 {
		t.Fatalf("Expected film 10 picked, got %s %+v", result.Outcome, result.Pick)
	}
	if result.Matched != 1 {
		t.Errorf("Expected 1 match, got %d", result.Matched)
	}
}
