package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/models"
	"github.com/kdimtricp/cinemente/internal/quiz"
	"github.com/kdimtricp/cinemente/internal/recommend"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	maxRequestBodySize  = 64 * 1024
)

type Recommender interface {
	Recommend(ctx context.Context, filters models.Filters) (*recommend.Result, error)
}

type HistoryLister interface {
	List(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}

type App struct {
	Genres      []models.Genre
	Recommender Recommender
	History     HistoryLister

	validate *validator.Validate
}

type RecommendRequest struct {
	// Answers is keyed by question index, as in GET /api/questions.
	Answers map[int]string `json:"answers" validate:"required,min=1,dive,required"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func NewApp(genres []models.Genre, recommender Recommender, history HistoryLister) *App {
	return &App{
		Genres:      genres,
		Recommender: recommender,
		History:     history,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

func (app *App) QuestionsHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, quiz.Questions(app.Genres))
}

func (app *App) RecommendHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		app.respondError(w, r, http.StatusBadRequest, "invalid JSON body", err)
		return
	}

	if err := app.validate.Struct(req); err != nil {
		app.respondError(w, r, http.StatusBadRequest, "answers are required", err)
		return
	}

	questions := quiz.Questions(app.Genres)
	for idx, choice := range req.Answers {
		if idx < 0 || idx >= len(questions) {
			app.respondError(w, r, http.StatusBadRequest, "unknown question "+strconv.Itoa(idx), nil)
			return
		}
		if !questions[idx].HasOption(choice) {
			app.respondError(w, r, http.StatusBadRequest, "unknown option for question "+strconv.Itoa(idx), nil)
			return
		}
	}

	filters, err := quiz.BuildFilters(req.Answers, app.Genres)
	if err != nil {
		app.respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result, err := app.Recommender.Recommend(r.Context(), filters)
	if err != nil {
		app.respondError(w, r, http.StatusBadGateway, "movie database request failed", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (app *App) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			app.respondError(w, r, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxHistoryLimit), nil)
			return
		}
		limit = n
	}

	records, err := app.History.List(r.Context(), limit)
	if err != nil {
		app.respondError(w, r, http.StatusInternalServerError, "failed to load history", err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

func (app *App) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	reqID := middleware.GetReqID(r.Context())

	if err != nil {
		event := logging.Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Error()
		}
		event.Err(err).Str("request_id", reqID).Int("status", status).Msg(message)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		message = message + ": " + validationErrs[0].Namespace() + " failed " + validationErrs[0].Tag()
	}

	respondJSON(w, status, errorResponse{Error: message, RequestID: reqID})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}
