package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/CTAG07/randname/pkg/markov"
)

// WordsAPI holds the dependencies for the word generation handlers.
type WordsAPI struct {
	table  *markov.Table
	config *Config
	logger *slog.Logger
}

// NewWordsAPI creates a new instance of the WordsAPI.
func NewWordsAPI(table *markov.Table, config *Config, logger *slog.Logger) *WordsAPI {
	return &WordsAPI{
		table:  table,
		config: config,
		logger: logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (a *WordsAPI) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/words", a.handleWords)
		r.Get("/stats", a.handleStats)
	})
}

// WordsResponse is the body returned by GET /api/words.
type WordsResponse struct {
	Words []string `json:"words"`
}

// StatsResponse is the body returned by GET /api/stats.
type StatsResponse struct {
	Words          int `json:"words"`
	Contexts       int `json:"contexts"`
	Transitions    int `json:"transitions"`
	TotalFrequency int `json:"total_frequency"`
	StartingChars  int `json:"starting_chars"`
	AlphabetSize   int `json:"alphabet_size"`
	LongestContext int `json:"longest_context"`
}

// handleWords generates count words with lengths in [min, max]. Every request
// gets its own randomly seeded generator over the shared table.
func (a *WordsAPI) handleWords(w http.ResponseWriter, r *http.Request) {
	minLength, err := queryInt(r, "min", -1)
	if err != nil {
		a.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	maxLength, err := queryInt(r, "max", -1)
	if err != nil {
		a.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	count, err := queryInt(r, "count", 1)
	if err != nil {
		a.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if minLength < 0 || maxLength < 0 {
		a.respondWithError(w, http.StatusBadRequest, "Query parameters 'min' and 'max' are required")
		return
	}
	if maxLength > a.config.Server.MaxLength {
		a.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Query parameter 'max' must be at most %d", a.config.Server.MaxLength))
		return
	}
	if count < 1 || count > a.config.Server.MaxCount {
		a.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Query parameter 'count' must be between 1 and %d", a.config.Server.MaxCount))
		return
	}

	gen, err := markov.NewGenerator(a.table, markov.WithMaxAttempts(a.config.MaxAttempts))
	if err != nil {
		a.logger.Error("Failed to create generator", "error", err)
		a.respondWithError(w, http.StatusInternalServerError, "Failed to create generator")
		return
	}
	gen.SetLogger(a.logger)

	words := make([]string, 0, count)
	for range count {
		word, err := gen.Generate(r.Context(), minLength, maxLength)
		if err != nil {
			a.respondWithGenerateError(w, err)
			return
		}
		words = append(words, word)
	}

	a.respondWithJSON(w, http.StatusOK, WordsResponse{Words: words})
}

func (a *WordsAPI) respondWithGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, markov.ErrInvalidLength):
		a.respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, markov.ErrAttemptsExhausted):
		a.respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		// Cancellation by the timeout middleware or the client going away.
		a.logger.Warn("Word generation interrupted", "error", err)
		a.respondWithError(w, http.StatusServiceUnavailable, "Word generation interrupted")
	}
}

func (a *WordsAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := a.table.Stats()
	a.respondWithJSON(w, http.StatusOK, StatsResponse{
		Words:          stats.Words,
		Contexts:       stats.Contexts,
		Transitions:    stats.Transitions,
		TotalFrequency: stats.TotalFrequency,
		StartingChars:  stats.StartingChars,
		AlphabetSize:   stats.AlphabetSize,
		LongestContext: stats.LongestContext,
	})
}

// queryInt reads an integer query parameter, returning def when it is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter '%s' must be an integer", name)
	}
	return n, nil
}

func (a *WordsAPI) respondWithError(w http.ResponseWriter, code int, message string) {
	a.respondWithJSON(w, code, map[string]string{"error": message})
}

func (a *WordsAPI) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			a.logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}
