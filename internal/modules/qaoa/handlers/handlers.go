// Package handlers provides HTTP handlers for the QAOA portfolio
// optimizer.
package handlers

import (
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/qoptimizer/internal/modules/history"
	"github.com/aristath/qoptimizer/internal/modules/qaoa"
	"github.com/aristath/qoptimizer/internal/sampledata"
)

// observer receives every portfolio submitted to /qaoa/optimize so a
// background job (see internal/modules/scheduler) can re-tune it later.
type observer interface {
	Observe(*qaoa.PortfolioData)
}

// Handler serves the /qaoa route group.
type Handler struct {
	history  *history.Store
	observer observer
	log      zerolog.Logger
}

// NewHandler builds a Handler. store may be nil, in which case runs are
// not persisted (used in tests).
func NewHandler(store *history.Store, log zerolog.Logger) *Handler {
	return &Handler{history: store, log: log.With().Str("handler", "qaoa").Logger()}
}

// WithObserver attaches a scheduler-like observer that is notified of
// every portfolio submitted for optimization.
func (h *Handler) WithObserver(o observer) *Handler {
	h.observer = o
	return h
}

type portfolioDTO struct {
	Returns       []float64   `json:"returns"`
	Risk          [][]float64 `json:"risk"`
	Names         []string    `json:"names"`
	Budget        float64     `json:"budget"`
	RiskTolerance float64     `json:"risk_tolerance"`
}

func (d portfolioDTO) toDomain() (*qaoa.PortfolioData, error) {
	return qaoa.NewPortfolioData(d.Returns, d.Risk, d.Names, d.Budget, d.RiskTolerance)
}

type paramsDTO struct {
	Layers  int       `json:"layers"`
	Betas   []float64 `json:"betas"`
	Gammas  []float64 `json:"gammas"`
	Samples int       `json:"samples"`
}

func (d paramsDTO) toDomain() (*qaoa.QAOAParameters, error) {
	return qaoa.NewQAOAParameters(d.Layers, d.Betas, d.Gammas, d.Samples)
}

// OptimizeRequest is the body of POST /qaoa/optimize.
type OptimizeRequest struct {
	Portfolio portfolioDTO `json:"portfolio"`
	Params    paramsDTO    `json:"params"`
}

// TuneRequest is the body of POST /qaoa/tune.
type TuneRequest struct {
	Portfolio portfolioDTO `json:"portfolio"`
	Layers    int          `json:"layers"`
	GridSize  int          `json:"grid_size"`
	Samples   int          `json:"samples"`
}

// HandleOptimize validates the request, runs the sampling driver, and
// returns the resulting selection.
func (h *Handler) HandleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	portfolio, err := req.Portfolio.toDomain()
	if err != nil {
		h.writeShapeOrValidationError(w, err)
		return
	}
	params, err := req.Params.toDomain()
	if err != nil {
		h.writeShapeOrValidationError(w, err)
		return
	}
	if err := validateExternal(portfolio, params.Layers, params.Samples); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	if h.observer != nil {
		h.observer.Observe(portfolio)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	submittedAt := time.Now()
	result, err := qaoa.Optimize(portfolio, params, rng)
	finishedAt := time.Now()
	if err != nil {
		h.writeShapeOrValidationError(w, err)
		return
	}

	runID := ""
	if h.history != nil {
		id, recErr := h.history.RecordOptimize("request", portfolio, params, result, submittedAt, finishedAt, nil)
		if recErr != nil {
			h.log.Error().Err(recErr).Msg("failed to record run history")
		} else {
			runID = id
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data": result,
		"metadata": map[string]any{
			"timestamp":   time.Now().Format(time.RFC3339),
			"duration_ms": finishedAt.Sub(submittedAt).Milliseconds(),
			"run_id":      runID,
		},
	})
}

// HandleTune validates the request, runs the grid-search tuner, and
// returns the best parameter set found.
func (h *Handler) HandleTune(w http.ResponseWriter, r *http.Request) {
	var req TuneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	portfolio, err := req.Portfolio.toDomain()
	if err != nil {
		h.writeShapeOrValidationError(w, err)
		return
	}
	if err := validateExternal(portfolio, req.Layers, req.Samples); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if req.GridSize <= 0 {
		h.writeError(w, http.StatusUnprocessableEntity, errors.New("grid_size must be positive"))
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	submittedAt := time.Now()
	best, err := qaoa.OptimizeParameters(portfolio, req.Layers, req.GridSize, req.Samples, rng, nil)
	finishedAt := time.Now()
	if err != nil {
		h.writeShapeOrValidationError(w, err)
		return
	}

	runID := ""
	if h.history != nil {
		id, recErr := h.history.RecordTune("request", portfolio, req.Layers, req.Samples, best, submittedAt, finishedAt, nil)
		if recErr != nil {
			h.log.Error().Err(recErr).Msg("failed to record run history")
		} else {
			runID = id
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"data": best,
		"metadata": map[string]any{
			"timestamp":   time.Now().Format(time.RFC3339),
			"duration_ms": finishedAt.Sub(submittedAt).Milliseconds(),
			"run_id":      runID,
		},
	})
}

// HandleSample returns a synthetic demo portfolio.
func (h *Handler) HandleSample(w http.ResponseWriter, r *http.Request) {
	n := 4
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := parsePositiveInt(raw); err == nil {
			n = parsed
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	portfolio, err := sampledata.Generate(n, rng)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"data": portfolio})
}

// HandleHistory lists recent run records.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
		return
	}
	records, err := h.history.Recent(50)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"data": records})
}

func (h *Handler) writeShapeOrValidationError(w http.ResponseWriter, err error) {
	var shapeErr *qaoa.ShapeError
	if errors.As(err, &shapeErr) {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeError(w, http.StatusUnprocessableEntity, err)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.log.Error().Err(err).Int("status", status).Msg("qaoa request failed")
	h.writeJSON(w, status, map[string]any{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}
