package handlers

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/aristath/qoptimizer/internal/modules/qaoa"
)

// HandleTuneStream upgrades to a WebSocket and pushes one TuneProgress
// message per grid point evaluated by the tuner, followed by a final
// message carrying the winning QAOAParameters.
func (h *Handler) HandleTuneStream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	portfolio, layers, gridSize, samples, err := parseTuneStreamQuery(q)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to accept websocket connection")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closing")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	best, err := qaoa.OptimizeParameters(portfolio, layers, gridSize, samples, rng, func(p qaoa.TuneProgress) {
		if writeErr := wsjson.Write(ctx, conn, p); writeErr != nil {
			h.log.Debug().Err(writeErr).Msg("tune progress stream write failed")
		}
	})
	if err != nil {
		h.log.Error().Err(err).Msg("tune stream failed")
		conn.Close(websocket.StatusInternalError, err.Error())
		return
	}

	if err := wsjson.Write(ctx, conn, map[string]any{"final": best}); err != nil {
		h.log.Debug().Err(err).Msg("failed to write final tune result")
	}
	conn.Close(websocket.StatusNormalClosure, "done")
}

func parseTuneStreamQuery(q map[string][]string) (*qaoa.PortfolioData, int, int, int, error) {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var body TuneRequest
	if raw := get("portfolio"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &body.Portfolio); err != nil {
			return nil, 0, 0, 0, err
		}
	}
	layers, err := parsePositiveInt(get("layers"))
	if err != nil {
		return nil, 0, 0, 0, err
	}
	gridSize, err := parsePositiveInt(get("grid_size"))
	if err != nil {
		return nil, 0, 0, 0, err
	}
	samples, err := parsePositiveInt(get("samples"))
	if err != nil {
		return nil, 0, 0, 0, err
	}

	portfolio, err := body.Portfolio.toDomain()
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if err := validateExternal(portfolio, layers, samples); err != nil {
		return nil, 0, 0, 0, err
	}
	return portfolio, layers, gridSize, samples, nil
}
