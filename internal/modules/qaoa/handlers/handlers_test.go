package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() *Handler {
	return NewHandler(nil, zerolog.Nop())
}

func sampleOptimizeBody() OptimizeRequest {
	return OptimizeRequest{
		Portfolio: portfolioDTO{
			Returns:       []float64{0.10, 0.08},
			Risk:          [][]float64{{0.04, 0.01}, {0.01, 0.02}},
			Names:         []string{"A", "B"},
			Budget:        1000,
			RiskTolerance: 1.0,
		},
		Params: paramsDTO{Layers: 1, Betas: []float64{0.5}, Gammas: []float64{1.0}, Samples: 5},
	}
}

func TestHandleOptimize_Success(t *testing.T) {
	h := testHandler()
	body, err := json.Marshal(sampleOptimizeBody())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/qaoa/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleOptimize(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response, "data")
}

func TestHandleOptimize_ShapeErrorIsBadRequest(t *testing.T) {
	h := testHandler()
	req := sampleOptimizeBody()
	req.Portfolio.Names = []string{"A"} // mismatched length
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/qaoa/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleOptimize(rec, httpReq)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOptimize_ValidationErrorIsUnprocessable(t *testing.T) {
	h := testHandler()
	req := sampleOptimizeBody()
	req.Portfolio.Budget = 0
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/qaoa/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleOptimize(rec, httpReq)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleTune_Success(t *testing.T) {
	h := testHandler()
	body, err := json.Marshal(TuneRequest{
		Portfolio: sampleOptimizeBody().Portfolio,
		Layers:    1,
		GridSize:  2,
		Samples:   2,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/qaoa/tune", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleTune(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSample_DefaultsToFourAssets(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/qaoa/sample", nil)
	rec := httptest.NewRecorder()

	h.HandleSample(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, data["Returns"], 4)
}

func TestHandleHistory_EmptyWithoutStore(t *testing.T) {
	h := testHandler()
	req := httptest.NewRequest(http.MethodGet, "/qaoa/history", nil)
	rec := httptest.NewRecorder()

	h.HandleHistory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Contains(t, response, "data")
	assert.Empty(t, response["data"])
}

func TestRegisterRoutes_DoesNotPanic(t *testing.T) {
	h := testHandler()
	router := chi.NewRouter()
	assert.NotPanics(t, func() {
		h.RegisterRoutes(router)
	})
}
