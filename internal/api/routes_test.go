package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/imdscreen/internal/calculation"
	"github.com/RMahshie/imdscreen/pkg/models"
)

func newTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	RegisterRoutes(api, calculation.NewCalculationService(calculation.DefaultLimits, nil), nil)
	return api
}

func TestCalculateRoute(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{"f1": 100, "f2": 200})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var calc models.Calculation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &calc))
	assert.Equal(t, 140, calc.Count)
	assert.Len(t, calc.Rows, 140)
	assert.Equal(t, 8, calc.OverlapCount)
}

func TestCalculateRouteDefaults(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var calc models.Calculation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &calc))
	assert.Equal(t, 100.0, calc.F1)
	assert.Equal(t, 200.0, calc.F2)
}

func TestCalculateRouteKeepsExplicitZero(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{"f1": 0, "f2": 50})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var calc models.Calculation
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &calc))
	assert.Equal(t, 0.0, calc.F1)
	assert.Equal(t, 50.0, calc.F2)
	assert.Equal(t, 140, calc.Count)
}

func TestCalculateRouteRejectsZeroPair(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{"f1": 0, "f2": 0})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "F2 must be greater than F1")
}

func TestCalculateRouteRejectsInvertedFrequencies(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{"f1": 200, "f2": 100})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "F2 must be greater than F1")
	assert.NotContains(t, resp.Body.String(), "rows")
}

func TestCalculateRouteRejectsNegativeFrequency(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations", map[string]any{"f1": -5, "f2": 100})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestCalculateCSVRoute(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/calculations/csv", map[string]any{"f1": 100, "f2": 200})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "imd_frequencies_with_gnss_overlap.csv")

	records, err := csv.NewReader(strings.NewReader(resp.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 141)
	assert.Equal(t, "IMD Frequency (MHz)", records[0][4])
}

func TestExportRouteWithoutStorage(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Post("/api/imd/exports", map[string]any{"f1": 100, "f2": 200})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestListBandsRoute(t *testing.T) {
	api := newTestAPI(t)

	resp := api.Get("/api/bands")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Bands []models.BandRow `json:"bands"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Bands, 8)
	assert.Equal(t, "WLAN 2.4G band", body.Bands[3].Name)
	assert.Equal(t, "2400 MHz - 2500 MHz", body.Bands[3].Range)
}
