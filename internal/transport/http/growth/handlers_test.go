package growthhttp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"growthcalc/internal/calculator"
	"growthcalc/internal/gateway/who"
	"growthcalc/internal/growth"
	"growthcalc/internal/refdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	catalog, err := refdata.NewCatalog([]*refdata.Series{
		{
			Standard: growth.StandardCDC, Metric: growth.MetricWeightForAge,
			Sex: growth.SexMale, Axis: refdata.AxisAgeMonths,
			Rows: []refdata.Row{
				{Key: 24, L: -0.207, M: 12.6, S: 0.108},
				{Key: 240, L: -0.5, M: 61.0, S: 0.2},
			},
		},
		{
			Standard: growth.StandardWHO, Metric: growth.MetricWeightForAge,
			Sex: growth.SexMale, Axis: refdata.AxisAgeMonths,
			Rows: []refdata.Row{
				{Key: 0, L: 0.3487, M: 3.3464, S: 0.14602},
				{Key: 60, L: -0.0865, M: 18.3366, S: 0.12548},
			},
		},
	})
	require.NoError(t, err)
	catalog.SetCitations(map[string]refdata.Citation{
		"cdc/wtage.csv": {Title: "CDC Growth Charts: United States", Year: 2000},
	})

	cdc := calculator.NewCDC(catalog)
	med := calculator.NewMedical(cdc, who.NewBackend(catalog), 2)
	srv, err := NewServer(ServerConfig{
		Addr:            ":0",
		Medical:         med,
		CDC:             cdc,
		Catalog:         catalog,
		DefaultStandard: growth.StandardAuto,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleScore(t *testing.T) {
	h := testHandler(t)

	t.Run("Median Weight", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore",
			`{"metric":"weight_for_age","sex":"male","age_months":24,"value":12.6,"standard":"CDC"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := gjson.Parse(rec.Body.String())
		assert.Equal(t, 0.0, body.Get("z_score").Float())
		assert.Equal(t, 50.0, body.Get("percentile").Float())
		assert.Equal(t, "CDC", body.Get("standard").String())
		assert.Equal(t, "normal", body.Get("band").String())
	})

	t.Run("Auto Picks WHO For Infant", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore",
			`{"metric":"wfa","sex":"m","age_months":6,"value":7.9}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "WHO", gjson.Get(rec.Body.String(), "standard").String())
	})

	t.Run("Numeric Strings Are Coerced", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/percentile",
			`{"metric":"weight_for_age","sex":"1","age_months":"24","value":"12.6","standard":"CDC"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, 50.0, gjson.Get(rec.Body.String(), "percentile").Float())
	})

	t.Run("Out Of Range Age", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore",
			`{"metric":"weight_for_age","sex":"male","age_months":500,"value":60,"standard":"CDC"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "unsupported_age", gjson.Get(rec.Body.String(), "kind").String())
	})

	t.Run("Invalid Body", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore", `{"metric":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Empty Body", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown Metric", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/zscore",
			`{"metric":"wingspan","sex":"male","age_months":24,"value":12.6}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleInverse(t *testing.T) {
	h := testHandler(t)

	t.Run("Median", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/inverse",
			`{"metric":"weight_for_age","sex":"male","age_months":24,"percentile":50}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := gjson.Parse(rec.Body.String())
		assert.Equal(t, 12.6, body.Get("value").Float())
		assert.Equal(t, "CDC", body.Get("standard").String())
	})

	t.Run("Endpoint Percentile Rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/inverse",
			`{"metric":"weight_for_age","sex":"male","age_months":24,"percentile":100}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "invalid_percentile", gjson.Get(rec.Body.String(), "kind").String())
	})
}

func TestHandleBatch(t *testing.T) {
	h := testHandler(t)

	t.Run("Order Preserved With Partial Failure", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/batch", `{
			"standard": "CDC",
			"items": [
				{"metric":"weight_for_age","sex":"male","age_months":24,"value":12.6},
				{"metric":"weight_for_age","sex":"male","age_months":24,"value":-1},
				{"metric":"wingspan","sex":"male","age_months":24,"value":10},
				{"metric":"weight_for_age","sex":"male","age_months":36,"value":14.0}
			]
		}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		results := gjson.Get(rec.Body.String(), "results").Array()
		require.Len(t, results, 4)

		assert.True(t, results[0].Get("ok").Bool())
		assert.Equal(t, 12.6, results[0].Get("result.value").Float())

		assert.False(t, results[1].Get("ok").Bool())
		assert.Equal(t, "invalid_measurement", results[1].Get("kind").String())

		assert.False(t, results[2].Get("ok").Bool())

		assert.True(t, results[3].Get("ok").Bool())
		assert.Equal(t, 14.0, results[3].Get("result.value").Float())
	})

	t.Run("Per Item Standard Rejected", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/batch", `{
			"items": [
				{"metric":"weight_for_age","sex":"male","age_months":24,"value":12.6,"standard":"WHO"}
			]
		}`)
		require.Equal(t, http.StatusOK, rec.Code)
		results := gjson.Get(rec.Body.String(), "results").Array()
		require.Len(t, results, 1)
		assert.False(t, results[0].Get("ok").Bool())
	})

	t.Run("Missing Items Fails Schema", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/batch", `{"standard":"CDC"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Non Object Item Fails Schema", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodPost, "/api/growth/batch", `{"items":[42]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleStandard(t *testing.T) {
	h := testHandler(t)

	t.Run("Infant Goes To WHO", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/growth/standard?metric=weight_for_age&age_months=12", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "WHO", gjson.Get(rec.Body.String(), "standard").String())
	})

	t.Run("School Age Goes To CDC", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/growth/standard?metric=weight_for_age&age_months=96", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "CDC", gjson.Get(rec.Body.String(), "standard").String())
	})

	t.Run("Missing Age", func(t *testing.T) {
		rec := doJSON(t, h, http.MethodGet, "/api/growth/standard?metric=weight_for_age", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCitations(t *testing.T) {
	h := testHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/api/growth/citations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2000.0, gjson.Get(rec.Body.String(), `citations.cdc/wtage\.csv.year`).Float())
}

func TestHealthz(t *testing.T) {
	h := testHandler(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
