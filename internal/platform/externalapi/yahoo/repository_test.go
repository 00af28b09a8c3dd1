package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooHistory_GetWeeklyHistory(t *testing.T) {
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("decodes bars and skips null entries", func(t *testing.T) {
		var gotPath, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			// second entry has a null close (holiday week)
			_, _ = w.Write([]byte(`{
				"chart": {
					"result": [{
						"timestamp": [1609718400, 1610323200],
						"indicators": {
							"quote": [{
								"open":   [132.4, 129.2],
								"high":   [133.6, 130.2],
								"low":    [126.4, null],
								"close":  [132.0, null],
								"volume": [143301900, 100620900]
							}]
						}
					}],
					"error": null
				}
			}`))
		}))
		defer srv.Close()

		repo := NewYahooHistory(Config{BaseURL: srv.URL}, srv.Client())

		bars, err := repo.GetWeeklyHistory(context.Background(), "AAPL", start, end)

		require.NoError(t, err)
		assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
		assert.Contains(t, gotQuery, "interval=1wk")
		require.Len(t, bars, 1, "the bar with null fields is dropped")
		assert.Equal(t, "AAPL", bars[0].Ticker)
		assert.InDelta(t, 132.0, bars[0].Close, 1e-9)
		assert.EqualValues(t, 143301900, bars[0].Volume)
		assert.Equal(t, 2021, bars[0].Time.Year())
	})

	t.Run("chart-level errors are surfaced", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"chart": {
					"result": null,
					"error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}
				}
			}`))
		}))
		defer srv.Close()

		repo := NewYahooHistory(Config{BaseURL: srv.URL}, srv.Client())

		_, err := repo.GetWeeklyHistory(context.Background(), "DEAD", start, end)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delisted")
	})

	t.Run("http errors surface with the status code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		repo := NewYahooHistory(Config{BaseURL: srv.URL}, srv.Client())

		_, err := repo.GetWeeklyHistory(context.Background(), "NOPE", start, end)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}
