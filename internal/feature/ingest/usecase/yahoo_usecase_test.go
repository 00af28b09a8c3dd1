package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack_backend/internal/feature/ingest/domain/entity"
)

type mockHistoryRepository struct {
	GetWeeklyHistoryFunc func(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error)
}

func (m *mockHistoryRepository) GetWeeklyHistory(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error) {
	return m.GetWeeklyHistoryFunc(ctx, ticker, start, end)
}

type mockTickerSource struct {
	tickers []string
}

func (m *mockTickerSource) ListTickers(ctx context.Context) ([]string, error) {
	return m.tickers, nil
}

func TestYahooUsecase_Run(t *testing.T) {
	start := time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("bars are flattened into dated rows", func(t *testing.T) {
		history := &mockHistoryRepository{
			GetWeeklyHistoryFunc: func(ctx context.Context, ticker string, s, e time.Time) ([]entity.Bar, error) {
				assert.Equal(t, start, s)
				assert.Equal(t, end, e)
				return []entity.Bar{{
					Ticker: ticker,
					Time:   time.Date(2021, 3, 8, 0, 0, 0, 0, time.UTC),
					Open:   10.5, High: 12, Low: 9.75, Close: 11, Volume: 12345,
				}}, nil
			},
		}
		writer := &captureWriter{}
		uc := NewYahooUsecase(history, &mockTickerSource{tickers: []string{"AAPL"}}, writer, start, end)

		require.NoError(t, uc.Run(context.Background()))

		assert.Equal(t,
			[]string{"Open", "High", "Low", "Close", "Volume", "Ticker", "Year", "Month", "Day"},
			writer.header)
		require.Len(t, writer.rows, 1)
		assert.Equal(t,
			[]string{"10.5", "12", "9.75", "11", "12345", "AAPL", "2021", "3", "8"},
			writer.rows[0])
	})

	t.Run("a failing ticker is skipped while the rest proceeds", func(t *testing.T) {
		history := &mockHistoryRepository{
			GetWeeklyHistoryFunc: func(ctx context.Context, ticker string, s, e time.Time) ([]entity.Bar, error) {
				if ticker == "DEAD" {
					return nil, errors.New("delisted")
				}
				return []entity.Bar{{Ticker: ticker, Time: start, Close: 1, Volume: 1}}, nil
			},
		}
		writer := &captureWriter{}
		uc := NewYahooUsecase(history, &mockTickerSource{tickers: []string{"AAPL", "DEAD", "MSFT"}}, writer, start, end)

		require.NoError(t, uc.Run(context.Background()))

		require.Len(t, writer.rows, 2)
		assert.Equal(t, "AAPL", writer.rows[0][5])
		assert.Equal(t, "MSFT", writer.rows[1][5])
	})
}
