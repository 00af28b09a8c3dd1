package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fintrack_backend/internal/feature/ingest/domain/entity"
)

// HistoryRepository はYahoo Financeのチャートエンドポイントを抽象化します。
type HistoryRepository interface {
	GetWeeklyHistory(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error)
}

// TickerSource は取得対象のティッカー一覧を提供します。
type TickerSource interface {
	ListTickers(ctx context.Context) ([]string, error)
}

// YahooUsecase は全ティッカーの週足履歴をCSVへ書き出します。
type YahooUsecase struct {
	history HistoryRepository
	tickers TickerSource
	writer  RowWriter
	// 履歴の取得期間。コマンド側で過去10年を指定します。
	start time.Time
	end   time.Time
}

func NewYahooUsecase(history HistoryRepository, tickers TickerSource, writer RowWriter, start, end time.Time) *YahooUsecase {
	return &YahooUsecase{history: history, tickers: tickers, writer: writer, start: start, end: end}
}

// Run は各ティッカーの週足を順に取得してCSVへ書き出します。
// ティッカー単位の失敗はログに残してスキップします(上場廃止などで
// 一部の取得は普通に失敗します)。
func (u *YahooUsecase) Run(ctx context.Context) error {
	tickers, err := u.tickers.ListTickers(ctx)
	if err != nil {
		return fmt.Errorf("list tickers: %w", err)
	}

	header := []string{"Open", "High", "Low", "Close", "Volume", "Ticker", "Year", "Month", "Day"}
	var rows [][]string
	fetched := 0
	for _, ticker := range tickers {
		bars, err := u.history.GetWeeklyHistory(ctx, ticker, u.start, u.end)
		if err != nil {
			slog.Warn("failed to fetch history, skipping", "ticker", ticker, "error", err)
			continue
		}
		fetched++
		for _, b := range bars {
			rows = append(rows, []string{
				strconv.FormatFloat(b.Open, 'f', -1, 64),
				strconv.FormatFloat(b.High, 'f', -1, 64),
				strconv.FormatFloat(b.Low, 'f', -1, 64),
				strconv.FormatFloat(b.Close, 'f', -1, 64),
				strconv.FormatInt(b.Volume, 10),
				b.Ticker,
				strconv.Itoa(b.Time.Year()),
				strconv.Itoa(int(b.Time.Month())),
				strconv.Itoa(b.Time.Day()),
			})
		}
	}

	if err := u.writer.WriteAll(header, rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	slog.Info("yahoo ingest finished", "tickers", fetched, "rows", len(rows))
	return nil
}
