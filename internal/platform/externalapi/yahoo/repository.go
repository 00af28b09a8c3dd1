package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fintrack_backend/internal/feature/ingest/domain/entity"
	"fintrack_backend/internal/feature/ingest/usecase"
	"fintrack_backend/internal/platform/externalapi/yahoo/dto"
)

// YahooHistory はYahoo FinanceチャートAPIから週足履歴を取得する
// HistoryRepository実装です。
type YahooHistory struct {
	cfg    Config
	client *http.Client
}

// YahooHistoryがHistoryRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.HistoryRepository = (*YahooHistory)(nil)

// NewYahooHistory は指定された設定とHTTPクライアントでYahooHistoryを生成します。
func NewYahooHistory(cfg Config, client *http.Client) *YahooHistory {
	return &YahooHistory{cfg: cfg, client: client}
}

// GetWeeklyHistory は指定ティッカーの週足バーを取得します。
// OHLCVのいずれかがnullのバーは欠損として読み飛ばします。
func (y *YahooHistory) GetWeeklyHistory(ctx context.Context, ticker string, start, end time.Time) ([]entity.Bar, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(end.Unix(), 10))
	q.Set("interval", "1wk")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo finance http %d", res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 || len(body.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo finance: empty result for %s", ticker)
	}

	result := body.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]entity.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil ||
			quote.Close[i] == nil || quote.Volume[i] == nil {
			continue
		}
		bars = append(bars, entity.Bar{
			Ticker: ticker,
			Time:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		})
	}
	return bars, nil
}
