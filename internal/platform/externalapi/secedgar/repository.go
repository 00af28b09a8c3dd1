package secedgar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"fintrack_backend/internal/feature/ingest/usecase"
	"fintrack_backend/internal/platform/externalapi/secedgar/dto"
)

// EdgarFrames はSEC EDGARのXBRLフレームAPIからコンセプト別の四半期
// 瞬間値(Iフレーム)を取得するFramesRepository実装です。
type EdgarFrames struct {
	cfg    Config
	client *http.Client
}

// EdgarFramesがFramesRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.FramesRepository = (*EdgarFrames)(nil)

// NewEdgarFrames は指定された設定とHTTPクライアントでEdgarFramesを生成します。
func NewEdgarFrames(cfg Config, client *http.Client) *EdgarFrames {
	return &EdgarFrames{cfg: cfg, client: client}
}

// GetFrames は指定のus-gaapコンセプトについて、CY{year}Q{quarter}I の
// 全企業の報告値を cik → 値 のマップで返します。
func (e *EdgarFrames) GetFrames(ctx context.Context, concept string, year, quarter int) (map[int]float64, error) {
	u := fmt.Sprintf("%s/api/xbrl/frames/us-gaap/%s/USD/CY%dQ%dI.json",
		e.cfg.BaseURL, concept, year, quarter)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// SECはUser-Agentに連絡先の明記を要求する。
	req.Header.Set("User-Agent", e.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("sec edgar http %d", res.StatusCode)
	}

	var body dto.FramesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	values := make(map[int]float64, len(body.Data))
	for _, entry := range body.Data {
		values[entry.CIK] = entry.Value
	}
	return values, nil
}
