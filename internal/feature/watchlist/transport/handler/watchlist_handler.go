// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack_backend/internal/api"
	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
	"fintrack_backend/internal/feature/watchlist/domain/entity"
	"fintrack_backend/internal/feature/watchlist/transport/http/dto"
	"fintrack_backend/internal/feature/watchlist/usecase"
	jwtmw "fintrack_backend/internal/platform/jwt"
)

// WatchlistUsecase はウォッチリスト操作のユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	Track(ctx context.Context, userID uint, ciks []int) (usecase.TrackResult, error)
	Untrack(ctx context.Context, userID uint, cik int) error
	LatestFinancials(ctx context.Context, userID uint) ([]mdentity.Financial, error)
	TrackedCompanies(ctx context.Context, userID uint) ([]entity.CompanyOverview, error)
}

// WatchlistHandler はウォッチリスト操作のHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// Track は企業の一括追跡APIエンドポイントを処理します。
// 既に追跡済みのCIKはskippedとして報告され、残りは正常に処理されます。
func (h *WatchlistHandler) Track(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	var req dto.TrackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	result, err := h.uc.Track(c.Request.Context(), claims.UserID, req.CIKs)
	if err != nil {
		slog.Error("track companies failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "tracking failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Companies processed",
		"added":   result.Added,
		"skipped": result.Skipped,
	})
}

// Untrack は追跡解除APIエンドポイントを処理します。冪等です。
func (h *WatchlistHandler) Untrack(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	var req dto.UntrackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if err := h.uc.Untrack(c.Request.Context(), claims.UserID, req.CIK); err != nil {
		slog.Error("untrack company failed", "error", err, "user_id", claims.UserID, "cik", req.CIK)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "untracking failed"})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Company removed from tracking successfully"})
}

// LatestFinancials は追跡企業ごとの最新財務スナップショットを返します。
// 追跡企業がない場合は空のリストを返します。
func (h *WatchlistHandler) LatestFinancials(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	financials, err := h.uc.LatestFinancials(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("latest financials failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not load tracked company data"})
		return
	}

	out := make([]dto.CompanyData, 0, len(financials))
	for _, f := range financials {
		out = append(out, dto.NewCompanyData(f))
	}
	c.JSON(http.StatusOK, out)
}

// TrackedCompanies は追跡企業を企業メタデータと最新スナップショット付きで返します。
func (h *WatchlistHandler) TrackedCompanies(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	companies, err := h.uc.TrackedCompanies(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Error("tracked companies failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not load tracked companies"})
		return
	}
	c.JSON(http.StatusOK, companies)
}
