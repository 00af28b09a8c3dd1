// Package handler はスクリーナーAPIのHTTPハンドラを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack_backend/internal/api"
	"fintrack_backend/internal/feature/screener/domain/entity"
	"fintrack_backend/internal/feature/screener/transport/http/dto"
	"fintrack_backend/internal/feature/screener/usecase"
)

// ScreenerUsecase はハンドラが依存するユースカースの振る舞いです。
type ScreenerUsecase interface {
	ListStocks(ctx context.Context) ([]entity.StockListing, error)
	TopStocks(ctx context.Context) ([]entity.TopStock, error)
	HighCashReserves(ctx context.Context) ([]entity.HighCashCompany, error)
	DebtToAssetRatios(ctx context.Context) ([]entity.DebtToAssetCompany, error)
	HighCashMinimalDebt(ctx context.Context) ([]entity.CashRichCompany, error)
	MonthlyAvgClose(ctx context.Context) ([]entity.MonthlyAvgClose, error)
	HighestFluctuations(ctx context.Context) ([]entity.MonthlyVolatility, error)
	LiquidityDebtRatios(ctx context.Context) ([]entity.LiquidityDebtRatio, error)
	LeverageDifferences(ctx context.Context) ([]entity.LeveragePair, error)
	SimilarDebtRatios(ctx context.Context) ([]entity.SimilarRatioPair, error)
	SimilarInventoryRatios(ctx context.Context) ([]entity.InventoryRatioPair, error)
	StrongLiquidity(ctx context.Context) ([]entity.LiquidCompany, error)
	FinancialImprovement(ctx context.Context) ([]entity.ImprovingCompany, error)
	Search(ctx context.Context, criteria []usecase.Criterion) ([]entity.FinancialRow, error)
}

// ScreenerHandler は分析クエリのエンドポイント群を束ねます。
type ScreenerHandler struct {
	uc ScreenerUsecase
}

func NewScreenerHandler(uc ScreenerUsecase) *ScreenerHandler {
	return &ScreenerHandler{uc: uc}
}

// respondList はカタログクエリ共通の応答規約です: 空結果は404、
// ストア障害は詳細をログに残して汎用メッセージの500、成功は200。
func respondList[T any](c *gin.Context, name string, rows []T, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "no data found"})
			return
		}
		slog.Error("screener query failed", "query", name, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListStocks は株価データを持つ全企業を返します。空でも200で空配列です。
func (h *ScreenerHandler) ListStocks(c *gin.Context) {
	rows, err := h.uc.ListStocks(c.Request.Context())
	if err != nil {
		slog.Error("screener query failed", "query", "list_stocks", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		return
	}
	if rows == nil {
		rows = []entity.StockListing{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *ScreenerHandler) TopStocks(c *gin.Context) {
	rows, err := h.uc.TopStocks(c.Request.Context())
	respondList(c, "top_stocks", rows, err)
}

func (h *ScreenerHandler) HighCashReserves(c *gin.Context) {
	rows, err := h.uc.HighCashReserves(c.Request.Context())
	respondList(c, "high_cash_reserves", rows, err)
}

func (h *ScreenerHandler) DebtToAssetRatios(c *gin.Context) {
	rows, err := h.uc.DebtToAssetRatios(c.Request.Context())
	respondList(c, "debt_to_asset_ratio", rows, err)
}

func (h *ScreenerHandler) HighCashMinimalDebt(c *gin.Context) {
	rows, err := h.uc.HighCashMinimalDebt(c.Request.Context())
	respondList(c, "high_cash_minimal_debt", rows, err)
}

func (h *ScreenerHandler) MonthlyAvgClose(c *gin.Context) {
	rows, err := h.uc.MonthlyAvgClose(c.Request.Context())
	respondList(c, "monthly_avg_close", rows, err)
}

func (h *ScreenerHandler) HighestFluctuations(c *gin.Context) {
	rows, err := h.uc.HighestFluctuations(c.Request.Context())
	respondList(c, "highest_fluctuations", rows, err)
}

func (h *ScreenerHandler) LiquidityDebtRatios(c *gin.Context) {
	rows, err := h.uc.LiquidityDebtRatios(c.Request.Context())
	respondList(c, "highest_liquidity_debt_ratio", rows, err)
}

func (h *ScreenerHandler) LeverageDifferences(c *gin.Context) {
	rows, err := h.uc.LeverageDifferences(c.Request.Context())
	respondList(c, "greatest_leverage_differences", rows, err)
}

func (h *ScreenerHandler) SimilarDebtRatios(c *gin.Context) {
	rows, err := h.uc.SimilarDebtRatios(c.Request.Context())
	respondList(c, "similar_debt_ratios", rows, err)
}

func (h *ScreenerHandler) SimilarInventoryRatios(c *gin.Context) {
	rows, err := h.uc.SimilarInventoryRatios(c.Request.Context())
	respondList(c, "similar_inventory_ratios", rows, err)
}

func (h *ScreenerHandler) StrongLiquidity(c *gin.Context) {
	rows, err := h.uc.StrongLiquidity(c.Request.Context())
	respondList(c, "strong_liquidity", rows, err)
}

func (h *ScreenerHandler) FinancialImprovement(c *gin.Context) {
	rows, err := h.uc.FinancialImprovement(c.Request.Context())
	respondList(c, "financial_improvement", rows, err)
}

// Search は自由条件検索です。条件はユースケース側で許可リスト検証され、
// 不正な条件は400になります。結果が空でも200で空配列を返します。
func (h *ScreenerHandler) Search(c *gin.Context) {
	var req dto.SearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	criteria := make([]usecase.Criterion, 0, len(req.Criteria))
	for _, cr := range req.Criteria {
		criteria = append(criteria, usecase.Criterion{
			Column:    cr.Feature,
			Operator:  cr.Operator,
			Value:     cr.Value,
			Connector: cr.LogicalOperator,
		})
	}

	rows, err := h.uc.Search(c.Request.Context(), criteria)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCriterion) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("screener query failed", "query", "search", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		return
	}
	if rows == nil {
		rows = []entity.FinancialRow{}
	}
	c.JSON(http.StatusOK, rows)
}
