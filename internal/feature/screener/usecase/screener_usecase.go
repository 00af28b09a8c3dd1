// Package usecase は分析クエリ(スクリーナー)のアプリケーションロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"fintrack_backend/internal/feature/screener/domain/entity"
)

// ScreenerRepository はスクリーナーが必要とするデータアクセスを抽象化します。
// 実装は adapters パッケージにあります。
type ScreenerRepository interface {
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
	Search(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error)
}

// Criterion は検索エンドポイントの1条件です。Column と Operator は
// 許可リストで検証され、Value は必ずプレースホルダ経由でバインドされます。
type Criterion struct {
	Column    string
	Operator  string
	Value     string
	Connector string // 先頭の条件では空。それ以外は AND / OR。
}

// 検索で参照できる financials のカラム。リスト外は即時拒否します。
var searchableColumns = map[string]bool{
	"cik":                         true,
	"year":                        true,
	"month":                       true,
	"accounts_payable_current":    true,
	"assets":                      true,
	"liabilities":                 true,
	"cash_and_equivalents":        true,
	"accounts_receivable_current": true,
	"inventory_net":               true,
	"long_term_debt":              true,
}

var allowedOperators = map[string]bool{
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// ScreenerUsecase は分析クエリのユースケースです。ほとんどの操作は
// リポジトリへの委譲で、結果が空のときに ErrNoData へ正規化します。
type ScreenerUsecase struct {
	repo ScreenerRepository
}

func NewScreenerUsecase(repo ScreenerRepository) *ScreenerUsecase {
	return &ScreenerUsecase{repo: repo}
}

// ListStocks は株価データを持つ全企業を返します。空でもエラーにしません。
func (u *ScreenerUsecase) ListStocks(ctx context.Context) ([]entity.StockListing, error) {
	return u.repo.ListStocks(ctx)
}

func (u *ScreenerUsecase) TopStocks(ctx context.Context) ([]entity.TopStock, error) {
	return requireRows(u.repo.TopStocks(ctx))
}

func (u *ScreenerUsecase) HighCashReserves(ctx context.Context) ([]entity.HighCashCompany, error) {
	return requireRows(u.repo.HighCashReserves(ctx))
}

func (u *ScreenerUsecase) DebtToAssetRatios(ctx context.Context) ([]entity.DebtToAssetCompany, error) {
	return requireRows(u.repo.DebtToAssetRatios(ctx))
}

func (u *ScreenerUsecase) HighCashMinimalDebt(ctx context.Context) ([]entity.CashRichCompany, error) {
	return requireRows(u.repo.HighCashMinimalDebt(ctx))
}

func (u *ScreenerUsecase) MonthlyAvgClose(ctx context.Context) ([]entity.MonthlyAvgClose, error) {
	return requireRows(u.repo.MonthlyAvgClose(ctx))
}

func (u *ScreenerUsecase) HighestFluctuations(ctx context.Context) ([]entity.MonthlyVolatility, error) {
	return requireRows(u.repo.HighestFluctuations(ctx))
}

func (u *ScreenerUsecase) LiquidityDebtRatios(ctx context.Context) ([]entity.LiquidityDebtRatio, error) {
	return requireRows(u.repo.LiquidityDebtRatios(ctx))
}

func (u *ScreenerUsecase) LeverageDifferences(ctx context.Context) ([]entity.LeveragePair, error) {
	return requireRows(u.repo.LeverageDifferences(ctx))
}

func (u *ScreenerUsecase) SimilarDebtRatios(ctx context.Context) ([]entity.SimilarRatioPair, error) {
	return requireRows(u.repo.SimilarDebtRatios(ctx))
}

func (u *ScreenerUsecase) SimilarInventoryRatios(ctx context.Context) ([]entity.InventoryRatioPair, error) {
	return requireRows(u.repo.SimilarInventoryRatios(ctx))
}

func (u *ScreenerUsecase) StrongLiquidity(ctx context.Context) ([]entity.LiquidCompany, error) {
	return requireRows(u.repo.StrongLiquidity(ctx))
}

func (u *ScreenerUsecase) FinancialImprovement(ctx context.Context) ([]entity.ImprovingCompany, error) {
	return requireRows(u.repo.FinancialImprovement(ctx))
}

// Search は条件リストを検証し、プレースホルダ付きのWHERE句を組み立てて
// 検索を実行します。カラム名・演算子・接続詞はSQL文字列に直接入りますが、
// すべて許可リスト検証済みです。値は常にバインド引数です。
func (u *ScreenerUsecase) Search(ctx context.Context, criteria []Criterion) ([]entity.FinancialRow, error) {
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: at least one criterion is required", ErrInvalidCriterion)
	}

	var sb strings.Builder
	args := make([]any, 0, len(criteria))
	for i, c := range criteria {
		col := strings.ToLower(strings.TrimSpace(c.Column))
		if !searchableColumns[col] {
			return nil, fmt.Errorf("%w: unknown column %q", ErrInvalidCriterion, c.Column)
		}
		op := strings.TrimSpace(c.Operator)
		if !allowedOperators[op] {
			return nil, fmt.Errorf("%w: unknown operator %q", ErrInvalidCriterion, c.Operator)
		}
		if i > 0 {
			conn := strings.ToUpper(strings.TrimSpace(c.Connector))
			if conn != "AND" && conn != "OR" {
				return nil, fmt.Errorf("%w: unknown connector %q", ErrInvalidCriterion, c.Connector)
			}
			sb.WriteString(" ")
			sb.WriteString(conn)
			sb.WriteString(" ")
		}
		sb.WriteString(col)
		sb.WriteString(" ")
		sb.WriteString(op)
		sb.WriteString(" ?")
		args = append(args, c.Value)
	}

	return u.repo.Search(ctx, sb.String(), args)
}

// requireRows は空の結果を ErrNoData に正規化する小さなヘルパです。
func requireRows[T any](rows []T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}
