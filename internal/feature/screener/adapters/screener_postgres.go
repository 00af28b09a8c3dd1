// Package adapters はスクリーナーのGORM実装を提供します。
//
// すべてのクエリは生SQLですが、PostgresとSQLite(テスト用)の両方で動く
// 可搬な構文に限定しています: DISTINCT ON や DATE_TRUNC は使わず、
// 整数除算を避けるために分子へ `* 1.0` を掛けています。
// companies.cik はテキスト、financials.cik は整数なので結合時にCASTします。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fintrack_backend/internal/feature/screener/domain/entity"
	"fintrack_backend/internal/feature/screener/usecase"
)

type screenerPostgres struct {
	db *gorm.DB
}

// NewScreenerRepository はGORMベースのScreenerRepositoryを返します。
func NewScreenerRepository(db *gorm.DB) usecase.ScreenerRepository {
	return &screenerPostgres{db: db}
}

var _ usecase.ScreenerRepository = (*screenerPostgres)(nil)

// ListStocks は株価データを1件でも持つ企業の一覧を返します。
func (r *screenerPostgres) ListStocks(ctx context.Context) ([]entity.StockListing, error) {
	var rows []entity.StockListing
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT c.cik, c.ticker, c.companyname AS company_name
		FROM companies c
		JOIN stock_prices sp ON sp.ticker = c.ticker
		ORDER BY c.ticker`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	return rows, nil
}

// TopStocks は平均終値の上位10ティッカーを返します。
func (r *screenerPostgres) TopStocks(ctx context.Context) ([]entity.TopStock, error) {
	var rows []entity.TopStock
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.ticker, c.cik, c.companyname AS company_name,
		       MAX(sp.high) AS highest_price,
		       MIN(sp.low)  AS lowest_price,
		       AVG(sp.close) AS avg_close
		FROM stock_prices sp
		JOIN companies c ON c.ticker = sp.ticker
		GROUP BY c.ticker, c.cik, c.companyname
		ORDER BY avg_close DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top stocks: %w", err)
	}
	return rows, nil
}

// HighCashReserves は現金が負債の半分を超える行を、cikごとの直近4期
// 移動平均つきで返します。NULLの明細は比較前に除外します(除外ガード)。
func (r *screenerPostgres) HighCashReserves(ctx context.Context) ([]entity.HighCashCompany, error) {
	var rows []entity.HighCashCompany
	err := r.db.WithContext(ctx).Raw(`
		WITH cash_history AS (
		    SELECT cik, year, month, assets, liabilities, cash_and_equivalents,
		           AVG(cash_and_equivalents) OVER (
		               PARTITION BY cik ORDER BY year, month
		               ROWS BETWEEN 3 PRECEDING AND CURRENT ROW
		           ) AS rolling_avg_cash
		    FROM financials
		    WHERE cash_and_equivalents IS NOT NULL AND liabilities IS NOT NULL
		)
		SELECT ch.cik, c.companyname AS company_name, ch.assets, ch.liabilities,
		       ch.cash_and_equivalents, ch.rolling_avg_cash
		FROM cash_history ch
		JOIN companies c ON CAST(c.cik AS INTEGER) = ch.cik
		WHERE ch.cash_and_equivalents > 0.5 * ch.liabilities
		ORDER BY ch.cash_and_equivalents DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("high cash reserves: %w", err)
	}
	return rows, nil
}

// DebtToAssetRatios は各企業の直近の負債資産比率をティッカーの平均
// 日中値幅に結合して返します。assets = 0 の行は除外します(除外ガード)。
func (r *screenerPostgres) DebtToAssetRatios(ctx context.Context) ([]entity.DebtToAssetCompany, error) {
	var rows []entity.DebtToAssetCompany
	err := r.db.WithContext(ctx).Raw(`
		WITH ratios AS (
		    SELECT f.cik, f.long_term_debt * 1.0 / f.assets AS debt_to_asset_ratio
		    FROM financials f
		    WHERE f.long_term_debt IS NOT NULL AND f.assets IS NOT NULL AND f.assets > 0
		      AND NOT EXISTS (
		          SELECT 1 FROM financials f2
		          WHERE f2.cik = f.cik
		            AND f2.long_term_debt IS NOT NULL AND f2.assets IS NOT NULL AND f2.assets > 0
		            AND (f2.year > f.year OR (f2.year = f.year AND f2.month > f.month))
		      )
		),
		volatility AS (
		    SELECT ticker, AVG(high - low) AS avg_volatility
		    FROM stock_prices
		    GROUP BY ticker
		)
		SELECT c.cik, c.companyname AS company_name, c.ticker,
		       r.debt_to_asset_ratio, v.avg_volatility
		FROM ratios r
		JOIN companies c ON CAST(c.cik AS INTEGER) = r.cik
		JOIN volatility v ON v.ticker = c.ticker
		ORDER BY v.avg_volatility DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("debt to asset ratios: %w", err)
	}
	return rows, nil
}

// HighCashMinimalDebt は現金5,000万ドル超かつ長期負債1,000万ドル未満の
// 企業を、過去最高終値つきで返します。企業ごとに条件を満たす直近の行を
// 採用します。
func (r *screenerPostgres) HighCashMinimalDebt(ctx context.Context) ([]entity.CashRichCompany, error) {
	var rows []entity.CashRichCompany
	err := r.db.WithContext(ctx).Raw(`
		WITH qualifying AS (
		    SELECT f.cik, f.cash_and_equivalents, f.long_term_debt
		    FROM financials f
		    WHERE f.cash_and_equivalents IS NOT NULL AND f.long_term_debt IS NOT NULL
		      AND f.cash_and_equivalents > 50000000 AND f.long_term_debt < 10000000
		      AND NOT EXISTS (
		          SELECT 1 FROM financials f2
		          WHERE f2.cik = f.cik
		            AND f2.cash_and_equivalents IS NOT NULL AND f2.long_term_debt IS NOT NULL
		            AND f2.cash_and_equivalents > 50000000 AND f2.long_term_debt < 10000000
		            AND (f2.year > f.year OR (f2.year = f.year AND f2.month > f.month))
		      )
		)
		SELECT q.cik, c.companyname AS company_name, c.ticker,
		       q.cash_and_equivalents, q.long_term_debt, mp.max_close_price
		FROM qualifying q
		JOIN companies c ON CAST(c.cik AS INTEGER) = q.cik
		JOIN (
		    SELECT ticker, MAX(close) AS max_close_price
		    FROM stock_prices
		    GROUP BY ticker
		) mp ON mp.ticker = c.ticker
		ORDER BY mp.max_close_price DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("high cash minimal debt: %w", err)
	}
	return rows, nil
}

// MonthlyAvgClose は(ティッカー, 年, 月)単位の平均終値を全体でランク付けし、
// rank <= 10 の行を返します。RANK()なので同率は同じ順位を共有し、境界が
// タイにかかった場合は10行を超えることがあります。
func (r *screenerPostgres) MonthlyAvgClose(ctx context.Context) ([]entity.MonthlyAvgClose, error) {
	var rows []entity.MonthlyAvgClose
	err := r.db.WithContext(ctx).Raw(`
		WITH monthly AS (
		    SELECT ticker, year, month, AVG(close) AS monthly_avg_close
		    FROM stock_prices
		    GROUP BY ticker, year, month
		),
		ranked AS (
		    SELECT ticker, year, month, monthly_avg_close,
		           RANK() OVER (ORDER BY monthly_avg_close DESC) AS price_rank
		    FROM monthly
		)
		SELECT ticker, year, month, monthly_avg_close
		FROM ranked
		WHERE price_rank <= 10
		ORDER BY monthly_avg_close DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("monthly avg close: %w", err)
	}
	return rows, nil
}

// HighestFluctuations は出来高1,000万超の行に限定した月次の平均値幅
// (high - low)の上位10件を返します。
func (r *screenerPostgres) HighestFluctuations(ctx context.Context) ([]entity.MonthlyVolatility, error) {
	var rows []entity.MonthlyVolatility
	err := r.db.WithContext(ctx).Raw(`
		WITH monthly AS (
		    SELECT ticker, year, month, AVG(high - low) AS avg_monthly_volatility
		    FROM stock_prices
		    WHERE volume > 10000000
		    GROUP BY ticker, year, month
		)
		SELECT c.ticker, c.companyname AS company_name, c.cik,
		       m.year, m.month, m.avg_monthly_volatility
		FROM monthly m
		JOIN companies c ON c.ticker = m.ticker
		ORDER BY m.avg_monthly_volatility DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("highest fluctuations: %w", err)
	}
	return rows, nil
}

// LiquidityDebtRatios は現金/長期負債の上位10件を返します。
// 負債が0の行は除外せず、比率を-1に置き換えます(センチネルガード)。
func (r *screenerPostgres) LiquidityDebtRatios(ctx context.Context) ([]entity.LiquidityDebtRatio, error) {
	var rows []entity.LiquidityDebtRatio
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.companyname AS company_name, f.cik,
		       f.cash_and_equivalents, f.long_term_debt,
		       f.year, (f.month + 2) / 3 AS quarter,
		       COALESCE(f.cash_and_equivalents * 1.0 / NULLIF(f.long_term_debt, 0), -1) AS cash_to_debt_ratio
		FROM financials f
		JOIN companies c ON CAST(c.cik AS INTEGER) = f.cik
		WHERE f.cash_and_equivalents IS NOT NULL AND f.long_term_debt IS NOT NULL
		ORDER BY cash_to_debt_ratio DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("liquidity debt ratios: %w", err)
	}
	return rows, nil
}

// LeverageDifferences は負債資産比率の上位5000行から比率差が0.1を超える
// ペアを作り、差の大きい順に10件返します。
func (r *screenerPostgres) LeverageDifferences(ctx context.Context) ([]entity.LeveragePair, error) {
	var rows []entity.LeveragePair
	err := r.db.WithContext(ctx).Raw(`
		WITH ratios AS (
		    SELECT f.cik, c.companyname AS company_name,
		           f.long_term_debt * 1.0 / f.assets AS ratio
		    FROM financials f
		    JOIN companies c ON CAST(c.cik AS INTEGER) = f.cik
		    WHERE f.long_term_debt IS NOT NULL AND f.assets IS NOT NULL AND f.assets > 0
		    ORDER BY ratio DESC
		    LIMIT 5000
		)
		SELECT r1.cik AS company1_cik, r1.company_name AS company1_name,
		       r2.cik AS company2_cik, r2.company_name AS company2_name,
		       r1.ratio AS company1_ratio, r2.ratio AS company2_ratio,
		       ABS(r1.ratio - r2.ratio) AS ratio_difference
		FROM ratios r1
		JOIN ratios r2 ON r1.cik < r2.cik
		WHERE ABS(r1.ratio - r2.ratio) > 0.1
		ORDER BY ratio_difference DESC
		LIMIT 10`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("leverage differences: %w", err)
	}
	return rows, nil
}

// SimilarDebtRatios は cik % 3 = 0 の企業をNTILE(10)バケットに分け、
// 同一バケット内で比率差が0.05未満のペアを探します。アンカー企業ごとに
// 最良10ペアまで、全体で300件までです。
func (r *screenerPostgres) SimilarDebtRatios(ctx context.Context) ([]entity.SimilarRatioPair, error) {
	var rows []entity.SimilarRatioPair
	err := r.db.WithContext(ctx).Raw(`
		WITH ratios AS (
		    SELECT f.cik, c.companyname AS company_name,
		           f.long_term_debt * 1.0 / f.assets AS ratio,
		           NTILE(10) OVER (ORDER BY f.long_term_debt * 1.0 / f.assets) AS bucket
		    FROM financials f
		    JOIN companies c ON CAST(c.cik AS INTEGER) = f.cik
		    WHERE f.cik % 3 = 0
		      AND f.long_term_debt IS NOT NULL AND f.assets IS NOT NULL AND f.assets > 0
		),
		pairs AS (
		    SELECT r1.cik AS company1_cik, r1.company_name AS company1_name,
		           r2.cik AS company2_cik, r2.company_name AS company2_name,
		           ABS(r1.ratio - r2.ratio) AS ratio_difference,
		           ROW_NUMBER() OVER (
		               PARTITION BY r1.cik ORDER BY ABS(r1.ratio - r2.ratio)
		           ) AS pair_rank
		    FROM ratios r1
		    JOIN ratios r2 ON r1.bucket = r2.bucket AND r1.cik < r2.cik
		    WHERE ABS(r1.ratio - r2.ratio) < 0.05
		)
		SELECT company1_cik, company1_name, company2_cik, company2_name, ratio_difference
		FROM pairs
		WHERE pair_rank <= 10
		ORDER BY ratio_difference ASC
		LIMIT 300`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("similar debt ratios: %w", err)
	}
	return rows, nil
}

// SimilarInventoryRatios は在庫資産比率で同様のペア探索を行います。
// 現金負債比率が0.2超の企業に限定し、NTILE(5)バケット内で差0.1未満、
// アンカーごとに20ペアまで、全体で1000件までです。
func (r *screenerPostgres) SimilarInventoryRatios(ctx context.Context) ([]entity.InventoryRatioPair, error) {
	var rows []entity.InventoryRatioPair
	err := r.db.WithContext(ctx).Raw(`
		WITH base AS (
		    SELECT f.cik, c.companyname AS company_name,
		           f.inventory_net * 1.0 / f.assets AS inv_ratio,
		           f.cash_and_equivalents * 1.0 / f.liabilities AS cash_ratio,
		           f.assets, f.liabilities,
		           NTILE(5) OVER (ORDER BY f.inventory_net * 1.0 / f.assets) AS bucket
		    FROM financials f
		    JOIN companies c ON CAST(c.cik AS INTEGER) = f.cik
		    WHERE f.inventory_net IS NOT NULL AND f.assets IS NOT NULL AND f.assets > 0
		      AND f.cash_and_equivalents IS NOT NULL AND f.liabilities IS NOT NULL
		      AND f.liabilities > 0
		      AND f.cash_and_equivalents * 1.0 / f.liabilities > 0.2
		),
		pairs AS (
		    SELECT b1.cik AS company1_cik, b1.company_name AS company1_name,
		           b2.cik AS company2_cik, b2.company_name AS company2_name,
		           ABS(b1.inv_ratio - b2.inv_ratio) AS ratio_difference,
		           (b1.cash_ratio + b2.cash_ratio) * 1.0 / 2 AS avg_cash_to_liability_ratio,
		           (b1.assets + b2.assets) * 1.0 / 2 AS avg_assets,
		           (b1.liabilities + b2.liabilities) * 1.0 / 2 AS avg_liabilities,
		           ROW_NUMBER() OVER (
		               PARTITION BY b1.cik ORDER BY ABS(b1.inv_ratio - b2.inv_ratio)
		           ) AS pair_rank
		    FROM base b1
		    JOIN base b2 ON b1.bucket = b2.bucket AND b1.cik < b2.cik
		    WHERE ABS(b1.inv_ratio - b2.inv_ratio) < 0.1
		)
		SELECT company1_cik, company1_name, company2_cik, company2_name,
		       ratio_difference, avg_cash_to_liability_ratio, avg_assets, avg_liabilities
		FROM pairs
		WHERE pair_rank <= 20
		ORDER BY ratio_difference ASC
		LIMIT 1000`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("similar inventory ratios: %w", err)
	}
	return rows, nil
}

// StrongLiquidity は現金が負債の2倍を超える行を比率の高い順に返します。
// 負債が0の行は除外します(除外ガード)。
func (r *screenerPostgres) StrongLiquidity(ctx context.Context) ([]entity.LiquidCompany, error) {
	var rows []entity.LiquidCompany
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.cik, c.companyname AS company_name,
		       f.cash_and_equivalents, f.liabilities,
		       f.cash_and_equivalents * 1.0 / f.liabilities AS cash_to_liability_ratio
		FROM financials f
		JOIN companies c ON CAST(c.cik AS INTEGER) = f.cik
		WHERE f.cash_and_equivalents IS NOT NULL AND f.liabilities IS NOT NULL
		  AND f.liabilities > 0
		  AND f.cash_and_equivalents > 2 * f.liabilities
		ORDER BY cash_to_liability_ratio DESC`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("strong liquidity: %w", err)
	}
	return rows, nil
}

// FinancialImprovement は年次集計に対してLAGで前年比を計算し、現金が5%超
// 増加しつつ長期負債が5%超減少した年を、直近3年の平均現金つきで返します。
func (r *screenerPostgres) FinancialImprovement(ctx context.Context) ([]entity.ImprovingCompany, error) {
	var rows []entity.ImprovingCompany
	err := r.db.WithContext(ctx).Raw(`
		WITH yearly AS (
		    SELECT cik, year,
		           MAX(cash_and_equivalents) AS cash_and_equivalents,
		           MAX(long_term_debt) AS long_term_debt
		    FROM financials
		    WHERE cash_and_equivalents IS NOT NULL AND long_term_debt IS NOT NULL
		    GROUP BY cik, year
		),
		changes AS (
		    SELECT cik, year, cash_and_equivalents, long_term_debt,
		           LAG(cash_and_equivalents) OVER (PARTITION BY cik ORDER BY year) AS prev_cash,
		           LAG(long_term_debt) OVER (PARTITION BY cik ORDER BY year) AS prev_debt,
		           AVG(cash_and_equivalents) OVER (
		               PARTITION BY cik ORDER BY year
		               ROWS BETWEEN 2 PRECEDING AND CURRENT ROW
		           ) AS three_year_avg_cash
		    FROM yearly
		)
		SELECT ch.cik, c.companyname AS company_name, ch.year,
		       ch.cash_and_equivalents, ch.long_term_debt,
		       (ch.cash_and_equivalents - ch.prev_cash) * 100.0 / ch.prev_cash AS cash_growth_percentage,
		       (ch.prev_debt - ch.long_term_debt) * 100.0 / ch.prev_debt AS debt_reduction_percentage,
		       ch.three_year_avg_cash
		FROM changes ch
		JOIN companies c ON CAST(c.cik AS INTEGER) = ch.cik
		WHERE ch.prev_cash IS NOT NULL AND ch.prev_cash > 0
		  AND ch.prev_debt IS NOT NULL AND ch.prev_debt > 0
		  AND (ch.cash_and_equivalents - ch.prev_cash) * 1.0 / ch.prev_cash > 0.05
		  AND (ch.prev_debt - ch.long_term_debt) * 1.0 / ch.prev_debt > 0.05
		ORDER BY ch.year, ch.cik`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("financial improvement: %w", err)
	}
	return rows, nil
}

// Search は検証済みのWHERE句で financials を検索します。where に入る
// カラム名・演算子・接続詞はユースケース側の許可リストを通過したものだけで、
// 値はすべてバインド引数として渡されます。
func (r *screenerPostgres) Search(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error) {
	var rows []entity.FinancialRow
	query := `
		SELECT cik, year, month, accounts_payable_current, assets, liabilities,
		       cash_and_equivalents, accounts_receivable_current, inventory_net, long_term_debt
		FROM financials
		WHERE ` + where + `
		LIMIT 50`
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("search financials: %w", err)
	}
	return rows, nil
}
