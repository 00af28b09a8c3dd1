// Package entity defines the result row shapes for the screener feature.
// Each analytical query has its own row type; fields that can legally be
// NULL in the dataset are pointers so a missing value is rendered as null,
// never as zero.
package entity

// StockListing is a company that has at least one stock price row.
type StockListing struct {
	CIK         string `json:"cik"`
	Ticker      string `json:"ticker"`
	CompanyName string `json:"companyname"`
}

// TopStock is one row of the top-by-average-close ranking.
type TopStock struct {
	Ticker       string  `json:"ticker"`
	CIK          string  `json:"cik"`
	CompanyName  string  `json:"companyname"`
	HighestPrice float64 `json:"highest_price"`
	LowestPrice  float64 `json:"lowest_price"`
	AvgClose     float64 `json:"avg_close"`
}

// HighCashCompany is a company whose cash exceeds half its liabilities,
// annotated with a trailing rolling average of cash.
type HighCashCompany struct {
	CIK                int      `json:"cik"`
	CompanyName        string   `json:"companyname"`
	Assets             *float64 `json:"assets"`
	Liabilities        float64  `json:"liabilities"`
	CashAndEquivalents float64  `json:"cash_and_equivalents"`
	RollingAvgCash     float64  `json:"rolling_avg_cash"`
}

// DebtToAssetCompany joins a company's leverage ratio to its average
// daily high-low spread.
type DebtToAssetCompany struct {
	CIK              string  `json:"cik"`
	CompanyName      string  `json:"companyname"`
	Ticker           string  `json:"ticker"`
	DebtToAssetRatio float64 `json:"debt_to_asset_ratio"`
	AvgVolatility    float64 `json:"avg_volatility"`
}

// CashRichCompany is a high-cash low-debt company with its highest ever
// closing price.
type CashRichCompany struct {
	CIK                int     `json:"cik"`
	CompanyName        string  `json:"companyname"`
	Ticker             string  `json:"ticker"`
	CashAndEquivalents float64 `json:"cash_and_equivalents"`
	LongTermDebt       float64 `json:"long_term_debt"`
	MaxClosePrice      float64 `json:"max_close_price"`
}

// MonthlyAvgClose is one globally ranked (ticker, month) average close.
type MonthlyAvgClose struct {
	Ticker          string  `json:"ticker"`
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	MonthlyAvgClose float64 `json:"monthly_avg_close"`
}

// MonthlyVolatility is one of the months with the highest average
// high-low spread among high-volume tickers.
type MonthlyVolatility struct {
	Ticker               string  `json:"ticker"`
	CompanyName          string  `json:"companyname"`
	CIK                  string  `json:"cik"`
	Year                 int     `json:"year"`
	Month                int     `json:"month"`
	AvgMonthlyVolatility float64 `json:"avg_monthly_volatility"`
}

// LiquidityDebtRatio is a company's cash-to-debt ratio for one period.
// The ratio is -1 when long-term debt is zero (sentinel, documented in
// the repository).
type LiquidityDebtRatio struct {
	CompanyName        string  `json:"companyname"`
	CIK                int     `json:"cik"`
	CashAndEquivalents float64 `json:"cash_and_equivalents"`
	LongTermDebt       float64 `json:"long_term_debt"`
	Year               int     `json:"year"`
	Quarter            int     `json:"quarter"`
	CashToDebtRatio    float64 `json:"cash_to_debt_ratio"`
}

// LeveragePair is a pair of companies with strongly diverging
// debt-to-asset ratios.
type LeveragePair struct {
	Company1CIK     int     `gorm:"column:company1_cik" json:"company1_cik"`
	Company1Name    string  `gorm:"column:company1_name" json:"company1_name"`
	Company2CIK     int     `gorm:"column:company2_cik" json:"company2_cik"`
	Company2Name    string  `gorm:"column:company2_name" json:"company2_name"`
	Company1Ratio   float64 `gorm:"column:company1_ratio" json:"company1_ratio"`
	Company2Ratio   float64 `gorm:"column:company2_ratio" json:"company2_ratio"`
	RatioDifference float64 `gorm:"column:ratio_difference" json:"ratio_difference"`
}

// SimilarRatioPair is a pair of companies with nearly identical
// debt-to-asset ratios.
type SimilarRatioPair struct {
	Company1CIK     int     `gorm:"column:company1_cik" json:"company1_cik"`
	Company1Name    string  `gorm:"column:company1_name" json:"company1_name"`
	Company2CIK     int     `gorm:"column:company2_cik" json:"company2_cik"`
	Company2Name    string  `gorm:"column:company2_name" json:"company2_name"`
	RatioDifference float64 `gorm:"column:ratio_difference" json:"ratio_difference"`
}

// InventoryRatioPair is a pair of companies with similar
// inventory-to-asset ratios, annotated with pair averages.
type InventoryRatioPair struct {
	Company1CIK             int     `gorm:"column:company1_cik" json:"company1_cik"`
	Company1Name            string  `gorm:"column:company1_name" json:"company1_name"`
	Company2CIK             int     `gorm:"column:company2_cik" json:"company2_cik"`
	Company2Name            string  `gorm:"column:company2_name" json:"company2_name"`
	RatioDifference         float64 `gorm:"column:ratio_difference" json:"ratio_difference"`
	AvgCashToLiabilityRatio float64 `gorm:"column:avg_cash_to_liability_ratio" json:"avg_cash_to_liability_ratio"`
	AvgAssets               float64 `gorm:"column:avg_assets" json:"avg_assets"`
	AvgLiabilities          float64 `gorm:"column:avg_liabilities" json:"avg_liabilities"`
}

// LiquidCompany is a company whose cash reserves exceed twice its
// liabilities.
type LiquidCompany struct {
	CIK                  int     `json:"cik"`
	CompanyName          string  `json:"companyname"`
	CashAndEquivalents   float64 `json:"cash_and_equivalents"`
	Liabilities          float64 `json:"liabilities"`
	CashToLiabilityRatio float64 `json:"cash_to_liability_ratio"`
}

// ImprovingCompany is a year in which a company grew cash by more than
// 5% while reducing long-term debt by more than 5%.
type ImprovingCompany struct {
	CIK                     int     `json:"cik"`
	CompanyName             string  `json:"companyname"`
	Year                    int     `json:"year"`
	CashAndEquivalents      float64 `json:"cash_and_equivalents"`
	LongTermDebt            float64 `json:"long_term_debt"`
	CashGrowthPercentage    float64 `json:"cash_growth_percentage"`
	DebtReductionPercentage float64 `json:"debt_reduction_percentage"`
	ThreeYearAvgCash        float64 `json:"three_year_avg_cash"`
}

// FinancialRow is one raw financials row returned by the search endpoint.
type FinancialRow struct {
	CIK                       int      `json:"cik"`
	Year                      int      `json:"year"`
	Month                     int      `json:"month"`
	AccountsPayableCurrent    *float64 `json:"accounts_payable_current"`
	Assets                    *float64 `json:"assets"`
	Liabilities               *float64 `json:"liabilities"`
	CashAndEquivalents        *float64 `json:"cash_and_equivalents"`
	AccountsReceivableCurrent *float64 `json:"accounts_receivable_current"`
	InventoryNet              *float64 `json:"inventory_net"`
	LongTermDebt              *float64 `json:"long_term_debt"`
}
