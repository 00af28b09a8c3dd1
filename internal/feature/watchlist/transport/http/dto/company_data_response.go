package dto

import (
	"github.com/shopspring/decimal"

	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
)

// CompanyData は/users/companies/dataの1行分のレスポンスです。
// 未報告の項目はnullのまま返します（ゼロには変換しません）。
type CompanyData struct {
	CIK                int      `json:"cik"`
	Year               int      `json:"year"`
	Month              int      `json:"month"`
	AccountsPayable    *float64 `json:"accounts_payable"`
	Assets             *float64 `json:"assets"`
	Liabilities        *float64 `json:"liabilities"`
	Cash               *float64 `json:"cash"`
	AccountsReceivable *float64 `json:"accounts_receivable"`
	Inventory          *float64 `json:"inventory"`
	LongTermDebt       *float64 `json:"long_term_debt"`
}

// NewCompanyData は財務エンティティをレスポンス形式に変換します。
func NewCompanyData(f mdentity.Financial) CompanyData {
	return CompanyData{
		CIK:                f.CIK,
		Year:               f.Year,
		Month:              f.Month,
		AccountsPayable:    toFloat(f.AccountsPayableCurrent),
		Assets:             toFloat(f.Assets),
		Liabilities:        toFloat(f.Liabilities),
		Cash:               toFloat(f.CashAndEquivalents),
		AccountsReceivable: toFloat(f.AccountsReceivableCurrent),
		Inventory:          toFloat(f.InventoryNet),
		LongTermDebt:       toFloat(f.LongTermDebt),
	}
}

// toFloat はnull許容のdecimal値をJSON向けのポインタ型に変換します。
func toFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}
