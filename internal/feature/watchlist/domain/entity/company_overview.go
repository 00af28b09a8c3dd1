package entity

import "github.com/shopspring/decimal"

// CompanyOverview is one tracked company joined to its metadata and its
// most recent financial snapshot. Line items stay nullable: a company may
// not have reported them for its latest period.
type CompanyOverview struct {
	CIK                string              `json:"cik"`
	Ticker             string              `json:"ticker"`
	CompanyName        string              `json:"companyname"`
	Year               int                 `json:"year"`
	Month              int                 `json:"month"`
	CashAndEquivalents decimal.NullDecimal `json:"cash_and_equivalents"`
	LongTermDebt       decimal.NullDecimal `json:"long_term_debt"`
}
