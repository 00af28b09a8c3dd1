package entity

import "github.com/shopspring/decimal"

// Financial is one company's balance sheet line items for a reporting
// month. The primary key is (cik, year, month); every line item is
// nullable — a null means "not reported", never zero, and analytical
// queries must exclude nulls rather than coerce them.
type Financial struct {
	CIK   int `gorm:"column:cik;primaryKey;autoIncrement:false"`
	Year  int `gorm:"primaryKey;autoIncrement:false"`
	Month int `gorm:"primaryKey;autoIncrement:false"`

	AccountsPayableCurrent    decimal.NullDecimal `gorm:"type:numeric"`
	Assets                    decimal.NullDecimal `gorm:"type:numeric"`
	Liabilities               decimal.NullDecimal `gorm:"type:numeric"`
	CashAndEquivalents        decimal.NullDecimal `gorm:"type:numeric"`
	AccountsReceivableCurrent decimal.NullDecimal `gorm:"type:numeric"`
	InventoryNet              decimal.NullDecimal `gorm:"type:numeric"`
	LongTermDebt              decimal.NullDecimal `gorm:"type:numeric"`
}

// TableName keeps the dataset's table name.
func (Financial) TableName() string {
	return "financials"
}
