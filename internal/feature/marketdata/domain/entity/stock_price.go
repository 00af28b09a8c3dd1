package entity

import "github.com/shopspring/decimal"

// StockPrice is one weekly OHLCV observation for a ticker. Rows carry no
// uniqueness constraint beyond the generated ID.
type StockPrice struct {
	ID     uint            `gorm:"primaryKey"`
	Open   decimal.Decimal `gorm:"type:numeric"`
	High   decimal.Decimal `gorm:"type:numeric"`
	Low    decimal.Decimal `gorm:"type:numeric"`
	Close  decimal.Decimal `gorm:"type:numeric"`
	Volume int64
	Ticker string `gorm:"size:16"`
	Year   int
	Month  int
	Day    int
}

// TableName keeps the dataset's table name.
func (StockPrice) TableName() string {
	return "stock_prices"
}
