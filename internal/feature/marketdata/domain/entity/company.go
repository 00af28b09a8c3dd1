// Package entity defines the read-only reference data models: companies,
// financial statement line items and stock prices. These tables are
// populated by the offline ingestion pipeline and never written by the
// server.
package entity

// Company maps a ticker symbol to its registry identity.
type Company struct {
	// Ticker is the exchange symbol and primary key.
	Ticker string `gorm:"primaryKey;size:16"`

	// CompanyName is the display name.
	CompanyName string `gorm:"column:companyname"`

	// CIK is the company's numeric identifier in the SEC registry,
	// stored as text in the dataset.
	CIK string `gorm:"column:cik"`
}

// TableName keeps the dataset's table name.
func (Company) TableName() string {
	return "companies"
}
