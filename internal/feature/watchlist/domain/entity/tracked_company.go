// Package entity defines the domain entities for the watchlist feature.
package entity

// TrackedCompany links a user to a company they follow, identified by its
// CIK. A user may track a company at most once.
type TrackedCompany struct {
	// ID is the generated row identifier.
	ID uint `gorm:"primaryKey"`

	// UserID references the owning user. Rows are removed in bulk when
	// the user is deleted.
	UserID uint `gorm:"not null;uniqueIndex:uq_user_company,priority:1"`

	// CIK is the tracked company's registry identifier.
	CIK int `gorm:"column:cik;not null;uniqueIndex:uq_user_company,priority:2"`
}

// TableName keeps the dataset's table name.
func (TrackedCompany) TableName() string {
	return "user_companies"
}
