package adapters

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
	"fintrack_backend/internal/feature/watchlist/domain/entity"
	"fintrack_backend/internal/feature/watchlist/usecase"
)

// setupTestDB prepares an in-memory SQLite database with the watchlist
// table and the read-only dataset tables the raw queries join against.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.TrackedCompany{}, &mdentity.Company{}, &mdentity.Financial{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func dec(v float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(v), Valid: true}
}

func TestWatchlistPostgres_Add(t *testing.T) {
	t.Run("first insert succeeds, second is reported as tracked", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)

		require.NoError(t, repo.Add(context.Background(), 1, 320193))

		err := repo.Add(context.Background(), 1, 320193)
		assert.ErrorIs(t, err, usecase.ErrAlreadyTracked)
	})

	t.Run("same cik for different users is allowed", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)

		require.NoError(t, repo.Add(context.Background(), 1, 320193))
		assert.NoError(t, repo.Add(context.Background(), 2, 320193))
	})
}

func TestWatchlistPostgres_Remove(t *testing.T) {
	t.Run("removes an existing row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)
		require.NoError(t, repo.Add(context.Background(), 1, 100))

		require.NoError(t, repo.Remove(context.Background(), 1, 100))

		var count int64
		db.Model(&entity.TrackedCompany{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("removing an absent row is not an error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)

		assert.NoError(t, repo.Remove(context.Background(), 1, 999))
	})
}

func TestWatchlistPostgres_LatestFinancials(t *testing.T) {
	seed := func(t *testing.T, db *gorm.DB) {
		t.Helper()
		rows := []mdentity.Financial{
			{CIK: 100, Year: 2021, Month: 12, CashAndEquivalents: dec(50)},
			{CIK: 100, Year: 2022, Month: 3, CashAndEquivalents: dec(80)},
			{CIK: 100, Year: 2022, Month: 1, CashAndEquivalents: dec(60)},
			{CIK: 300, Year: 2022, Month: 6, CashAndEquivalents: dec(10)},
		}
		for i := range rows {
			require.NoError(t, db.Create(&rows[i]).Error)
		}
	}

	t.Run("returns the single newest row per tracked company", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)
		seed(t, db)
		require.NoError(t, repo.Add(context.Background(), 1, 100))

		rows, err := repo.LatestFinancials(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 100, rows[0].CIK)
		assert.Equal(t, 2022, rows[0].Year)
		assert.Equal(t, 3, rows[0].Month, "year takes precedence, then month")
	})

	t.Run("tracked companies without financials are omitted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)
		seed(t, db)
		require.NoError(t, repo.Add(context.Background(), 1, 100))
		require.NoError(t, repo.Add(context.Background(), 1, 200)) // no financials

		rows, err := repo.LatestFinancials(context.Background(), 1)

		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("untracked companies are excluded", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)
		seed(t, db)
		require.NoError(t, repo.Add(context.Background(), 1, 100))

		rows, err := repo.LatestFinancials(context.Background(), 1)

		require.NoError(t, err)
		for _, row := range rows {
			assert.NotEqual(t, 300, row.CIK)
		}
	})

	t.Run("empty watchlist returns an empty slice", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewWatchlistPostgres(db)
		seed(t, db)

		rows, err := repo.LatestFinancials(context.Background(), 1)

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestWatchlistPostgres_TrackedWithLatest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWatchlistPostgres(db)

	require.NoError(t, db.Create(&mdentity.Company{Ticker: "AAPL", CompanyName: "Apple Inc.", CIK: "100"}).Error)
	require.NoError(t, db.Create(&mdentity.Financial{
		CIK: 100, Year: 2021, Month: 9,
		CashAndEquivalents: dec(100), LongTermDebt: dec(40),
	}).Error)
	require.NoError(t, db.Create(&mdentity.Financial{
		CIK: 100, Year: 2022, Month: 6,
		CashAndEquivalents: dec(120), LongTermDebt: dec(30),
	}).Error)
	require.NoError(t, repo.Add(context.Background(), 1, 100))

	rows, err := repo.TrackedWithLatest(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, "Apple Inc.", rows[0].CompanyName)
	assert.Equal(t, 2022, rows[0].Year)
	assert.Equal(t, 6, rows[0].Month)
	require.True(t, rows[0].CashAndEquivalents.Valid)
	assert.True(t, rows[0].CashAndEquivalents.Decimal.Equal(decimal.NewFromInt(120)))
}
