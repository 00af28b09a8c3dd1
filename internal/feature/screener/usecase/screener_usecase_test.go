package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack_backend/internal/feature/screener/domain/entity"
)

// mockScreenerRepository stubs only the methods a given test exercises.
type mockScreenerRepository struct {
	ScreenerRepository
	ListStocksFunc func(ctx context.Context) ([]entity.StockListing, error)
	TopStocksFunc  func(ctx context.Context) ([]entity.TopStock, error)
	SearchFunc     func(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error)
}

func (m *mockScreenerRepository) ListStocks(ctx context.Context) ([]entity.StockListing, error) {
	return m.ListStocksFunc(ctx)
}

func (m *mockScreenerRepository) TopStocks(ctx context.Context) ([]entity.TopStock, error) {
	return m.TopStocksFunc(ctx)
}

func (m *mockScreenerRepository) Search(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error) {
	return m.SearchFunc(ctx, where, args)
}

func TestScreenerUsecase_EmptyResults(t *testing.T) {
	t.Run("catalog queries normalize empty results to ErrNoData", func(t *testing.T) {
		repo := &mockScreenerRepository{
			TopStocksFunc: func(ctx context.Context) ([]entity.TopStock, error) {
				return []entity.TopStock{}, nil
			},
		}
		uc := NewScreenerUsecase(repo)

		_, err := uc.TopStocks(context.Background())

		assert.ErrorIs(t, err, ErrNoData)
	})

	t.Run("store errors pass through unchanged", func(t *testing.T) {
		storeErr := errors.New("connection refused")
		repo := &mockScreenerRepository{
			TopStocksFunc: func(ctx context.Context) ([]entity.TopStock, error) {
				return nil, storeErr
			},
		}
		uc := NewScreenerUsecase(repo)

		_, err := uc.TopStocks(context.Background())

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("stock listing stays empty without error", func(t *testing.T) {
		repo := &mockScreenerRepository{
			ListStocksFunc: func(ctx context.Context) ([]entity.StockListing, error) {
				return []entity.StockListing{}, nil
			},
		}
		uc := NewScreenerUsecase(repo)

		rows, err := uc.ListStocks(context.Background())

		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestScreenerUsecase_Search(t *testing.T) {
	t.Run("valid criteria compose a parameterized predicate", func(t *testing.T) {
		var gotWhere string
		var gotArgs []any
		repo := &mockScreenerRepository{
			SearchFunc: func(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error) {
				gotWhere = where
				gotArgs = args
				return []entity.FinancialRow{}, nil
			},
		}
		uc := NewScreenerUsecase(repo)

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "assets", Operator: ">", Value: "1000000"},
			{Column: "year", Operator: "=", Value: "2022", Connector: "AND"},
		})

		require.NoError(t, err)
		assert.Equal(t, "assets > ? AND year = ?", gotWhere)
		assert.Equal(t, []any{"1000000", "2022"}, gotArgs)
	})

	t.Run("column names are normalized before the allow-list check", func(t *testing.T) {
		repo := &mockScreenerRepository{
			SearchFunc: func(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error) {
				assert.Equal(t, "liabilities < ?", where)
				return nil, nil
			},
		}
		uc := NewScreenerUsecase(repo)

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "  Liabilities ", Operator: "<", Value: "5"},
		})

		assert.NoError(t, err)
	})

	t.Run("unknown column is rejected", func(t *testing.T) {
		uc := NewScreenerUsecase(&mockScreenerRepository{})

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "assets; DROP TABLE financials--", Operator: "=", Value: "1"},
		})

		assert.ErrorIs(t, err, ErrInvalidCriterion)
	})

	t.Run("unknown operator is rejected", func(t *testing.T) {
		uc := NewScreenerUsecase(&mockScreenerRepository{})

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "assets", Operator: "LIKE", Value: "%x%"},
		})

		assert.ErrorIs(t, err, ErrInvalidCriterion)
	})

	t.Run("unknown connector is rejected", func(t *testing.T) {
		uc := NewScreenerUsecase(&mockScreenerRepository{})

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "assets", Operator: ">", Value: "1"},
			{Column: "year", Operator: "=", Value: "2022", Connector: "UNION"},
		})

		assert.ErrorIs(t, err, ErrInvalidCriterion)
	})

	t.Run("hostile values are passed as bind arguments, never spliced", func(t *testing.T) {
		hostile := "1 OR 1=1; DROP TABLE financials--"
		repo := &mockScreenerRepository{
			SearchFunc: func(ctx context.Context, where string, args []any) ([]entity.FinancialRow, error) {
				assert.NotContains(t, where, "DROP TABLE")
				assert.Equal(t, []any{hostile}, args)
				return nil, nil
			},
		}
		uc := NewScreenerUsecase(repo)

		_, err := uc.Search(context.Background(), []Criterion{
			{Column: "cik", Operator: "=", Value: hostile},
		})

		assert.NoError(t, err)
	})

	t.Run("empty criteria list is rejected", func(t *testing.T) {
		uc := NewScreenerUsecase(&mockScreenerRepository{})

		_, err := uc.Search(context.Background(), nil)

		assert.ErrorIs(t, err, ErrInvalidCriterion)
	})
}
