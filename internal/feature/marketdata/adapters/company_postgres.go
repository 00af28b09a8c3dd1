// Package adapters は参照データ(companiesテーブル)へのアクセスを提供します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fintrack_backend/internal/feature/ingest/usecase"
	"fintrack_backend/internal/feature/marketdata/domain/entity"
)

type companyPostgres struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *companyPostgres {
	return &companyPostgres{db: db}
}

// インジェストコマンドの企業・ティッカーソースとして使えることを保証する。
var (
	_ usecase.CompanySource = (*companyPostgres)(nil)
	_ usecase.TickerSource  = (*companyPostgres)(nil)
)

// ListAll は登録済みの全企業を返します。
func (r *companyPostgres) ListAll(ctx context.Context) ([]entity.Company, error) {
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Order("ticker").Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// ListTickers は登録済みの全ティッカーを返します。
func (r *companyPostgres) ListTickers(ctx context.Context) ([]string, error) {
	var tickers []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Company{}).
		Order("ticker").
		Pluck("ticker", &tickers).Error; err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}
	return tickers, nil
}
