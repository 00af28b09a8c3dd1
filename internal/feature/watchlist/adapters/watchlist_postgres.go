// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
	"fintrack_backend/internal/feature/watchlist/domain/entity"
	"fintrack_backend/internal/feature/watchlist/usecase"
)

// watchlistPostgres はWatchlistRepositoryインターフェースのPostgres実装です。
type watchlistPostgres struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistPostgres は指定されたDB接続でwatchlistPostgresの新しいインスタンスを生成します。
func NewWatchlistPostgres(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// Add は(userID, cik)の組を挿入します。各挿入はそれ自身の作業単位です。
// ユニーク制約違反はusecase.ErrAlreadyTrackedに変換されます。
func (r *watchlistPostgres) Add(ctx context.Context, userID uint, cik int) error {
	row := &entity.TrackedCompany{UserID: userID, CIK: cik}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrAlreadyTracked
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return usecase.ErrAlreadyTracked
		}
		return err
	}
	return nil
}

// Remove は一致する行があれば削除します。行がなくてもエラーにしません（冪等）。
func (r *watchlistPostgres) Remove(ctx context.Context, userID uint, cik int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND cik = ?", userID, cik).
		Delete(&entity.TrackedCompany{}).Error
}

// LatestFinancials はユーザーの追跡企業ごとに、year降順・month降順で最初の
// 財務行を返します。NOT EXISTSによる相関サブクエリはPostgresとSQLiteの両方で
// 同じ意味になります。
func (r *watchlistPostgres) LatestFinancials(ctx context.Context, userID uint) ([]mdentity.Financial, error) {
	rows := []mdentity.Financial{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT f.*
		FROM financials f
		JOIN user_companies uc ON uc.cik = f.cik AND uc.user_id = ?
		WHERE NOT EXISTS (
			SELECT 1 FROM financials f2
			WHERE f2.cik = f.cik
			  AND (f2.year > f.year OR (f2.year = f.year AND f2.month > f.month))
		)`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TrackedWithLatest は追跡企業を企業メタデータと最新財務行に結合して返します。
// companiesテーブルのcikはテキストで保持されているため、結合時にキャストします。
func (r *watchlistPostgres) TrackedWithLatest(ctx context.Context, userID uint) ([]entity.CompanyOverview, error) {
	rows := []entity.CompanyOverview{}
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.cik AS cik, c.ticker AS ticker, c.companyname AS company_name,
		       f.year AS year, f.month AS month,
		       f.cash_and_equivalents AS cash_and_equivalents,
		       f.long_term_debt AS long_term_debt
		FROM user_companies uc
		JOIN companies c ON CAST(c.cik AS INTEGER) = uc.cik
		JOIN financials f ON f.cik = uc.cik
		WHERE uc.user_id = ?
		  AND NOT EXISTS (
			SELECT 1 FROM financials f2
			WHERE f2.cik = f.cik
			  AND (f2.year > f.year OR (f2.year = f.year AND f2.month > f.month))
		  )`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
