// Package usecase はウォッチリスト操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"

	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
	"fintrack_backend/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository はウォッチリストの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistRepository interface {
	// Add は(userID, cik)の組を1件追加します。
	// 既に存在する場合、ErrAlreadyTrackedを返します。
	Add(ctx context.Context, userID uint, cik int) error

	// Remove は(userID, cik)の組を削除します。存在しない場合もエラーにしません。
	Remove(ctx context.Context, userID uint, cik int) error

	// LatestFinancials はユーザーが追跡する各企業の最新（year降順、month降順で先頭）の
	// 財務行を返します。財務行のない企業は含まれません。
	LatestFinancials(ctx context.Context, userID uint) ([]mdentity.Financial, error)

	// TrackedWithLatest は追跡企業をメタデータと最新財務スナップショットに結合して返します。
	TrackedWithLatest(ctx context.Context, userID uint) ([]entity.CompanyOverview, error)
}

// TrackResult は一括追跡の結果です。追加できたCIKと、既に追跡済みで
// スキップされたCIKを区別して返します。
type TrackResult struct {
	Added   []int `json:"added"`
	Skipped []int `json:"skipped"`
}

// watchlistUsecase はウォッチリスト操作のユースケースを実装します。
type watchlistUsecase struct {
	watchlist WatchlistRepository
}

// NewWatchlistUsecase はwatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(watchlist WatchlistRepository) *watchlistUsecase {
	return &watchlistUsecase{watchlist: watchlist}
}

// Track は各CIKを独立に1件ずつ追加します。重複はその場でスキップ扱いとし、
// 残りの処理を続行します。意図的にバッチ全体のトランザクションにはしません:
// 1件の失敗が他の追加を巻き戻さないことが仕様です。
func (u *watchlistUsecase) Track(ctx context.Context, userID uint, ciks []int) (TrackResult, error) {
	result := TrackResult{Added: []int{}, Skipped: []int{}}
	for _, cik := range ciks {
		err := u.watchlist.Add(ctx, userID, cik)
		switch {
		case err == nil:
			result.Added = append(result.Added, cik)
		case errors.Is(err, ErrAlreadyTracked):
			result.Skipped = append(result.Skipped, cik)
		default:
			return TrackResult{}, err
		}
	}
	return result, nil
}

// Untrack は追跡を解除します。冪等で、未追跡のCIKに対しても成功します。
func (u *watchlistUsecase) Untrack(ctx context.Context, userID uint, cik int) error {
	return u.watchlist.Remove(ctx, userID, cik)
}

// LatestFinancials はユーザーの追跡企業ごとの最新財務行を返します。
// 何も追跡していない場合は空のスライスを返します（エラーではありません）。
func (u *watchlistUsecase) LatestFinancials(ctx context.Context, userID uint) ([]mdentity.Financial, error) {
	return u.watchlist.LatestFinancials(ctx, userID)
}

// TrackedCompanies は追跡企業を企業メタデータと最新スナップショット付きで返します。
func (u *watchlistUsecase) TrackedCompanies(ctx context.Context, userID uint) ([]entity.CompanyOverview, error) {
	return u.watchlist.TrackedWithLatest(ctx, userID)
}
