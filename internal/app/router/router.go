// Package router はアプリケーションの全ルートを組み立てます。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "fintrack_backend/internal/feature/auth/transport/handler"
	screenerhandler "fintrack_backend/internal/feature/screener/transport/handler"
	watchhandler "fintrack_backend/internal/feature/watchlist/transport/handler"
	"fintrack_backend/internal/platform/http/handler"
	jwtmw "fintrack_backend/internal/platform/jwt"
)

// NewRouter は全ハンドラを受け取ってginエンジンを構成します。
// jwtSecret は認証必須ルートのミドルウェアに渡します。
func NewRouter(auth *authhandler.AuthHandler, watchlist *watchhandler.WatchlistHandler,
	screener *screenerhandler.ScreenerHandler, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", handler.Health)

	// ユーザー系ルート。登録・ログイン・OAuthは認証不要。
	users := r.Group("/users")
	{
		users.POST("/register", auth.Register)
		users.POST("/login", auth.Login)
		users.POST("/oauth", auth.OAuth)

		// 認証必須のルート
		authed := users.Group("/")
		authed.Use(jwtmw.AuthRequired(jwtSecret))
		{
			authed.POST("/logout", auth.Logout)
			authed.GET("/me", auth.Me)
			authed.DELETE("/delete", auth.Delete)

			// ウォッチリスト
			authed.POST("/companies", watchlist.Track)
			authed.DELETE("/companies", watchlist.Untrack)
			authed.GET("/companies", watchlist.TrackedCompanies)
			authed.GET("/companies/data", watchlist.LatestFinancials)
		}
	}

	// 分析クエリ。読み取り専用で認証不要。
	api := r.Group("/api")
	{
		api.GET("/stocks", screener.ListStocks)
		api.GET("/stocks/top_stocks", screener.TopStocks)
		api.GET("/stocks/monthly_avg_close", screener.MonthlyAvgClose)
		api.GET("/stocks/highest-fluctuations", screener.HighestFluctuations)
		api.GET("/stocks/highest-liquidity-debt-ratio", screener.LiquidityDebtRatios)
		api.GET("/stock/greatest-leverage-differences", screener.LeverageDifferences)
		api.GET("/companies/high_cash_reserves", screener.HighCashReserves)
		api.GET("/companies/debt_to_asset_ratio", screener.DebtToAssetRatios)
		api.GET("/companies/high_cash_minimal_debt", screener.HighCashMinimalDebt)
		api.GET("/companies/similar_debt_ratios", screener.SimilarDebtRatios)
		api.GET("/companies/similar_inventory_ratios", screener.SimilarInventoryRatios)
		api.GET("/companies/strong_liquidity", screener.StrongLiquidity)
		api.GET("/companies/financial_improvement", screener.FinancialImprovement)
		api.POST("/search", screener.Search)
	}

	return r
}
