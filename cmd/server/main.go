package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"fintrack_backend/internal/app/router"
	authadapters "fintrack_backend/internal/feature/auth/adapters"
	authhandler "fintrack_backend/internal/feature/auth/transport/handler"
	authusecase "fintrack_backend/internal/feature/auth/usecase"
	screeneradapters "fintrack_backend/internal/feature/screener/adapters"
	screenerhandler "fintrack_backend/internal/feature/screener/transport/handler"
	screenerusecase "fintrack_backend/internal/feature/screener/usecase"
	watchadapters "fintrack_backend/internal/feature/watchlist/adapters"
	watchhandler "fintrack_backend/internal/feature/watchlist/transport/handler"
	watchusecase "fintrack_backend/internal/feature/watchlist/usecase"
	platformdb "fintrack_backend/internal/platform/db"
	jwtmw "fintrack_backend/internal/platform/jwt"
)

func main() {
	// .envは開発用。無くてもエラーにしない。
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using process environment")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// db
	db := platformdb.OpenDB()

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	watchRepo := watchadapters.NewWatchlistPostgres(db)
	screenerRepo := screeneradapters.NewScreenerRepository(db)

	// Usecase
	tokenIssuer := jwtmw.NewGenerator(jwtSecret)
	authUC := authusecase.NewAuthUsecase(userRepo, tokenIssuer)
	watchUC := watchusecase.NewWatchlistUsecase(watchRepo)
	screenerUC := screenerusecase.NewScreenerUsecase(screenerRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	watchH := watchhandler.NewWatchlistHandler(watchUC)
	screenerH := screenerhandler.NewScreenerHandler(screenerUC)

	// ルータ生成
	r := router.NewRouter(authH, watchH, screenerH, jwtSecret)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
