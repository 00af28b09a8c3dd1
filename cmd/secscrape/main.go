package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	ingestadapters "fintrack_backend/internal/feature/ingest/adapters"
	ingestusecase "fintrack_backend/internal/feature/ingest/usecase"
	mdadapters "fintrack_backend/internal/feature/marketdata/adapters"
	platformdb "fintrack_backend/internal/platform/db"
	"fintrack_backend/internal/platform/externalapi/secedgar"
	platformhttp "fintrack_backend/internal/platform/http"
	"fintrack_backend/internal/shared/ratelimiter"
)

const outputFile = "sec_sp500_data.csv"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using process environment")
	}

	cfg := secedgar.LoadConfig()
	if cfg.UserAgent == "" {
		log.Fatal("SEC_EDGAR_USER_AGENT is not set (SEC requires a contact address)")
	}

	db := platformdb.OpenDB()
	companyRepo := mdadapters.NewCompanyRepository(db)

	client := platformhttp.NewHTTPClient(cfg.Timeout)
	frames := secedgar.NewEdgarFrames(cfg, client)
	// SECのフェアユース上限は10req/s。余裕を持って8req/sに抑える。
	limiter := ratelimiter.NewRateLimiter(8, time.Second)
	throttled := ingestadapters.NewThrottledFrames(frames, limiter)

	writer := ingestadapters.NewCSVWriter(outputFile)
	uc := ingestusecase.NewSECUsecase(throttled, companyRepo, writer)

	// 14年×4四半期×7コンセプトで約400リクエスト。1時間あれば十分。
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	if err := uc.Run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("sec scrape ok:", outputFile)
}
