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
	"fintrack_backend/internal/platform/externalapi/yahoo"
	platformhttp "fintrack_backend/internal/platform/http"
)

const outputFile = "yahoo_sp500_stock_data_10_years_weekly.csv"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, using process environment")
	}

	db := platformdb.OpenDB()
	companyRepo := mdadapters.NewCompanyRepository(db)

	cfg := yahoo.LoadConfig()
	client := platformhttp.NewHTTPClient(cfg.Timeout)
	history := yahoo.NewYahooHistory(cfg, client)

	writer := ingestadapters.NewCSVWriter(outputFile)

	end := time.Now()
	start := end.AddDate(-10, 0, 0)
	uc := ingestusecase.NewYahooUsecase(history, companyRepo, writer, start, end)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	if err := uc.Run(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("yahoo scrape ok:", outputFile)
}
