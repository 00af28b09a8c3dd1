// Package usecase はオフラインのデータ収集コマンドのロジックを提供します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	mdentity "fintrack_backend/internal/feature/marketdata/domain/entity"
)

// SECの四半期フレームから取得するus-gaapコンセプト。列順はCSVの列順です。
var secConcepts = []string{
	"AccountsPayableCurrent",
	"Assets",
	"Liabilities",
	"CashAndCashEquivalentsAtCarryingValue",
	"AccountsReceivableNetCurrent",
	"InventoryNet",
	"LongTermDebt",
}

const (
	secStartYear = 2009
	secEndYear   = 2022
)

// FramesRepository はSEC EDGARのフレームAPIを抽象化します。
// 返り値は cik → 報告値のマップです。
type FramesRepository interface {
	GetFrames(ctx context.Context, concept string, year, quarter int) (map[int]float64, error)
}

// CompanySource は対象企業の一覧を提供します。
type CompanySource interface {
	ListAll(ctx context.Context) ([]mdentity.Company, error)
}

// RowWriter は集計結果の出力先です。実装はadaptersのCSVライタです。
type RowWriter interface {
	WriteAll(header []string, rows [][]string) error
}

// SECUsecase はSECの四半期フレームを企業×期間のワイド表へ集約します。
type SECUsecase struct {
	frames    FramesRepository
	companies CompanySource
	writer    RowWriter
}

func NewSECUsecase(frames FramesRepository, companies CompanySource, writer RowWriter) *SECUsecase {
	return &SECUsecase{frames: frames, companies: companies, writer: writer}
}

// periodKey は集約のキーです。四半期単位で値を持ちます。
type periodKey struct {
	cik     int
	year    int
	quarter int
}

// Run は全コンセプト×全期間のフレームを取得し、四半期ごとの値を月次
// 3行に展開したCSVを書き出します。対象企業は全期間に行を持ち、値が
// 取れなかったセルは空欄になります。個々の取得失敗もログに残して
// スキップし、該当セルを空欄のままにします。
func (u *SECUsecase) Run(ctx context.Context) error {
	companies, err := u.companies.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}
	wanted := make(map[int]bool, len(companies))
	for _, c := range companies {
		cik, err := strconv.Atoi(c.CIK)
		if err != nil {
			slog.Warn("skipping company with invalid cik", "cik", c.CIK, "ticker", c.Ticker)
			continue
		}
		wanted[cik] = true
	}

	// 全企業×全期間を先に空行で敷いておく。フレームに一度も現れない
	// 企業でも期間ごとの空欄行が出力される。
	merged := make(map[periodKey][]*float64)
	for cik := range wanted {
		for year := secStartYear; year <= secEndYear; year++ {
			for quarter := 1; quarter <= 4; quarter++ {
				merged[periodKey{cik: cik, year: year, quarter: quarter}] = make([]*float64, len(secConcepts))
			}
		}
	}

	for year := secStartYear; year <= secEndYear; year++ {
		for quarter := 1; quarter <= 4; quarter++ {
			for i, concept := range secConcepts {
				values, err := u.frames.GetFrames(ctx, concept, year, quarter)
				if err != nil {
					slog.Warn("failed to fetch frames, skipping",
						"concept", concept, "year", year, "quarter", quarter, "error", err)
					continue
				}
				for cik, val := range values {
					if !wanted[cik] {
						continue
					}
					v := val
					merged[periodKey{cik: cik, year: year, quarter: quarter}][i] = &v
				}
			}
		}
	}

	keys := make([]periodKey, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].cik != keys[j].cik {
			return keys[i].cik < keys[j].cik
		}
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].quarter < keys[j].quarter
	})

	header := append([]string{"CIK", "Year", "Month"}, secConcepts...)
	rows := make([][]string, 0, len(keys)*3)
	for _, k := range keys {
		values := merged[k]
		// 四半期の値をその期の3か月へ複製する。
		for _, month := range quarterMonths(k.quarter) {
			row := make([]string, 0, len(header))
			row = append(row,
				strconv.Itoa(k.cik),
				strconv.Itoa(k.year),
				strconv.Itoa(month),
			)
			for _, v := range values {
				if v == nil {
					row = append(row, "")
					continue
				}
				row = append(row, strconv.FormatFloat(*v, 'f', -1, 64))
			}
			rows = append(rows, row)
		}
	}

	if err := u.writer.WriteAll(header, rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	slog.Info("sec ingest finished", "periods", len(keys), "rows", len(rows))
	return nil
}

func quarterMonths(quarter int) [3]int {
	last := quarter * 3
	return [3]int{last - 2, last - 1, last}
}
