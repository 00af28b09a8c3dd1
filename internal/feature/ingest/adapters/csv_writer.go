// Package adapters はインジェスト結果の出力実装を提供します。
package adapters

import (
	"encoding/csv"
	"fmt"
	"os"

	"fintrack_backend/internal/feature/ingest/usecase"
)

// csvWriter はヘッダ付きCSVをファイルへ一括で書き出します。
type csvWriter struct {
	path string
}

func NewCSVWriter(path string) usecase.RowWriter {
	return &csvWriter{path: path}
}

var _ usecase.RowWriter = (*csvWriter)(nil)

func (w *csvWriter) WriteAll(header []string, rows [][]string) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", w.path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return f.Close()
}
