package usecase

import "errors"

var (
	// ErrNoData はクエリ結果が0件だったことを示します。
	ErrNoData = errors.New("no data found")
	// ErrInvalidCriterion は検索条件が許可リスト外であることを示します。
	ErrInvalidCriterion = errors.New("invalid search criterion")
)
