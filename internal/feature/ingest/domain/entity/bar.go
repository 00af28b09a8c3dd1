// Package entity はインジェスト処理のドメインモデルを定義します。
package entity

import "time"

// Bar は1本分の価格バー(週足)です。
type Bar struct {
	Ticker string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}
