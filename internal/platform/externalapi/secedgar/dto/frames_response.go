// Package dto はSEC EDGARフレームAPIのレスポンス表現を定義します。
package dto

// FramesResponse は /api/xbrl/frames/... のレスポンスボディです。
// 必要なフィールドだけをデコードします。
type FramesResponse struct {
	Tag  string       `json:"tag"`
	Ccp  string       `json:"ccp"` // 期間識別子 (例: "CY2020Q1I")
	UOM  string       `json:"uom"`
	Data []FrameEntry `json:"data"`
}

// FrameEntry は1企業分の報告値です。
type FrameEntry struct {
	CIK        int     `json:"cik"`
	EntityName string  `json:"entityName"`
	Value      float64 `json:"val"`
}
