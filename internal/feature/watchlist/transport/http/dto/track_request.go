// Package dto はwatchlistフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// TrackReq は/users/companiesへのPOSTボディを表します。
type TrackReq struct {
	CIKs []int `json:"ciks" binding:"required"`
}

// UntrackReq は/users/companiesへのDELETEボディを表します。
type UntrackReq struct {
	CIK int `json:"cik" binding:"required"`
}
