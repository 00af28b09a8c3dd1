// Package dto はスクリーナーAPIのリクエストDTOを定義します。
package dto

// SearchCriterion は検索条件1件分のリクエスト表現です。
type SearchCriterion struct {
	Feature         string `json:"feature" binding:"required"`
	Operator        string `json:"operator" binding:"required"`
	Value           string `json:"value" binding:"required"`
	LogicalOperator string `json:"logicalOperator"`
}

// SearchReq は POST /api/search のボディです。
type SearchReq struct {
	Criteria []SearchCriterion `json:"criteria" binding:"required,min=1,dive"`
}
