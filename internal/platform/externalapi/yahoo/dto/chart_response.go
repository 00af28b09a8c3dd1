// Package dto はYahoo FinanceチャートAPIのレスポンス表現を定義します。
package dto

// ChartResponse は /v8/finance/chart/{ticker} のレスポンスボディです。
// 配列の要素は休場日などでnullになり得るため、値はポインタで受けます。
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []Quote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *ChartError `json:"error"`
	} `json:"chart"`
}

// Quote はOHLCVの並列配列です。
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// ChartError はAPIエラーの内容です。
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
