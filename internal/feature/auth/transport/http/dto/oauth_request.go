package dto

// OAuthReq は/users/oauthエンドポイントのリクエストボディを表します。
// メールアドレスはプロバイダーによっては提供されないため任意です
// （Twitterの場合はユースケース側でプレースホルダーを合成します）。
type OAuthReq struct {
	Email    string `json:"email"`
	Name     string `json:"name" binding:"required"`
	Provider string `json:"provider" binding:"required"`
}
