// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fintrack_backend/internal/api"
	"fintrack_backend/internal/feature/auth/transport/http/dto"
	"fintrack_backend/internal/feature/auth/usecase"
	jwtmw "fintrack_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は新規ユーザーを登録し、トークンを返します。
	Register(ctx context.Context, username, email, password string) (string, error)
	// Login はユーザーを認証し、成功時にトークンとユーザーIDを返します。
	Login(ctx context.Context, email, password string) (string, uint, error)
	// OAuthLogin はOAuthユーザーを検索または作成し、トークンとユーザーIDを返します。
	OAuthLogin(ctx context.Context, email, name, provider string) (string, uint, error)
	// DeleteAccount はユーザーとその所有データを削除します。
	DeleteAccount(ctx context.Context, userID uint) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複時も400を返却（登録済みメールの存在を漏らさないため）
// - 成功時はトークン付きで201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		// ユーザー列挙攻撃を防止するため、実際のエラーを公開しない
		slog.Warn("register failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "registration failed"})
		return
	}
	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.TokenResponse{Token: token})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 認証失敗時は401を返却（メール不明とパスワード不一致は区別しない）
// - 成功時はトークンとユーザーID付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, userID, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		return
	}
	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, UserID: userID})
}

// OAuth はOAuthログインAPIエンドポイントを処理します。
func (h *AuthHandler) OAuth(c *gin.Context) {
	var req dto.OAuthReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("oauth validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, userID, err := h.auth.OAuthLogin(c.Request.Context(), req.Email, req.Name, req.Provider)
	if err != nil {
		slog.Warn("oauth login failed", "error", err, "provider", req.Provider, "remote_addr", c.ClientIP())
		if errors.Is(err, usecase.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "oauth login failed"})
		return
	}
	slog.Info("oauth login successful", "provider", req.Provider, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token, UserID: userID})
}

// Logout はトークンの検証のみを行います。トークンはステートレスで失効リストを
// 持たないため、サーバー側の状態変更はありません。
func (h *AuthHandler) Logout(c *gin.Context) {
	// AuthRequiredミドルウェアを通過した時点でトークンは検証済み
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Successfully logged out"})
}

// Me は検証済みトークンのクレームのみからプロフィールを組み立てます。
// ストアは読まないため、トークン発行後のストア変更は反映されません。
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	c.JSON(http.StatusOK, api.ProfileResponse{
		ID:       strconv.FormatUint(uint64(claims.UserID), 10),
		Email:    claims.Email,
		Provider: claims.Provider,
		Username: usernameFromEmail(claims.Email),
	})
}

// Delete はアカウント削除APIエンドポイントを処理します。
// ウォッチリスト行とユーザー行を1つの論理的な操作として削除します。
func (h *AuthHandler) Delete(c *gin.Context) {
	claims, ok := jwtmw.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "could not validate credentials"})
		return
	}
	if err := h.auth.DeleteAccount(c.Request.Context(), claims.UserID); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("account deletion failed", "error", err, "user_id", claims.UserID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "deletion failed"})
		return
	}
	slog.Info("account deleted", "user_id", claims.UserID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted successfully"})
}

// usernameFromEmail はメールアドレスのドメイン区切りより前をユーザー名として返します。
func usernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
