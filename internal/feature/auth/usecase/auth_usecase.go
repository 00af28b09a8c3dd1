// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fintrack_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// providerCredentials はパスワード認証アカウントのトークンに付与されるプロバイダー名です。
	providerCredentials = "credentials"

	// providerTwitter はメールアドレスを提供しない唯一のOAuthプロバイダーです。
	providerTwitter = "twitter"

	// twitterEmailDomain はTwitterユーザー向けに合成するメールアドレスのドメインです。
	twitterEmailDomain = "twitter.user"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Delete は指定されたIDのユーザー行のみを削除します（補償削除用）。
	Delete(ctx context.Context, id uint) error

	// DeleteCascade はユーザーのウォッチリスト行とユーザー行を
	// 1つのトランザクションで削除します。ユーザーが存在しない場合、ErrUserNotFoundを返します。
	DeleteCascade(ctx context.Context, id uint) error
}

// TokenIssuer は署名済みトークン生成のインターフェースを定義します。
// 実装はplatform/jwtにあります。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint, email, provider string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenIssuer) *authUsecase {
	return &authUsecase{users: users, tokens: tokens}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、トークンを発行します。
// トークン発行が失敗した場合、作成済みのユーザー行を削除してから
// エラーを返します（永続化されていないユーザーのトークンを残さないため）。
func (u *authUsecase) Register(ctx context.Context, username, email, password string) (string, error) {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	hashedStr := string(hashed)

	user := &entity.User{Username: username, Email: email, Password: &hashedStr}
	if err := u.users.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := u.tokens.GenerateToken(user.ID, email, providerCredentials)
	if err != nil {
		// 補償削除: トークンなしのユーザーを残さない
		_ = u.users.Delete(ctx, user.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// Login はユーザーを認証し、成功時にトークンとユーザーIDを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, uint, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザー未検出・OAuthアカウント（パスワードなし）向けのダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil && user.Password != nil {
		passwordHash = *user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、同一の汎用エラーを返す
	if err != nil || user.Password == nil || compareErr != nil {
		return "", 0, ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email, providerCredentials)
	if tokenErr != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, user.ID, nil
}

// OAuthLogin はOAuthプロバイダー経由のユーザーを検索または作成し、トークンを発行します。
// Twitterはメールアドレスを提供しないため、表示名から決定的なプレースホルダーを合成します。
// それ以外のプロバイダーでメールアドレスが無い場合、ErrEmailRequiredを返します。
func (u *authUsecase) OAuthLogin(ctx context.Context, email, name, provider string) (string, uint, error) {
	if provider == providerTwitter && email == "" {
		email = fmt.Sprintf("%s@%s", name, twitterEmailDomain)
	}
	if email == "" {
		return "", 0, ErrEmailRequired
	}

	// 既存アカウントがあればそのままトークンを発行
	existing, err := u.users.FindByEmail(ctx, email)
	if err == nil {
		token, tokenErr := u.tokens.GenerateToken(existing.ID, existing.Email, provider)
		if tokenErr != nil {
			return "", 0, fmt.Errorf("failed to generate token: %w", tokenErr)
		}
		return token, existing.ID, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return "", 0, err
	}

	// 新規パスワードレスアカウントを作成
	username := name
	if provider != providerTwitter {
		username = fmt.Sprintf("%s_%s", name, localPart(email))
	}
	user := &entity.User{Email: email, Username: username, Provider: &provider}
	if err := u.users.Create(ctx, user); err != nil {
		return "", 0, err
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email, provider)
	if tokenErr != nil {
		_ = u.users.Delete(ctx, user.ID)
		return "", 0, fmt.Errorf("failed to generate token: %w", tokenErr)
	}
	return token, user.ID, nil
}

// DeleteAccount はユーザーと、そのユーザーが所有するウォッチリスト行を削除します。
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	return u.users.DeleteCascade(ctx, userID)
}

// localPart はメールアドレスの@より前の部分を返します。
func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}
