package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fintrack_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	CreateFunc        func(ctx context.Context, user *entity.User) error
	FindByEmailFunc   func(ctx context.Context, email string) (*entity.User, error)
	DeleteFunc        func(ctx context.Context, id uint) error
	DeleteCascadeFunc func(ctx context.Context, id uint) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1 // Default: success with assigned ID
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) DeleteCascade(ctx context.Context, id uint) error {
	if m.DeleteCascadeFunc != nil {
		return m.DeleteCascadeFunc(ctx, id)
	}
	return nil
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID uint, email, provider string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID uint, email, provider string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email, provider)
	}
	return "mock-jwt-token", nil
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("successful registration hashes the password", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				require.NotNil(t, user.Password)
				assert.NotEqual(t, "password123", *user.Password, "password is not hashed")
				assert.NoError(t,
					bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte("password123")),
					"invalid bcrypt hash")
				user.ID = 10
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		token, err := uc.Register(context.Background(), "alice", "alice@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
	})

	t.Run("short password is rejected before hitting the store", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Fatal("Create should not be called")
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "short")

		assert.Error(t, err)
	})

	t.Run("duplicate email surfaces ErrEmailAlreadyExists", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrEmailAlreadyExists
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "password123")

		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("token failure deletes the created user", func(t *testing.T) {
		deletedID := uint(0)
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				user.ID = 33
				return nil
			},
			DeleteFunc: func(ctx context.Context, id uint) error {
				deletedID = id
				return nil
			},
		}
		issuer := &mockTokenIssuer{
			GenerateTokenFunc: func(userID uint, email, provider string) (string, error) {
				return "", errors.New("signing failed")
			},
		}
		uc := NewAuthUsecase(repo, issuer)

		_, err := uc.Register(context.Background(), "alice", "alice@example.com", "password123")

		assert.Error(t, err)
		assert.Equal(t, uint(33), deletedID, "compensating delete was not performed")
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	hash := func(pw string) *string {
		h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
		require.NoError(t, err)
		s := string(h)
		return &s
	}

	t.Run("successful login returns token and user id", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 5, Email: email, Password: hash("password123")}, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		token, userID, err := uc.Login(context.Background(), "bob@example.com", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, uint(5), userID)
	})

	t.Run("unknown email and wrong password yield the same error", func(t *testing.T) {
		unknownRepo := &mockUserRepository{} // FindByEmail defaults to ErrUserNotFound
		wrongPwRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 5, Email: email, Password: hash("correct-pw")}, nil
			},
		}

		_, _, errUnknown := NewAuthUsecase(unknownRepo, &mockTokenIssuer{}).
			Login(context.Background(), "nobody@example.com", "whatever")
		_, _, errWrong := NewAuthUsecase(wrongPwRepo, &mockTokenIssuer{}).
			Login(context.Background(), "bob@example.com", "wrong-pw")

		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error(),
			"login failures must be indistinguishable")
	})

	t.Run("password login against an OAuth-only account fails", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				provider := "twitter"
				return &entity.User{ID: 9, Email: email, Provider: &provider}, nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		_, _, err := uc.Login(context.Background(), "oauth@example.com", "anything")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthUsecase_OAuthLogin(t *testing.T) {
	t.Run("twitter user without email gets a synthesized placeholder", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				user.ID = 8
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		token, userID, err := uc.OAuthLogin(context.Background(), "", "jack", "twitter")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
		assert.Equal(t, uint(8), userID)
		require.NotNil(t, created)
		assert.Equal(t, "jack@twitter.user", created.Email)
		assert.Equal(t, "jack", created.Username)
		require.NotNil(t, created.Provider)
		assert.Equal(t, "twitter", *created.Provider)
		assert.Nil(t, created.Password, "OAuth accounts must not carry a password")
	})

	t.Run("non-twitter provider without email is rejected", func(t *testing.T) {
		uc := NewAuthUsecase(&mockUserRepository{}, &mockTokenIssuer{})

		_, _, err := uc.OAuthLogin(context.Background(), "", "carol", "github")

		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("existing account is reused without creating a new row", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 3, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Fatal("Create should not be called for an existing account")
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		_, userID, err := uc.OAuthLogin(context.Background(), "carol@example.com", "carol", "github")

		require.NoError(t, err)
		assert.Equal(t, uint(3), userID)
	})

	t.Run("new non-twitter account derives username from name and email", func(t *testing.T) {
		var created *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				created = user
				user.ID = 4
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		_, _, err := uc.OAuthLogin(context.Background(), "carol@example.com", "carol", "github")

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "carol_carol", created.Username)
	})
}

func TestAuthUsecase_DeleteAccount(t *testing.T) {
	t.Run("delegates to DeleteCascade", func(t *testing.T) {
		var deleted uint
		repo := &mockUserRepository{
			DeleteCascadeFunc: func(ctx context.Context, id uint) error {
				deleted = id
				return nil
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		require.NoError(t, uc.DeleteAccount(context.Background(), 77))
		assert.Equal(t, uint(77), deleted)
	})

	t.Run("missing user surfaces ErrUserNotFound", func(t *testing.T) {
		repo := &mockUserRepository{
			DeleteCascadeFunc: func(ctx context.Context, id uint) error {
				return ErrUserNotFound
			},
		}
		uc := NewAuthUsecase(repo, &mockTokenIssuer{})

		assert.ErrorIs(t, uc.DeleteAccount(context.Background(), 77), ErrUserNotFound)
	})
}
