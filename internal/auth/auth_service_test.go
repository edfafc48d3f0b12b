package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/auth"
	autherrors "github.com/mohammed4122002/workflow-pro-backend/internal/auth/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/user"
)

var testSecret = []byte("unit-test-secret")

type fakeUserRepository struct {
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	updateFn      func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository { return f }

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindAll(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func hashedUser(t *testing.T, password string, active bool) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:       uuid.New(),
		Name:     "Rama Wijaya",
		Email:    "rama@workflowpro.io",
		Password: string(hashed),
		Role:     "MANAGER",
		IsActive: active,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success issues subject bearing token", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass", true)
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		res, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "s3cret-pass"})

		assert.NoError(t, err)
		assert.Equal(t, u.ID.String(), res.User.ID)
		assert.Equal(t, "MANAGER", res.User.Role)

		token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return testSecret, nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims, ok := token.Claims.(jwt.MapClaims)
		assert.True(t, ok)
		assert.Equal(t, u.ID.String(), claims["sub"])
		assert.Equal(t, u.Email, claims["email"])
	})

	t.Run("negative wrong password", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass", true)
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "wrong"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@workflowpro.io", Password: "whatever"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative inactive account", func(t *testing.T) {
		u := hashedUser(t, "s3cret-pass", false)
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: u.Email, Password: "s3cret-pass"})
		assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success stores new hash", func(t *testing.T) {
		u := hashedUser(t, "old-password", true)
		var saved *user.User
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return u, nil
			},
			updateFn: func(ctx context.Context, updated *user.User) error {
				saved = updated
				return nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		err := svc.ChangePassword(ctx, u.ID.String(), auth.ChangePasswordRequest{
			OldPassword: "old-password",
			NewPassword: "brand-new-password",
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("brand-new-password")))
	})

	t.Run("negative wrong old password", func(t *testing.T) {
		u := hashedUser(t, "old-password", true)
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		err := svc.ChangePassword(ctx, u.ID.String(), auth.ChangePasswordRequest{
			OldPassword: "not-the-old-one",
			NewPassword: "brand-new-password",
		})
		assert.ErrorIs(t, err, autherrors.ErrOldPassword)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		err := svc.ChangePassword(ctx, uuid.New().String(), auth.ChangePasswordRequest{
			OldPassword: "a",
			NewPassword: "brand-new-password",
		})
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		u := hashedUser(t, "irrelevant", true)
		repo := &fakeUserRepository{
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, u.ID.String(), id)
				return u, nil
			},
		}
		svc := auth.NewService(repo, testSecret)

		res, err := svc.GetMe(ctx, u.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, u.Email, res.Email)
		assert.True(t, res.IsActive)
	})

	t.Run("negative not found", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, testSecret)

		_, err := svc.GetMe(ctx, uuid.New().String())
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
