package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/mohammed4122002/workflow-pro-backend/internal/auth/errors"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
	"github.com/mohammed4122002/workflow-pro-backend/internal/user"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

const tokenTTL = 24 * time.Hour

type service struct {
	users  user.Repository
	secret []byte
}

func NewService(users user.Repository, secret []byte) Service {
	return &service{users: users, secret: secret}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return LoginResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		l.Error("failed to sign access token", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGeneration
	}

	l.Info("user logged in", zap.String("user_id", u.ID.String()))
	return LoginResponse{
		AccessToken: token,
		User:        mapToResponse(u),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrUserNotFound
	}

	return mapToResponse(u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	if !u.IsActive {
		return autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.OldPassword)); err != nil {
		return autherrors.ErrOldPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)

	if err := s.users.Update(ctx, u); err != nil {
		l.Error("failed to update password", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	l.Info("password changed", zap.String("user_id", userID))
	return nil
}

// Tokens carry identity only. Role and active status are re-resolved on
// every request so revocation takes effect immediately.
func (s *service) generateToken(u *user.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID.String(),
		"email": u.Email,
		"role":  string(u.Role),
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func mapToResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
}
