package user

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mohammed4122002/workflow-pro-backend/internal/access"
	"github.com/mohammed4122002/workflow-pro-backend/internal/shared/contextutil"
	usererrors "github.com/mohammed4122002/workflow-pro-backend/internal/user/errors"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context, decision access.Decision, query ListUsersQuery) ([]UserResponse, int64, error)
	GetByID(ctx context.Context, decision access.Decision, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	SetActive(ctx context.Context, callerID, id string, isActive bool) (UserResponse, error)

	ResolveIdentity(ctx context.Context, userID string) (access.Identity, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	l.Info("creating user", zap.String("email", req.Email))

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashed),
		Role:       access.Role(req.Role),
		Department: req.Department,
		IsActive:   true,
	}

	// The unique index catches the race the pre-check cannot.
	if err := s.repo.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user created", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context, decision access.Decision, query ListUsersQuery) ([]UserResponse, int64, error) {
	filter := ListFilter{
		Q:          query.Q,
		Role:       query.Role,
		Department: query.Department,
		Page:       query.Page,
		Limit:      query.PageSize,
	}
	if decision.Scoped() {
		filter.OwnerID = decision.OwnerID
	}

	users, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}

	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, decision access.Decision, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if !decision.PermitsOwner(u.ID.String()) {
		return UserResponse{}, usererrors.ErrNotOwner
	}

	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Email != nil && *req.Email != u.Email {
		if _, err := s.repo.FindByEmail(ctx, *req.Email); err == nil {
			return UserResponse{}, usererrors.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, err
		}
		u.Email = *req.Email
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = access.Role(*req.Role)
	}
	if req.Department != nil {
		u.Department = req.Department
	}

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, callerID, id string, isActive bool) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	if !isActive && callerID == id {
		return UserResponse{}, usererrors.ErrSelfDeactivate
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.IsActive = isActive

	if err := s.repo.Update(ctx, u); err != nil {
		l.Error("failed to update user status", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	l.Info("user status changed",
		zap.String("user_id", id),
		zap.Bool("is_active", isActive),
	)
	return mapToResponse(*u), nil
}

// ResolveIdentity backs the auth middleware. The active flag comes from
// the row, never from token claims.
func (s *service) ResolveIdentity(ctx context.Context, userID string) (access.Identity, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return access.Identity{}, mapRepositoryError(err)
	}
	return u.Identity(), nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Department: u.Department,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
