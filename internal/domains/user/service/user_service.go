package service

import (
	"context"
	"fmt"
	"time"

	"blog-backend/internal/domains/user"
	"blog-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	accessTTL  time.Duration
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, accessMinutes int) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		accessTTL:  time.Duration(accessMinutes) * time.Minute,
	}
}

// Register creates a staff account. Admins are promoted via UpdateRole.
func (s *userService) Register(ctx context.Context, req *user.RegisterRequest) (*user.UserResponse, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         user.RoleStaff,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("email", u.Email).Msg("User registered")

	return u.ToResponse(), nil
}

func (s *userService) Login(ctx context.Context, req *user.LoginRequest) (*user.LoginResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(s.accessTTL),
		User:         u.ToResponse(),
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.ToResponse(), nil
}

func (s *userService) List(ctx context.Context, limit, offset int) ([]user.UserResponse, int, error) {
	users, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *users[i].ToResponse())
	}

	return responses, total, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	if role != user.RoleAdmin && role != user.RoleStaff {
		return user.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}
