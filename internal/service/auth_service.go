package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Vileyy/admin-halora-app/internal/logger"
	"github.com/Vileyy/admin-halora-app/internal/model"
	"github.com/Vileyy/admin-halora-app/internal/repository"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AdminResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	CreatedAt   string `json:"created_at"`
}

type AuthConfig struct {
	Secret          []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, adminID string) (*AdminResponse, error)
	// EnsureAdmin creates the bootstrap account when no admin exists yet.
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	repo      repository.AdminRepository
	txManager repository.TransactionManager
	cfg       AuthConfig
	now       func() time.Time
}

func NewAuthService(repo repository.AdminRepository, txManager repository.TransactionManager, cfg AuthConfig) AuthService {
	return &authService{repo: repo, txManager: txManager, cfg: cfg, now: time.Now}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	admin, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	var tokens *TokenResponse
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		tokens, err = s.issueTokens(txCtx, admin)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("auth").WithField("admin_id", admin.ID.String()).Info("admin logged in")
	return tokens, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed in the same transaction that issues its replacement.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var tokens *TokenResponse
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.repo.GetRefreshToken(txCtx, refreshToken)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}
		if err := s.repo.DeleteRefreshToken(txCtx, refreshToken); err != nil {
			return err
		}
		if s.now().After(stored.ExpiresAt) {
			return ErrInvalidCredentials
		}

		admin, err := s.repo.GetByID(txCtx, stored.AdminID.String())
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		tokens, err = s.issueTokens(txCtx, admin)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.repo.DeleteRefreshToken(ctx, refreshToken)
}

func (s *authService) Me(ctx context.Context, adminID string) (*AdminResponse, error) {
	admin, err := s.repo.GetByID(ctx, adminID)
	if err != nil {
		return nil, notFound(err, "admin")
	}
	return &AdminResponse{
		ID:          admin.ID.String(),
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
		Role:        admin.Role,
		CreatedAt:   admin.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.AdminAccount{
		Email:       email,
		DisplayName: "Administrator",
		Password:    string(hashed),
		Role:        string(model.UserRoleAdmin),
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.WithModule("auth").WithField("email", email).Info("bootstrap admin account created")
	return nil
}

func (s *authService) issueTokens(ctx context.Context, admin *model.AdminAccount) (*TokenResponse, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  admin.ID.String(),
		"role": admin.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenTTL).Unix(),
	})

	accessToken, err := token.SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refresh := &model.RefreshToken{
		AdminID:   admin.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}
