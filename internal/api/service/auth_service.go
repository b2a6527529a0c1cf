package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/apperr"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
	"reviewhub/internal/permission"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	confirmationSubject = "Obtaining confirmation code"

	// Message returned in place of the email when the address is malformed.
	// Syntactic rejection is an outcome, not an error, and has no side
	// effects.
	msgValidEmailRequired = "valid email is required"
)

// Claims is the access-token payload.
type Claims struct {
	UserID   string          `json:"user_id"`
	Username string          `json:"username"`
	Role     permission.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenPair is the session credential pair minted on code exchange.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// AuthService is the passwordless auth gate: it issues one-time
// confirmation codes by email and exchanges a verified (email, code) pair
// for a session token pair.
type AuthService interface {
	RequestConfirmationCode(ctx context.Context, email string) (string, error)
	ExchangeCodeForSession(ctx context.Context, email, code string) (*TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	mail             mailer.Mailer
	codes            *CodeGenerator
	validate         *validator.Validate
	logger           zerolog.Logger
	jwtSecret        string
	accessTokenTTL   time.Duration
	refreshTokenTTL  time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	mail mailer.Mailer,
	cfg *config.Config,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		mail:             mail,
		codes:            NewCodeGenerator(cfg.JWTSecret),
		validate:         validator.New(),
		logger:           logger,
		jwtSecret:        cfg.JWTSecret,
		accessTokenTTL:   cfg.AccessTokenTTL,
		refreshTokenTTL:  cfg.RefreshTokenTTL,
	}
}

// RequestConfirmationCode issues a fresh single-use code for a registered
// email, persists it on the user (overwriting any live code, so at most
// one code is live per user), and dispatches it over the mail channel. The
// returned string echoes the email on success or carries the structured
// rejection for malformed input.
func (s *authService) RequestConfirmationCode(ctx context.Context, email string) (string, error) {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return msgValidEmailRequired, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
		}
		return "", err
	}

	code, err := s.codes.Make(user)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetConfirmationCode(ctx, user.ID, code); err != nil {
		return "", err
	}

	body := fmt.Sprintf("Your confirmation code is %s.", code)
	if err := s.mail.Send(ctx, email, confirmationSubject, body); err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrDeliveryFailure, err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("confirmation code issued")
	return email, nil
}

// ExchangeCodeForSession trades a verified (email, code) pair for a token
// pair. A wrong email and a wrong code both come back as NotFound so the
// caller cannot probe which addresses are registered. The code stays live
// until a new one is requested.
func (s *authService) ExchangeCodeForSession(ctx context.Context, email, code string) (*TokenPair, error) {
	user, err := s.userRepo.FindByEmailAndCode(ctx, email, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user: %w", apperr.ErrNotFound)
		}
		return nil, err
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("session issued")
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	username := ""
	if user.Username != nil {
		username = *user.Username
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}

	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return "", err
	}

	return refreshToken.Token, nil
}

func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (string, error) {
	refreshToken, err := s.refreshTokenRepo.FindByToken(ctx, refreshTokenString)
	if err != nil {
		return "", ErrInvalidToken
	}

	if time.Now().After(refreshToken.ExpiresAt) {
		if err := s.refreshTokenRepo.Delete(ctx, refreshToken.ID); err != nil {
			s.logger.Warn().Err(err).Msg("expired refresh token cleanup failed")
		}
		return "", ErrExpiredToken
	}

	user, err := s.userRepo.FindByID(ctx, refreshToken.UserID)
	if err != nil {
		return "", ErrInvalidToken
	}

	return s.generateAccessToken(user)
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
