package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/apperr"
	"reviewhub/internal/config"
	"reviewhub/internal/permission"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret-at-least-32-characters-long",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

func newTestAuthService(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository, mail *MockMailer) AuthService {
	return NewAuthService(userRepo, tokenRepo, mail, testAuthConfig(), zerolog.Nop())
}

func TestRequestConfirmationCode_MalformedEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), mail)

	message, err := svc.RequestConfirmationCode(context.Background(), "not-an-email")

	// Syntactic rejection is an outcome, not an error, and must have no
	// side effects.
	assert.NoError(t, err)
	assert.Equal(t, "valid email is required", message)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestConfirmationCode_UnregisteredEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), mail)

	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RequestConfirmationCode(context.Background(), "ghost@example.com")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
	mail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestConfirmationCode_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), mail)

	user := &models.User{ID: "user-1", Email: "reader@example.com", Role: permission.RoleUser}
	userRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(user, nil)

	var issued string
	userRepo.On("SetConfirmationCode", mock.Anything, "user-1", mock.AnythingOfType("string")).
		Return(nil).Run(func(args mock.Arguments) {
		issued = args.String(2)
	})
	mail.On("Send", mock.Anything, "reader@example.com", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	message, err := svc.RequestConfirmationCode(context.Background(), "reader@example.com")

	assert.NoError(t, err)
	assert.Equal(t, "reader@example.com", message)
	assert.NotEmpty(t, issued)
	// The code must be persisted before dispatch; the mailed body carries it.
	sent := mail.Calls[0].Arguments.String(3)
	assert.Contains(t, sent, issued)
	userRepo.AssertExpectations(t)
}

func TestRequestConfirmationCode_NewCodeOverwritesOld(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), mail)

	user := &models.User{ID: "user-1", Email: "reader@example.com", Role: permission.RoleUser}
	userRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(user, nil)

	var codes []string
	userRepo.On("SetConfirmationCode", mock.Anything, "user-1", mock.AnythingOfType("string")).
		Return(nil).Run(func(args mock.Arguments) {
		codes = append(codes, args.String(2))
	})
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.RequestConfirmationCode(context.Background(), "reader@example.com")
	assert.NoError(t, err)
	_, err = svc.RequestConfirmationCode(context.Background(), "reader@example.com")
	assert.NoError(t, err)

	// Each request persists a fresh code over the previous one, so at most
	// one code is ever live per user.
	assert.Len(t, codes, 2)
	assert.NotEqual(t, codes[0], codes[1])
}

func TestRequestConfirmationCode_DeliveryFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	mail := new(MockMailer)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), mail)

	user := &models.User{ID: "user-1", Email: "reader@example.com", Role: permission.RoleUser}
	userRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(user, nil)
	userRepo.On("SetConfirmationCode", mock.Anything, "user-1", mock.AnythingOfType("string")).Return(nil)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	_, err := svc.RequestConfirmationCode(context.Background(), "reader@example.com")

	assert.ErrorIs(t, err, apperr.ErrDeliveryFailure)
}

func TestExchangeCodeForSession_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo, new(MockMailer))

	username := "reader"
	user := &models.User{ID: "user-1", Email: "reader@example.com", Username: &username, Role: permission.RoleUser}
	userRepo.On("FindByEmailAndCode", mock.Anything, "reader@example.com", "code-123").Return(user, nil)
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	pair, err := svc.ExchangeCodeForSession(context.Background(), "reader@example.com", "code-123")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, permission.RoleUser, claims.Role)
}

func TestExchangeCodeForSession_WrongPair(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockMailer))

	// A wrong email and a wrong code both come back as NotFound so callers
	// cannot probe which addresses are registered.
	userRepo.On("FindByEmailAndCode", mock.Anything, "reader@example.com", "wrong").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ExchangeCodeForSession(context.Background(), "reader@example.com", "wrong")

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRefreshAccessToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, tokenRepo, new(MockMailer))

	tokenRepo.On("FindByToken", mock.Anything, "refresh-1").Return(&models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-1",
		Token:     "refresh-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("FindByID", mock.Anything, "user-1").
		Return(&models.User{ID: "user-1", Role: permission.RoleUser}, nil)

	access, err := svc.RefreshAccessToken(context.Background(), "refresh-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
}

func TestRefreshAccessToken_Expired(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), tokenRepo, new(MockMailer))

	tokenRepo.On("FindByToken", mock.Anything, "stale").Return(&models.RefreshToken{
		ID:        "token-id",
		UserID:    "user-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	tokenRepo.On("Delete", mock.Anything, "token-id").Return(nil)

	_, err := svc.RefreshAccessToken(context.Background(), "stale")

	assert.ErrorIs(t, err, ErrExpiredToken)
	tokenRepo.AssertExpectations(t)
}

func TestRefreshAccessToken_Unknown(t *testing.T) {
	tokenRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), tokenRepo, new(MockMailer))

	tokenRepo.On("FindByToken", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.RefreshAccessToken(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(new(MockUserRepository), new(MockRefreshTokenRepository), new(MockMailer))

	_, err := svc.ValidateToken("not.a.jwt")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
