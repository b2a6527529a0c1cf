package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth endpoints. The email endpoint carries
// a per-client rate limit to protect the outbound mail channel.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, codeLimit gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/email", codeLimit, h.RequestCode)
		auth.POST("/token", h.ObtainToken)
		auth.POST("/token/refresh", h.RefreshToken)
	}
}

// RequestCode issues a confirmation code to a registered email
// POST /api/v1/auth/email
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"email": "email is required"})
		return
	}

	message, err := h.authService.RequestConfirmationCode(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.EmailResponse{Email: message})
}

// ObtainToken exchanges an email + confirmation code for a token pair
// POST /api/v1/auth/token
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authService.ExchangeCodeForSession(c.Request.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Access: pair.AccessToken, Refresh: pair.RefreshToken})
}

// RefreshToken mints a new access token from a refresh token
// POST /api/v1/auth/token/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := h.authService.RefreshAccessToken(c.Request.Context(), req.Refresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{Access: access})
}
