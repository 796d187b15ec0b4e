package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bizinteltz/api/middleware"
	"bizinteltz/api/models"
	"bizinteltz/api/store"
	"bizinteltz/api/utils"
)

// UserLookup is satisfied by both the Postgres and the in-memory user stores.
type UserLookup interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type AuthHandlers struct {
	Users        UserLookup
	Tokens       *utils.TokenIssuer
	Revoked      *utils.RevocationList
	SecureCookie bool
	log          *zap.Logger
}

func NewAuthHandlers(users UserLookup, tokens *utils.TokenIssuer, revoked *utils.RevocationList, secureCookie bool, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		Users:        users,
		Tokens:       tokens,
		Revoked:      revoked,
		SecureCookie: secureCookie,
		log:          log.Named("auth"),
	}
}

// Login handles POST /token with JSON or form credentials.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), backendTimeout)
	defer cancel()

	user, err := h.Users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			h.log.Error("user lookup failed", zap.String("username", req.Username), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to check credentials")
			return
		}
		h.log.Info("login failed: unknown user", zap.String("username", req.Username))
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		h.log.Info("login failed: password mismatch", zap.String("username", req.Username))
		respondError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	tokenString, claims, err := h.Tokens.GenerateJWT(user)
	if err != nil {
		h.log.Error("failed to generate JWT", zap.Int("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	maxAge := int(time.Until(claims.ExpiresAt.Time) / time.Second)
	c.SetCookie(middleware.TokenCookie, tokenString, maxAge, "/", "", h.SecureCookie, true)

	h.log.Info("user logged in", zap.String("username", user.Username), zap.String("token_id", claims.ID))
	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: tokenString, TokenType: "bearer"})
}

// Logout revokes the presented token, if any is valid, and clears the cookie.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if tokenString := middleware.ExtractToken(c); tokenString != "" {
		if claims, err := h.Tokens.ValidateJWT(tokenString); err == nil {
			h.Revoked.Revoke(claims.ID, claims.ExpiresAt.Time)
			h.log.Info("token revoked", zap.String("username", claims.Username), zap.String("token_id", claims.ID))
		}
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"status": "Logged out"})
}
