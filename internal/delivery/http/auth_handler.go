package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"sahamwatch/internal/delivery/http/dto"
	"sahamwatch/internal/domain"
	"sahamwatch/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	jwtSecret []byte,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		log:         log.With().Str("component", "auth_handler").Logger(),
	}
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		return InternalServerErrorResponse(c, "Failed to create user")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return ConflictResponse(c, "Username already exists")
		}
		h.log.Error().Err(err).Msg("Failed to create user")
		return InternalServerErrorResponse(c, "Failed to create user")
	}

	h.log.Info().Str("username", user.Username).Msg("User registered")

	return CreatedResponse(c, dto.UserOutput{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		// Same response for unknown user and wrong password
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, session, err := middleware.GenerateToken(h.jwtSecret, user.ID, h.tokenTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate token")
		return InternalServerErrorResponse(c, "Failed to generate token")
	}

	if err := h.sessionRepo.Save(ctx, session); err != nil {
		h.log.Error().Err(err).Msg("Failed to save session")
		return InternalServerErrorResponse(c, "Failed to create session")
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User: &dto.UserOutput{
			ID:        user.ID.String(),
			Username:  user.Username,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
	})
}

// Logout revokes the current session and clears the cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenID, err := middleware.GetTokenID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.sessionRepo.Revoke(ctx, tokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.log.Error().Err(err).Msg("Failed to revoke session")
		return InternalServerErrorResponse(c, "Failed to log out")
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)

	return SuccessMessageResponse(c, "Logged out", nil)
}

// Me returns the authenticated account
// GET /api/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return UnauthorizedResponse(c, "Account no longer exists")
		}
		h.log.Error().Err(err).Msg("Failed to get user")
		return InternalServerErrorResponse(c, "Failed to get user details")
	}

	return SuccessResponse(c, dto.UserOutput{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	})
}
