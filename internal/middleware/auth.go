package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sahamwatch/internal/domain"
)

// JWTClaims represents the JWT token claims. The RegisteredClaims ID (jti)
// keys the session record used for revocation.
type JWTClaims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for a user and returns it together
// with the session it should be recorded under.
func GenerateToken(secret []byte, userID uuid.UUID, ttl time.Duration) (string, *domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	claims := &JWTClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, session, nil
}

// ParseToken validates the signature and expiry and returns the claims
func ParseToken(secret []byte, tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// Auth validates the bearer token (header or cookie), checks that its
// session is still live, and sets the user context.
func Auth(secret []byte, sessions domain.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				cookie, err := c.Cookie("token")
				if err != nil {
					return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication token")
				}
				authHeader = "Bearer " + cookie.Value
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			session, err := sessions.Get(c.Request().Context(), claims.ID)
			if err != nil || !session.IsActive(time.Now()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Session revoked or expired")
			}

			c.Set("user_id", claims.UserID)
			c.Set("token_id", claims.ID)

			return next(c)
		}
	}
}

// GetUserID extracts the authenticated user ID from echo context
func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("user_id not found in context")
	}
	return userID, nil
}

// GetTokenID extracts the session token ID from echo context
func GetTokenID(c echo.Context) (string, error) {
	tokenID, ok := c.Get("token_id").(string)
	if !ok {
		return "", fmt.Errorf("token_id not found in context")
	}
	return tokenID, nil
}
