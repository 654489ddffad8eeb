// Package middleware provides the request gate, session decoding, logging
// and rate limiting middleware for the application.
package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session credential constants. The credential is a signed JWT carried in
// the session cookie or an Authorization bearer header.
const (
	SessionCookie = "session"
	TokenIssuer   = "storefront-api"
	TokenAudience = "storefront-client"
	TokenTTL      = 7 * 24 * time.Hour
)

// Fiber locals keys populated by the gate after a successful decode.
const (
	LocalUserID = "userID"
	LocalRole   = "role"
)

type contextKey string

// Context keys for values propagated into the request context.
const (
	RequestIDKey contextKey = "request_id"
	UserIDKey    contextKey = "user_id"
	RoleKey      contextKey = "role"
)

// SessionClaims is the decoded, immutable identity of a request. The gate
// decodes the credential once per request; downstream handlers read this
// instead of re-parsing the token.
type SessionClaims struct {
	UserID   uint
	Username string
	Role     string
}

// SignSession issues a session credential for the given user.
func SignSession(secret string, userID uint, username, role string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"role":     role,
		"iss":      TokenIssuer,
		"aud":      TokenAudience,
		"exp":      now.Add(TokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSession decodes and validates a session credential. Any failure
// (malformed token, bad signature, expiry, wrong issuer or audience,
// missing or unknown role) returns an error; callers treat that
// identically to an absent credential.
func ParseSession(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != TokenIssuer {
		return nil, fmt.Errorf("invalid token issuer")
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != TokenAudience {
		return nil, fmt.Errorf("invalid token audience")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok || !models.ValidRole(role) {
		return nil, fmt.Errorf("invalid role claim")
	}

	username, _ := claims["username"].(string)

	return &SessionClaims{
		UserID:   uint(userID),
		Username: username,
		Role:     role,
	}, nil
}

// CredentialFromRequest extracts the raw session credential from the
// session cookie, falling back to an Authorization bearer header.
// Returns "" when neither is present.
func CredentialFromRequest(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
