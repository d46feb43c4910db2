package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sbbtt/next-mall/internal/errors"
	"github.com/sbbtt/next-mall/internal/models"
	"github.com/sbbtt/next-mall/internal/utils/response"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

// AuthMiddleware validates bearer tokens minted by the hosted auth provider.
// There is no local login: anything without a valid token is anonymous.
type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// Authenticate rejects requests without a valid bearer token and attaches the
// claims and a user-scoped logger to the context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		claims, appErr := m.parseBearer(r)
		if appErr != nil {
			logger.Warn("Authentication failed", slog.String("reason", appErr.Message))
			response.Error(w, appErr)

			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)

		requestScopedLogger := logger.With(slog.String("userId", claims.UserID.String()))
		ctx = context.WithValue(ctx, loggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *AuthMiddleware) parseBearer(r *http.Request) (*models.Claims, *errors.AppError) {

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errors.UnauthorizedError("Authentication required")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errors.UnauthorizedError("Invalid authorization format")
	}

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenParts[1], claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}

		return m.jwtKey, nil
	})
	if err != nil {
		return nil, errors.UnauthorizedError("Invalid or expired token")
	}

	if !token.Valid {
		return nil, errors.UnauthorizedError("Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, errors.UnauthorizedError("Token expired")
	}

	return claims, nil
}

// ClaimsFromContext returns the authenticated user, if any.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok
}
