package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"healthcare-portal/internal/domain/entity"
	"healthcare-portal/pkg/apperror"
	"healthcare-portal/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserKey    contextKey = "user"
	TokenIDKey contextKey = "token_id"
)

const notAuthorized = "Not authorized"

// Authenticator resolves a bearer token to the account it was issued for.
// Unauthenticated outcomes carry apperror.ErrUnauthenticated; anything else is an infrastructure failure.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, string, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logrus.Logger
}

func NewAuthMiddleware(authenticator Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w, notAuthorized)
			return
		}

		user, tokenID, err := m.authenticator.Authenticate(r.Context(), tokenString)
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthenticated) {
				response.Unauthorized(w, notAuthorized)
				return
			}
			m.log.Errorf("Failed to authenticate request: %+v", err)
			response.InternalServerError(w, "")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user, tokenID)))
	})
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

// ContextWithUser attaches an authenticated account and its token id to ctx.
func ContextWithUser(ctx context.Context, user *entity.User, tokenID string) context.Context {
	ctx = context.WithValue(ctx, UserKey, user)
	return context.WithValue(ctx, TokenIDKey, tokenID)
}

// GetUserFromContext extracts the authenticated account from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
