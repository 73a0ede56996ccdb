package middleware

import (
	"context"
	"errors"
	"net/http"

	"heritage/infras/jwt"
	"heritage/infras/otel"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	"heritage/shared/failure"
	"heritage/transport/http/response"
)

// Gate guards mutating endpoints behind the shared-password unlock. Reads
// never pass through it.
type Gate interface {
	RequireUnlocked(next http.Handler) http.Handler
}

type gateImpl struct {
	jwtService jwt.JWT
	cache      cache.RedisCache
	otel       otel.Otel
}

func NewGateMiddleware(jwtService jwt.JWT, cache cache.RedisCache, otel otel.Otel) Gate {
	return &gateImpl{
		jwtService: jwtService,
		cache:      cache,
		otel:       otel,
	}
}

// RequireUnlocked admits requests carrying a valid edit-session token.
func (m *gateImpl) RequireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "gate.middleware")
		defer scope.End()

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			err := failure.ErrEditLocked
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("invalid authorization header format")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		claims, err := m.jwtService.ValidateSessionToken(tokenString)
		if err != nil {
			message := "token validation failed"

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "edit session has expired, unlock again"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "invalid edit-session token"
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		if m.revoked(ctx, claims.SessionID) {
			err := failure.Unauthorized("edit session has been locked, unlock again")
			response.WithError(writer, err)

			scope.TraceError(err)

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeySessionID, claims.SessionID)
		ctx = context.WithValue(ctx, constant.ContextKeyUnlocked, true)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// revoked reports whether the session was relocked before its token expired.
// A cache miss or error means not revoked; the denylist only ever shortens a
// session.
func (m *gateImpl) revoked(ctx context.Context, sessionID string) bool {
	var stamp string
	err := m.cache.Get(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedSession, sessionID), &stamp)

	return err == nil
}
