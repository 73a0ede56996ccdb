package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"heritage/config"
	"heritage/infras/jwt"
	"heritage/infras/otel"
	"heritage/internal/domains/gate/model/dto"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	"heritage/shared/failure"
	"heritage/shared/password"
	"heritage/shared/timezone"
)

// Gate is the single shared-password edit gate. Reads are open to everyone;
// mutations require a session token minted here.
type Gate interface {
	Unlock(ctx context.Context, req dto.UnlockRequest) (dto.UnlockResponse, error)
	Lock(ctx context.Context, token string) string
}

type serviceImpl struct {
	cfg   *config.Config
	jwt   jwt.JWT
	cache cache.RedisCache
	otel  otel.Otel
}

func New(cfg *config.Config, jwt jwt.JWT, cache cache.RedisCache, otel otel.Otel) Gate {
	return &serviceImpl{
		cfg:   cfg,
		jwt:   jwt,
		cache: cache,
		otel:  otel,
	}
}

// Unlock exchanges the shared edit password for a session token. A wrong
// password is rejected without detail.
func (s *serviceImpl) Unlock(ctx context.Context, req dto.UnlockRequest) (res dto.UnlockResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unlock")
	defer scope.End()

	if err = password.Matches(s.cfg.Gate.Password, req.Password); err != nil {
		log.Warn().Msg("edit unlock rejected")

		return res, failure.Unauthorized("wrong password") //nolint:wrapcheck
	}

	token, err := s.jwt.GenerateSessionToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to mint session token")

		return res, failure.InternalError(err) //nolint:wrapcheck
	}

	res.Token = token.Token
	res.TokenType = token.TokenType
	res.ExpiresIn = int(token.ExpiresIn)

	return res, nil
}

// Lock revokes the presented session token by denylisting its ID for the
// remainder of its lifetime. A request without a token, or with one that no
// longer validates, still gets the acknowledgement: there is nothing left to
// revoke.
func (s *serviceImpl) Lock(ctx context.Context, token string) string {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Lock")
	defer scope.End()

	if token == constant.Empty {
		return "edit access locked"
	}

	claims, err := s.jwt.ValidateSessionToken(token)
	if err != nil {
		return "edit access locked"
	}

	ttl := s.cfg.Gate.SessionExpireMin * 60
	if claims.ExpiresAt != nil {
		if remaining := int(time.Until(claims.ExpiresAt.Time).Seconds()); remaining > 0 {
			ttl = remaining
		}
	}

	key := shared.BuildCacheKey(constant.CacheKeyRevokedSession, claims.SessionID)
	if err := s.cache.Save(ctx, key, timezone.Now().Format(constant.StampFormat), ttl); err != nil {
		log.Error().Err(err).Msg("failed to denylist session token")
	}

	return "edit access locked"
}
