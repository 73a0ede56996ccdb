package gate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"heritage/infras/jwt"
	"heritage/infras/otel"
	"heritage/internal/domains/gate/model/dto"
	"heritage/internal/domains/gate/service"
	"heritage/shared/constant"
	"heritage/shared/validator"
	"heritage/transport/http/response"
)

type Handler struct {
	service service.Gate
	otel    otel.Otel
}

func New(service service.Gate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gate", func(routerGroup chi.Router) {
		routerGroup.Post("/unlock", handler.Unlock)
		routerGroup.Post("/lock", handler.Lock)
	})
}

// Unlock exchanges the shared edit password for a session token.
// @Summary Unlock edit access
// @Description Exchange the shared booking password for an edit-session token.
// @Tags Gate
// @Accept json
// @Produce json
// @Param request body dto.UnlockRequest true "Unlock Request"
// @Success 200 {object} dto.UnlockResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate/unlock [post]
func (handler *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Unlock")
	defer scope.End()

	req := dto.UnlockRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	session, err := handler.service.Unlock(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Edit access unlocked")

	response.WithJSON(w, http.StatusOK, session)
}

// Lock relocks edit access by revoking the presented session token.
// @Summary Lock edit access
// @Description Revoke the presented session token for the remainder of its lifetime.
// @Tags Gate
// @Accept json
// @Produce json
// @Success 200 {object} response.Message
// @Router /v1/gate/lock [post]
// @Security BearerAuth
func (handler *Handler) Lock(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Lock")
	defer scope.End()

	token := constant.Empty
	if header := r.Header.Get(constant.RequestHeaderAuthorization); header != constant.Empty {
		if extracted, err := jwt.ExtractTokenFromHeader(header); err == nil {
			token = extracted
		}
	}

	message := handler.service.Lock(ctx, token)

	scope.AddEvent("Edit access locked")

	response.WithMessage(w, http.StatusOK, message)
}
