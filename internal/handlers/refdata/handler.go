package refdata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"heritage/infras/otel"
	"heritage/internal/domains/refdata/service"
	"heritage/shared/constant"
	"heritage/transport/http/response"
)

type Handler struct {
	service service.Refdata
	otel    otel.Otel
}

func New(service service.Refdata, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/refdata", handler.GetLists)
}

// GetLists returns the dropdown reference lists.
// @Summary Get reference lists
// @Description Agents, companies, meal plans, statuses, and room types for the booking forms.
// @Tags Refdata
// @Accept json
// @Produce json
// @Success 200 {object} model.Lists
// @Failure 500 {object} response.Error
// @Router /v1/refdata [get]
func (handler *Handler) GetLists(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLists")
	defer scope.End()

	lists := handler.service.Lists(ctx)

	scope.AddEvent("Reference lists retrieved successfully")

	response.WithJSON(w, http.StatusOK, lists)
}
