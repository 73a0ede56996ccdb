package availability

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"heritage/infras/otel"
	"heritage/internal/domains/booking/service"
	"heritage/shared/constant"
	"heritage/shared/failure"
	"heritage/transport/http/response"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRangeAvailability)
		routerGroup.Get("/calendar", handler.GetCalendar)
	})
}

// GetRangeAvailability reports remaining units per room category over a stay.
// @Summary Check availability for a stay
// @Description Remaining units per room category over [check_in, check_out), collapsed to the worst day.
// @Tags Availability
// @Accept json
// @Produce json
// @Param check_in query string true "Check-in date, 02-Jan-2006"
// @Param check_out query string true "Check-out date, 02-Jan-2006"
// @Success 200 {object} dto.AvailabilityResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetRangeAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRangeAvailability")
	defer scope.End()

	checkIn := r.URL.Query().Get(constant.RequestParamCheckIn)
	checkOut := r.URL.Query().Get(constant.RequestParamCheckOut)

	if checkIn == constant.Empty || checkOut == constant.Empty {
		response.WithError(w, failure.BadRequestFromString("check_in and check_out are required"))

		return
	}

	availability, err := handler.service.Availability(ctx, checkIn, checkOut)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(w, http.StatusOK, availability)
}

// GetCalendar returns the per-day availability grid for one month.
// @Summary Monthly availability calendar
// @Description Per-day remaining units and classes for every room category over one month.
// @Tags Availability
// @Accept json
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month, 1-12"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/calendar [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	year, err := strconv.Atoi(r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("year must be a number"))

		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get(constant.RequestParamMonth))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("month must be a number"))

		return
	}

	calendar, err := handler.service.CalendarMonth(ctx, year, month)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar built successfully")

	response.WithJSON(w, http.StatusOK, calendar)
}
