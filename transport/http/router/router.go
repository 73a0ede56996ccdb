package router

import (
	"heritage/internal/handlers/availability"
	"heritage/internal/handlers/booking"
	"heritage/internal/handlers/gate"
	"heritage/internal/handlers/refdata"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Availability availability.Handler
	Booking      booking.Handler
	Refdata      refdata.Handler
	Gate         gate.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Refdata.Router(routerGroup)
		r.DomainHandlers.Gate.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
