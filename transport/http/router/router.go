package router

import (
	"github.com/go-chi/chi/v5"

	"inn/internal/handlers/auth"
	"inn/internal/handlers/booking"
	"inn/internal/handlers/customer"
	"inn/internal/handlers/document"
	"inn/internal/handlers/health"
	"inn/internal/handlers/room"
	"inn/transport/http/middleware"
)

type DomainHandlers struct {
	Auth     auth.Handler
	Room     room.Handler
	Customer customer.Handler
	Booking  booking.Handler
	Document document.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthMiddleware middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	// Health endpoints stay outside the authenticated group.
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.Auth)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Document.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authMiddleware middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthMiddleware: authMiddleware,
	}
}
