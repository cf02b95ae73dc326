package router

import (
	"github.com/go-chi/chi/v5"

	"hoodly/internal/handlers/activity"
	"hoodly/internal/handlers/booking"
	"hoodly/internal/handlers/business"
	"hoodly/internal/handlers/inquiry"
	"hoodly/internal/handlers/review"
	"hoodly/transport/http/middleware"
)

type DomainHandlers struct {
	Business business.Handler
	Booking  booking.Handler
	Review   review.Handler
	Inquiry  inquiry.Handler
	Activity activity.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Business.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
		r.DomainHandlers.Activity.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
