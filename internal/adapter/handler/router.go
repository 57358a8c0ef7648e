package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

type RouterConfig struct {
	Tickets      *services.TicketService
	Catalog      *services.CatalogService
	Auth         *services.AuthService
	Policy       services.AuthorizationPolicy
	SecureCookie bool
	Logger       *slog.Logger
}

// NewRouter wires every route of the API.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	events := NewEventHandler(cfg.Catalog, logger)
	tickets := NewTicketHandler(cfg.Tickets, cfg.Policy, logger)
	auth := NewAuthHandler(cfg.Auth, cfg.Policy, cfg.SecureCookie, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(AccessLog(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(Authenticate(cfg.Auth))

	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/events", func(r chi.Router) {
		r.Get("/", events.ListEvents)
		r.Get("/{id}", events.GetEvent)
		r.Get("/{id}/ticket-types", events.ListTicketTypes)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", auth.Login)
		r.Get("/oauth/{provider}", auth.OAuthStart)
		r.Get("/callback/{provider}", auth.OAuthCallback)
		r.Post("/logout", auth.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireUser)

		r.Get("/me", auth.Me)
		r.Get("/me/tickets", tickets.MyTickets)
		r.Get("/tickets/{id}", tickets.GetTicket)
		r.Get("/tickets/{id}/qr.png", tickets.TicketQR)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAdmin(cfg.Policy))

		r.Post("/events", events.CreateEvent)
		r.Put("/events/{id}", events.UpdateEvent)
		r.Post("/events/{id}/ticket-types", events.CreateTicketType)
		r.Get("/events/{id}/tickets", tickets.ListEventTickets)
		r.Get("/events/{id}/stats", tickets.EventStats)

		r.Post("/tickets/batch", tickets.CreateBatch)
		r.Post("/tickets/{id}/assign", tickets.Assign)
		r.Post("/tickets/{id}/sell", tickets.Sell)
		r.Post("/tickets/{id}/sell-local", tickets.SellLocal)
		r.Put("/tickets/{id}/status", tickets.UpdateStatus)
		r.Post("/tickets/{id}/validate", tickets.Validate)
		r.Post("/scan", tickets.Scan)

		r.Get("/users", events.ListUsers)
	})

	return r
}
