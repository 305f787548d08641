package wire

import (
	"pitch-booking/internal/adaptor"
	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/middleware"
	"pitch-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues - List venues (paginated, optional name filter)
	r.Get("/api/venues", venueHandler.GetVenues)

	// GET /api/venues/{id} - Venue details by id
	r.Get("/api/venues/{id}", venueHandler.GetVenueByID)

	// GET /api/venues/{id}/availability - Hourly slot grid for a field and date
	r.Get("/api/venues/{id}/availability", venueHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/venues", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// POST /api/admin/venues - Create venue
		r.Post("/", venueHandler.CreateVenue)

		// PUT /api/admin/venues/{id} - Update venue
		r.Put("/{id}", venueHandler.UpdateVenue)

		// DELETE /api/admin/venues/{id} - Soft-delete venue
		r.Delete("/{id}", venueHandler.DeleteVenue)
	})
}
