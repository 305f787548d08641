package wire

import (
	"pitch-booking/internal/adaptor"
	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/middleware"
	"pitch-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== OPTIONAL AUTH ====================
	// Booking is open to anonymous callers; they book under the shared
	// guest identity. A valid session books under the caller instead.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(repo.Session, repo.User, log))

		// POST /api/reservations - Book a slot
		r.Post("/api/reservations", reservationHandler.CreateReservation)
	})

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))

		// GET /api/user/reservations - Own reservation history
		r.Get("/api/user/reservations", reservationHandler.GetUserReservations)

		// PATCH /api/reservations/{id}/status - Confirm / cancel / complete
		r.Patch("/api/reservations/{id}/status", reservationHandler.UpdateStatus)

		// PATCH /api/reservations/{id}/schedule - Move to a new date or time
		r.Patch("/api/reservations/{id}/schedule", reservationHandler.Reschedule)

		// PUT /api/reservations/{id} - Edit details, optionally moving the slot
		r.Put("/api/reservations/{id}", reservationHandler.UpdateReservation)

		// DELETE /api/reservations/{id} - Cancel (idempotent)
		r.Delete("/api/reservations/{id}", reservationHandler.CancelReservation)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, repo.User, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/reservations/{id} - View any reservation
		r.Get("/{id}", reservationHandler.GetReservation)
	})
}
