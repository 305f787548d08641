package adaptor

import (
	"pitch-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Venue       *VenueHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Venue:       NewVenueHandler(service.Venue, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}
