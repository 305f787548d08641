package usecase

import (
	"pitch-booking/internal/data/repository"
	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Venue       VenueService
	Reservation ReservationService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	identity := NewIdentityResolver(repo.User, config.Booking.GuestUsername, log)
	venue := NewVenueService(repo, config, log)

	return &Service{
		Auth:        NewAuthService(repo, config, log),
		User:        NewUserService(repo.User, log),
		Venue:       venue,
		Reservation: NewReservationService(repo, venue, identity, log),
	}
}
