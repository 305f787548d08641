package usecase

import (
	"context"
	"fmt"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// CreateReservation books a slot. callerID is nil for anonymous
	// requests, which resolve to the shared guest identity.
	CreateReservation(ctx context.Context, callerID *uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)

	UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.UpdateStatusRequest) (*response.ReservationResponse, error)
	Reschedule(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.RescheduleRequest) (*response.ReservationResponse, error)
	UpdateReservation(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string) error

	// Admin
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	venues   VenueService
	identity IdentityResolver
	log      *zap.Logger
	now      func() time.Time
}

func NewReservationService(repo *repository.Repository, venues VenueService, identity IdentityResolver, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		venues:   venues,
		identity: identity,
		log:      log.With(zap.String("service", "reservation")),
		now:      time.Now,
	}
}

// parseInterval converts the request's wall-clock pair to minutes and
// enforces start < end. Malformed clocks are interval errors too.
func parseInterval(startClock, endClock string) (startMin, endMin int, err error) {
	startMin, err = entity.ParseClock(startClock)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", utils.ErrInvalidInterval, err)
	}
	endMin, err = entity.ParseClock(endClock)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", utils.ErrInvalidInterval, err)
	}
	if startMin >= endMin {
		return 0, 0, fmt.Errorf("%w: start %s not before end %s", utils.ErrInvalidInterval, startClock, endClock)
	}
	return startMin, endMin, nil
}

func slotTaken(conflict *entity.Reservation) error {
	return &utils.SlotTakenError{
		ReservationID: conflict.ID.String(),
		Date:          conflict.Date,
		StartTime:     entity.FormatClock(conflict.StartMin),
		EndTime:       entity.FormatClock(conflict.EndMin),
	}
}

// canModify is the owner-or-admin capability check for mutating operations.
func canModify(res *entity.Reservation, callerID uuid.UUID, callerRole string) bool {
	return res.UserID == callerID || callerRole == string(entity.RoleAdmin)
}

func (s *reservationService) CreateReservation(ctx context.Context, callerID *uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	venue, err := s.venues.ResolveVenue(ctx, req.Venue)
	if err != nil {
		return nil, err
	}

	field := req.FieldNumber
	if field == 0 {
		field = 1
	}
	if !venue.HasField(field) {
		return nil, fmt.Errorf("field %d at venue %s: %w", field, venue.Name, utils.ErrInvalidField)
	}

	startMin, endMin, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", utils.ErrInvalidInterval, req.Date)
	}

	today := s.now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, fmt.Errorf("date %s: %w", req.Date, utils.ErrPastDateRejected)
	}

	ownerID, err := s.identity.ResolveOwner(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// Explicit price wins over the venue's hourly rate
	price := venue.HourlyPrice * float64(endMin-startMin) / float64(entity.MinutesPerHour)
	if req.Price != nil {
		price = *req.Price
	}

	participants := make([]uuid.UUID, 0, len(req.Participants))
	for _, p := range req.Participants {
		participantID, err := uuid.Parse(p)
		if err != nil {
			return nil, fmt.Errorf("invalid participant ID format %s: %w", p, err)
		}
		participants = append(participants, participantID)
	}

	now := s.now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:          utils.GenerateReservationCode(),
		VenueID:       venue.ID,
		FieldNumber:   field,
		UserID:        ownerID,
		Date:          date,
		StartMin:      startMin,
		EndMin:        endMin,
		Price:         price,
		Status:        entity.ReservationStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		Participants:  participants,
		Notes:         req.Notes,
	}

	conflict, err := s.repo.Reservation.CreateIfFree(ctx, reservation)
	if err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
			zap.Int("field", field),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	if conflict != nil {
		s.log.Info("Reservation rejected, slot taken",
			zap.String("venue_id", venue.ID.String()),
			zap.Int("field", field),
			zap.String("conflicting_id", conflict.ID.String()),
		)
		return nil, slotTaken(conflict)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("venue_id", venue.ID.String()),
		zap.Int("field", field),
		zap.String("date", req.Date),
		zap.String("interval", req.StartTime+"-"+req.EndTime),
		zap.Float64("price", price),
	)

	return s.buildReservationResponse(ctx, reservation), nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user reservations",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user reservations", zap.Error(err))
		return nil, fmt.Errorf("count user reservations: %w", err)
	}

	reservationResponses := make([]response.ReservationResponse, len(reservations))
	for i, res := range reservations {
		reservationResponses[i] = *s.buildReservationResponse(ctx, res)
	}

	return response.NewPaginatedResponse(reservationResponses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) loadGuarded(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	res, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %s: %w", reservationID, err)
	}
	if res == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, utils.ErrNotFound)
	}

	if !canModify(res, callerID, callerRole) {
		s.log.Warn("Reservation access denied",
			zap.String("reservation_id", reservationID),
			zap.String("caller_id", callerID.String()),
		)
		return nil, fmt.Errorf("reservation %s: %w", reservationID, utils.ErrForbidden)
	}

	return res, nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.UpdateStatusRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	res, err := s.loadGuarded(ctx, callerID, callerRole, reservationID)
	if err != nil {
		return nil, err
	}

	newStatus := entity.ReservationStatus(req.Status)
	if !res.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("%s to %s: %w", res.Status, newStatus, utils.ErrInvalidTransition)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, res.ID, newStatus); err != nil {
		s.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	s.log.Info("Reservation status updated",
		zap.String("reservation_id", reservationID),
		zap.String("from", string(res.Status)),
		zap.String("to", string(newStatus)),
	)

	res.Status = newStatus
	return s.buildReservationResponse(ctx, res), nil
}

func (s *reservationService) Reschedule(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.RescheduleRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reschedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	res, err := s.loadGuarded(ctx, callerID, callerRole, reservationID)
	if err != nil {
		return nil, err
	}

	startMin, endMin, err := parseInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %s", utils.ErrInvalidInterval, req.Date)
	}

	// A successful move is presumed authoritative and confirms the booking
	conflict, err := s.repo.Reservation.RescheduleIfFree(ctx, res.ID, date, startMin, endMin, entity.ReservationStatusConfirmed)
	if err != nil {
		s.log.Error("Failed to reschedule reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("reschedule reservation: %w", err)
	}
	if conflict != nil {
		return nil, slotTaken(conflict)
	}

	s.log.Info("Reservation rescheduled",
		zap.String("reservation_id", reservationID),
		zap.String("date", req.Date),
		zap.String("interval", req.StartTime+"-"+req.EndTime),
	)

	res.Date = date
	res.StartMin = startMin
	res.EndMin = endMin
	res.Status = entity.ReservationStatusConfirmed
	return s.buildReservationResponse(ctx, res), nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	res, err := s.loadGuarded(ctx, callerID, callerRole, reservationID)
	if err != nil {
		return nil, err
	}

	// A date or time change re-runs the conflict check under the slot lock;
	// the status is left as it was.
	if req.Date != nil || req.StartTime != nil || req.EndTime != nil {
		date := res.Date
		startClock := entity.FormatClock(res.StartMin)
		endClock := entity.FormatClock(res.EndMin)

		if req.Date != nil {
			date, err = time.Parse("2006-01-02", *req.Date)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid date %s", utils.ErrInvalidInterval, *req.Date)
			}
		}
		if req.StartTime != nil {
			startClock = *req.StartTime
		}
		if req.EndTime != nil {
			endClock = *req.EndTime
		}

		startMin, endMin, err := parseInterval(startClock, endClock)
		if err != nil {
			return nil, err
		}

		conflict, err := s.repo.Reservation.RescheduleIfFree(ctx, res.ID, date, startMin, endMin, res.Status)
		if err != nil {
			return nil, fmt.Errorf("move reservation: %w", err)
		}
		if conflict != nil {
			return nil, slotTaken(conflict)
		}

		res.Date = date
		res.StartMin = startMin
		res.EndMin = endMin
	}

	if req.Price != nil {
		res.Price = *req.Price
	}
	if req.Notes != nil {
		res.Notes = *req.Notes
	}
	if req.PaymentStatus != nil {
		res.PaymentStatus = entity.PaymentStatus(*req.PaymentStatus)
	}
	if req.Participants != nil {
		participants := make([]uuid.UUID, 0, len(req.Participants))
		for _, p := range req.Participants {
			participantID, err := uuid.Parse(p)
			if err != nil {
				return nil, fmt.Errorf("invalid participant ID format %s: %w", p, err)
			}
			participants = append(participants, participantID)
		}
		res.Participants = participants
	}
	res.UpdatedAt = s.now()

	if err := s.repo.Reservation.Update(ctx, res); err != nil {
		s.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.log.Info("Reservation updated", zap.String("reservation_id", reservationID))

	return s.buildReservationResponse(ctx, res), nil
}

func (s *reservationService) CancelReservation(ctx context.Context, callerID uuid.UUID, callerRole, reservationID string) error {
	res, err := s.loadGuarded(ctx, callerID, callerRole, reservationID)
	if err != nil {
		return err
	}

	// Cancelling twice is a no-op, not an error
	if res.Status == entity.ReservationStatusCancelled {
		return nil
	}

	if !res.Status.CanTransitionTo(entity.ReservationStatusCancelled) {
		return fmt.Errorf("%s to cancelled: %w", res.Status, utils.ErrInvalidTransition)
	}

	// Relaxing constraints cannot create conflicts, no availability check
	if err := s.repo.Reservation.UpdateStatus(ctx, res.ID, entity.ReservationStatusCancelled); err != nil {
		s.log.Error("Failed to cancel reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return fmt.Errorf("cancel reservation %s: %w", reservationID, err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("code", res.Code),
	)

	return nil
}

// ==================== ADMIN METHODS ====================

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	res, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reservation %s: %w", reservationID, err)
	}
	if res == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, utils.ErrNotFound)
	}

	return s.buildReservationResponse(ctx, res), nil
}

// ==================== HELPER METHODS ====================

func (s *reservationService) buildReservationResponse(ctx context.Context, res *entity.Reservation) *response.ReservationResponse {
	var venueName, currency string

	venue, _ := s.repo.Venue.FindByID(ctx, res.VenueID)
	if venue != nil {
		venueName = venue.Name
		currency = venue.Currency
	}

	return response.ReservationToResponse(res, venueName, currency)
}
