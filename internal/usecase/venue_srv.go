package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pitch-booking/internal/data/entity"
	"pitch-booking/internal/data/repository"
	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/dto/response"
	"pitch-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenues(ctx context.Context, req *request.PaginatedRequest, nameFilter *string) (*response.PaginatedResponse[response.VenueResponse], error)
	GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error)

	// ResolveVenue accepts an opaque id or a free-text name. Unknown names
	// from the canonical list are provisioned with default hours so the
	// booking flow stays usable when reference data is incomplete.
	ResolveVenue(ctx context.Context, identifier string) (*entity.Venue, error)

	// GetAvailability computes the hourly open/closed grid for one field
	// on one date. The grid is a view recomputed on every call.
	GetAvailability(ctx context.Context, venueIdentifier string, field int, dateStr string) (*response.AvailabilityResponse, error)

	CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error)
	UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error)
	DeleteVenue(ctx context.Context, venueID string) error
}

type venueService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewVenueService(repo *repository.Repository, config *utils.Config, log *zap.Logger) VenueService {
	return &venueService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "venue")),
	}
}

// Venues the platform may lazily materialize when first referenced by name.
var canonicalVenues = map[string]bool{
	"main arena":      true,
	"city stadium":    true,
	"riverside pitch": true,
}

func (s *venueService) ResolveVenue(ctx context.Context, identifier string) (*entity.Venue, error) {
	// An opaque id takes priority over a name match
	if id, err := uuid.Parse(identifier); err == nil {
		venue, err := s.repo.Venue.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve venue %s: %w", identifier, err)
		}
		if venue == nil {
			return nil, fmt.Errorf("venue %s: %w", identifier, utils.ErrVenueNotFound)
		}
		return venue, nil
	}

	venue, err := s.repo.Venue.FindByName(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("resolve venue %s: %w", identifier, err)
	}
	if venue != nil {
		return venue, nil
	}

	if !canonicalVenues[strings.ToLower(identifier)] {
		return nil, fmt.Errorf("venue %s: %w", identifier, utils.ErrVenueNotFound)
	}

	venue, err = s.repo.Venue.GetOrCreateDefault(ctx, identifier,
		s.config.Booking.DefaultHourlyPrice, s.config.Booking.DefaultCurrency)
	if err != nil {
		return nil, fmt.Errorf("provision venue %s: %w", identifier, err)
	}

	s.log.Info("Canonical venue materialized",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", identifier),
	)

	return venue, nil
}

func (s *venueService) GetAvailability(ctx context.Context, venueIdentifier string, field int, dateStr string) (*response.AvailabilityResponse, error) {
	venue, err := s.ResolveVenue(ctx, venueIdentifier)
	if err != nil {
		return nil, err
	}

	if field == 0 {
		field = 1
	}
	if !venue.HasField(field) {
		return nil, fmt.Errorf("field %d at venue %s: %w", field, venue.Name, utils.ErrInvalidField)
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", dateStr, err)
	}

	hours := venue.WorkingHours.ForDay(date.Weekday())
	if hours == nil {
		return nil, fmt.Errorf("venue %s on %s: %w", venue.Name, date.Weekday(), utils.ErrClosedOnThisDay)
	}

	openMin, closeMin, err := hours.Minutes()
	if err != nil {
		return nil, fmt.Errorf("working hours for venue %s: %w", venue.Name, err)
	}

	reservations, err := s.repo.Reservation.FindByVenueFieldDate(ctx, venue.ID, field, date)
	if err != nil {
		s.log.Error("Failed to load reservations for availability",
			zap.Error(err),
			zap.String("venue_id", venue.ID.String()),
			zap.Int("field", field),
		)
		return nil, fmt.Errorf("load reservations: %w", err)
	}

	// One-hour slots from open (inclusive) to close (exclusive); a slot is
	// blocked by the first non-cancelled reservation intersecting it.
	var slots []response.TimeSlotResponse
	for start := openMin; start+entity.MinutesPerHour <= closeMin; start += entity.MinutesPerHour {
		end := start + entity.MinutesPerHour
		slot := response.TimeSlotResponse{
			StartTime: entity.FormatClock(start),
			EndTime:   entity.FormatClock(end),
			Available: true,
		}

		if blocking := entity.FindConflict(reservations, start, end, uuid.Nil); blocking != nil {
			slot.Available = false
			id := blocking.ID.String()
			status := string(blocking.Status)
			slot.ReservationID = &id
			slot.ReservationStatus = &status
		}

		slots = append(slots, slot)
	}

	s.log.Info("Availability computed",
		zap.String("venue_id", venue.ID.String()),
		zap.Int("field", field),
		zap.String("date", dateStr),
		zap.Int("slots", len(slots)),
		zap.Int("reservations", len(reservations)),
	)

	return &response.AvailabilityResponse{
		VenueID: venue.ID.String(),
		Field:   field,
		Date:    dateStr,
		Slots:   slots,
	}, nil
}

func (s *venueService) GetVenues(ctx context.Context, req *request.PaginatedRequest, nameFilter *string) (*response.PaginatedResponse[response.VenueResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	venues, err := s.repo.Venue.FindAll(ctx, limit, offset, nameFilter)
	if err != nil {
		s.log.Error("Failed to get venues",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get venues: %w", err)
	}

	total, err := s.repo.Venue.CountAll(ctx, nameFilter)
	if err != nil {
		s.log.Error("Failed to count venues", zap.Error(err))
		return nil, fmt.Errorf("count venues: %w", err)
	}

	venueResponses := make([]response.VenueResponse, len(venues))
	for i, venue := range venues {
		venueResponses[i] = response.VenueToResponse(venue)
	}

	s.log.Info("Venues retrieved",
		zap.Int("count", len(venues)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(venueResponses, req.Page, req.PerPage, total), nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		s.log.Warn("Invalid venue ID format",
			zap.String("venue_id", venueID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, err)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get venue by ID",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}

	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, utils.ErrVenueNotFound)
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) CreateVenue(ctx context.Context, req *request.VenueRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create venue validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hours, err := req.ParsedWorkingHours()
	if err != nil {
		return nil, fmt.Errorf("invalid working hours: %w", err)
	}

	now := time.Now()
	venue := &entity.Venue{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Location:     req.Location,
		HourlyPrice:  req.HourlyPrice,
		Currency:     req.Currency,
		FieldCount:   req.FieldCount,
		WorkingHours: hours,
	}
	if venue.FieldCount < 1 {
		venue.FieldCount = 1
	}
	if venue.Currency == "" {
		venue.Currency = s.config.Booking.DefaultCurrency
	}

	if err := s.repo.Venue.Create(ctx, venue); err != nil {
		s.log.Error("Failed to create venue",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create venue: %w", err)
	}

	s.log.Info("Venue created",
		zap.String("venue_id", venue.ID.String()),
		zap.String("name", venue.Name),
		zap.Int("field_count", venue.FieldCount),
	)

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID string, req *request.VenueUpdateRequest) (*response.VenueResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update venue validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, err)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("venue %s: %w", venueID, utils.ErrVenueNotFound)
	}

	if req.Name != nil {
		venue.Name = *req.Name
	}
	if req.Location != nil {
		venue.Location = *req.Location
	}
	if req.HourlyPrice != nil {
		venue.HourlyPrice = *req.HourlyPrice
	}
	if req.Currency != nil {
		venue.Currency = *req.Currency
	}
	if req.FieldCount != nil {
		venue.FieldCount = *req.FieldCount
	}
	if req.WorkingHours != nil {
		hours, err := req.ParsedWorkingHours()
		if err != nil {
			return nil, fmt.Errorf("invalid working hours: %w", err)
		}
		venue.WorkingHours = hours
	}
	venue.UpdatedAt = time.Now()

	if err := s.repo.Venue.Update(ctx, venue); err != nil {
		s.log.Error("Failed to update venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return nil, fmt.Errorf("update venue %s: %w", venueID, err)
	}

	s.log.Info("Venue updated", zap.String("venue_id", venueID))

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, venueID string) error {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return fmt.Errorf("invalid venue ID format %s: %w", venueID, err)
	}

	if err := s.repo.Venue.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete venue",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return fmt.Errorf("delete venue %s: %w", venueID, err)
	}

	return nil
}
