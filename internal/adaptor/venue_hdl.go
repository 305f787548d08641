package adaptor

import (
	"encoding/json"
	"net/http"

	"pitch-booking/internal/dto/request"
	"pitch-booking/internal/usecase"
	"pitch-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenues handles GET /api/venues (public)
func (h *VenueHandler) GetVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	var nameFilter *string
	if name := query.Get("name"); name != "" {
		nameFilter = &name
	}

	venues, err := h.service.GetVenues(r.Context(), req, nameFilter)
	if err != nil {
		handleServiceError(h.log, w, err, "get venues")
		return
	}

	utils.ResponseSuccess(w, "success", venues)
}

// GetVenueByID handles GET /api/venues/{id} (public)
func (h *VenueHandler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		handleServiceError(h.log, w, err, "get venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// GetAvailability handles GET /api/venues/{id}/availability (public)
//
// Query: date (required, YYYY-MM-DD), field (optional, defaults to 1).
// The id path segment also accepts a venue name.
func (h *VenueHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	query := r.URL.Query()
	date := query.Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}
	field := utils.ParseInt(query.Get("field"), 0)

	availability, err := h.service.GetAvailability(r.Context(), venueID, field, date)
	if err != nil {
		handleServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// CreateVenue handles POST /api/admin/venues (admin)
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req request.VenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.CreateVenue(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create venue")
		return
	}

	utils.ResponseCreated(w, "success", venue)
}

// UpdateVenue handles PUT /api/admin/venues/{id} (admin)
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	var req request.VenueUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	venue, err := h.service.UpdateVenue(r.Context(), venueID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// DeleteVenue handles DELETE /api/admin/venues/{id} (admin)
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	if err := h.service.DeleteVenue(r.Context(), venueID); err != nil {
		handleServiceError(h.log, w, err, "delete venue")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
