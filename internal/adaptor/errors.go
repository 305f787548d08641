package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"pitch-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors onto HTTP responses. Domain kinds
// are matched by errors.Is / errors.As; anything unrecognized is an
// internal error.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var slotTaken *utils.SlotTakenError

	switch {
	case errors.As(err, &slotTaken):
		log.Warn(operation+" failed - slot taken",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("conflicting_id", slotTaken.ReservationID))
		utils.ResponseJSON(w, http.StatusConflict, false, "Slot already taken", nil, map[string]string{
			"reservation_id": slotTaken.ReservationID,
			"date":           slotTaken.Date.Format("2006-01-02"),
			"start_time":     slotTaken.StartTime,
			"end_time":       slotTaken.EndTime,
		})

	case errors.Is(err, utils.ErrVenueNotFound), errors.Is(err, utils.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrForbidden):
		log.Warn(operation+" failed - forbidden",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, utils.ErrInvalidField),
		errors.Is(err, utils.ErrInvalidInterval),
		errors.Is(err, utils.ErrPastDateRejected),
		errors.Is(err, utils.ErrClosedOnThisDay),
		errors.Is(err, utils.ErrInvalidTransition):
		log.Warn(operation+" failed - rejected",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "already"):
		log.Warn(operation+" failed - bad input",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
