package adaptor

import (
	"errors"
	"net/http"

	"barber-booking/internal/usecase"
	"barber-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Availability *AvailabilityHandler
	Booking      *BookingHandler
	Catalog      *CatalogHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(service.Auth, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
		Booking:      NewBookingHandler(service.Booking, log),
		Catalog:      NewCatalogHandler(service.Catalog, log),
	}
}

// handleServiceError maps the usecase error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is an internal error and is not echoed to
// the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var unavailable *usecase.UnavailableError

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrOutOfRange):
		log.Warn(operation+" rejected - outside booking window", zap.Error(err))
		utils.ResponseJSON(w, http.StatusUnprocessableEntity, false, err.Error(), nil, nil)

	case errors.As(err, &unavailable):
		log.Info(operation+" rejected - day unavailable",
			zap.String("date", unavailable.Date),
			zap.String("special_day", unavailable.SpecialDayName))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrConflict), errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" rejected - conflict", zap.Error(err))
		utils.ResponseJSON(w, http.StatusConflict, false, err.Error(), nil, nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrDataUnavailable):
		log.Error(operation+" failed - storage unavailable", zap.Error(err))
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, usecase.ErrDataUnavailable.Error(), nil, nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
