package booking

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	BookingService ServiceAPI
	Logger         *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, bookingService ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		BookingService: bookingService,
		Logger:         logger,
	}
}

// CreateBooking handles POST /api/v1/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("CreateBooking: failed to parse request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.BookingService.CreateBooking(&req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.GetDetailedMessage())
			return
		}
		h.Logger.Error("CreateBooking: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to create booking")
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToView(booking))
}

// GetBooking handles GET /api/v1/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := h.BookingService.GetBooking(id)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.Message)
			return
		}
		h.Logger.Error("GetBooking: service error", "error", err, "booking_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to load booking")
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(booking))
}
