package payment

import (
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/transport"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	PaymentService ServiceAPI
	Logger         *slog.Logger
}

func NewHandler(baseHandler *transport.BaseHandler, paymentService ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler:    baseHandler,
		PaymentService: paymentService,
		Logger:         logger,
	}
}

// GetTransaction handles GET /api/v1/payments/{orderID}
func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	if orderID == "" {
		h.WriteError(w, http.StatusBadRequest, "order id is required")
		return
	}

	t, err := h.PaymentService.GetByOrderID(orderID)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			h.WriteError(w, appErr.StatusCode, appErr.Message)
			return
		}
		h.Logger.Error("GetTransaction: service error", "error", err, "order_id", orderID)
		h.WriteError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(t))
}
