package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/transport"
)

type WebhookHandler struct {
	*transport.BaseHandler
	paymentService ServiceAPI
	logger         *slog.Logger
}

func NewWebhookHandler(baseHandler *transport.BaseHandler, paymentService ServiceAPI, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler:    baseHandler,
		paymentService: paymentService,
		logger:         logger,
	}
}

// HandleNotification processes POST /payments/notification. A non-2xx body
// asks the provider to redeliver; a 4xx is definitive and must not be
// retried, which is why signature failures are not reported as 5xx.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	var req NotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("invalid payment notification body", "error", err)
		h.writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Error("payment notification missing required fields",
			"error", err,
			"order_id", req.OrderID)
		h.writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("received payment notification",
		"order_id", req.OrderID,
		"transaction_status", req.TransactionStatus,
		"fraud_status", req.FraudStatus,
		"payment_type", req.PaymentType)

	result, err := h.paymentService.Reconcile(r.Context(), &req)
	if err != nil {
		if appErr, ok := errors.IsAppError(err); ok {
			h.writeFailure(w, appErr.StatusCode, appErr.Message)
			return
		}
		h.logger.Error("failed to process payment notification",
			"error", err,
			"order_id", req.OrderID)
		h.writeFailure(w, http.StatusInternalServerError, "failed to process notification")
		return
	}

	h.logger.Info("payment notification processed",
		"order_id", result.OrderID,
		"status", result.Status)

	h.WriteJSON(w, http.StatusOK, NotificationResponse{
		Success: true,
		OrderID: result.OrderID,
		Status:  string(result.Status),
	})
}

func (h *WebhookHandler) writeFailure(w http.ResponseWriter, statusCode int, message string) {
	h.WriteJSON(w, statusCode, NotificationErrorResponse{
		Success: false,
		Error:   message,
	})
}
