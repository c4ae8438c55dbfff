package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/companion-booking/internal"
	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	"github.com/frahmantamala/companion-booking/internal/core/events"
)

// StatusUpdate is the single atomic write applied to a transaction for one
// notification. It is keyed by order id and replaces the status columns in
// one UPDATE, never read-modify-write, so concurrent duplicate deliveries
// cannot lose updates.
type StatusUpdate struct {
	OrderID         string
	Status          PaymentStatus
	PaymentType     string
	TransactionTime string
	SettlementTime  string
	RawPayload      json.RawMessage
}

// RepositoryAPI is the persistence contract for transactions.
type RepositoryAPI interface {
	Create(t *transaction.Transaction) error
	GetByOrderID(orderID string) (*transaction.Transaction, error)
	// ApplyStatus performs the idempotent status write and reports how many
	// rows matched, so callers can distinguish an unknown order id.
	ApplyStatus(u StatusUpdate) (int64, error)
}

// BookingConfirmer is the cascade target. A nil booking with nil error means
// no booking references the order yet, which is not an error.
type BookingConfirmer interface {
	ConfirmByOrderID(orderID string) (*bookingmodel.Booking, error)
}

// ServiceAPI is what the HTTP layer consumes.
type ServiceAPI interface {
	Reconcile(ctx context.Context, req *NotificationRequest) (*ReconcileResult, error)
	GetByOrderID(orderID string) (*transaction.Transaction, error)
}

// Service owns every PaymentStatus transition; no other component writes
// that field.
type Service struct {
	verifier *SignatureVerifier
	repo     RepositoryAPI
	bookings BookingConfirmer
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(verifier *SignatureVerifier, repo RepositoryAPI, bookings BookingConfirmer, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		verifier: verifier,
		repo:     repo,
		bookings: bookings,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Reconcile authenticates a notification, maps it onto the internal state
// machine, and applies it. The transaction write is the source of truth: if
// it fails the whole request fails so the provider redelivers. The booking
// cascade after a successful paid write is best effort and never fails the
// request.
func (s *Service) Reconcile(ctx context.Context, req *NotificationRequest) (*ReconcileResult, error) {
	if !s.verifier.Verify(req.OrderID, req.StatusCode, req.GrossAmount, req.SignatureKey) {
		s.logger.Warn("rejecting notification with invalid signature",
			"order_id", req.OrderID,
			"transaction_status", req.TransactionStatus)
		return nil, errors.ErrInvalidSignature
	}

	providerStatus := ParseProviderStatus(req.TransactionStatus, req.FraudStatus)
	status := providerStatus.PaymentStatus()

	if status == StatusUnknown {
		s.logger.Warn("unmapped provider status recorded for manual review",
			"order_id", req.OrderID,
			"transaction_status", req.TransactionStatus,
			"fraud_status", req.FraudStatus)
	}

	rawPayload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit payload: %w", err)
	}

	rows, err := s.repo.ApplyStatus(StatusUpdate{
		OrderID:         req.OrderID,
		Status:          status,
		PaymentType:     req.PaymentType,
		TransactionTime: req.TransactionTime,
		SettlementTime:  req.SettlementTime,
		RawPayload:      rawPayload,
	})
	if err != nil {
		s.logger.Error("transaction status write failed",
			"error", err,
			"order_id", req.OrderID,
			"status", status)
		return nil, errors.NewInternalError("failed to persist transaction status", err)
	}
	if rows == 0 {
		s.logger.Warn("notification references unknown order", "order_id", req.OrderID)
		return nil, errors.ErrOrderNotFound
	}

	s.logger.Info("transaction status applied",
		"order_id", req.OrderID,
		"provider_status", req.TransactionStatus,
		"fraud_status", req.FraudStatus,
		"status", status)

	if status == StatusPaid {
		s.cascadeBookingConfirmation(ctx, req)
	}

	s.publishStatusEvents(ctx, req, status)

	return &ReconcileResult{OrderID: req.OrderID, Status: status}, nil
}

// cascadeBookingConfirmation is the second phase of the paid transition. The
// transaction write already succeeded; a failure here leaves a bounded
// inconsistency window for the out-of-band reconciliation sweep to repair.
func (s *Service) cascadeBookingConfirmation(ctx context.Context, req *NotificationRequest) {
	booking, err := s.bookings.ConfirmByOrderID(req.OrderID)
	if err != nil {
		s.logger.Error("booking cascade failed after transaction write",
			"error", err,
			"order_id", req.OrderID)
		return
	}
	if booking == nil {
		s.logger.Debug("no booking linked to order, cascade skipped", "order_id", req.OrderID)
		return
	}

	s.logger.Info("booking confirmed by payment cascade",
		"booking_id", booking.ID,
		"order_id", req.OrderID)

	event := events.NewBookingConfirmedEvent(booking.ID, booking.OrderID, booking.CustomerID, booking.ServiceID)
	s.eventBus.Publish(ctx, event)
}

func (s *Service) publishStatusEvents(ctx context.Context, req *NotificationRequest, status PaymentStatus) {
	switch status {
	case StatusPaid:
		s.eventBus.Publish(ctx, events.NewPaymentPaidEvent(req.OrderID, req.GrossAmount, req.PaymentType))
	case StatusFailed:
		s.eventBus.Publish(ctx, events.NewPaymentFailedEvent(req.OrderID, req.TransactionStatus))
	case StatusRefunded:
		s.eventBus.Publish(ctx, events.NewPaymentRefundedEvent(req.OrderID))
	}
}

func (s *Service) GetByOrderID(orderID string) (*transaction.Transaction, error) {
	t, err := s.repo.GetByOrderID(orderID)
	if err != nil {
		s.logger.Error("failed to load transaction", "error", err, "order_id", orderID)
		return nil, errors.ErrOrderNotFound
	}
	return t, nil
}
