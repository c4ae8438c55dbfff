package booking

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/companion-booking/internal"
	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	"github.com/frahmantamala/companion-booking/internal/payment"
)

// Repository is the persistence contract for bookings. ConfirmByOrderID is
// the reconciliation cascade target and the only path that sets a booking to
// confirmed.
type Repository interface {
	Create(b *bookingmodel.Booking) error
	GetByID(id int64) (*bookingmodel.Booking, error)
	GetByOrderID(orderID string) (*bookingmodel.Booking, error)
	ConfirmByOrderID(orderID string) (*bookingmodel.Booking, error)
}

// VerificationChecker reports whether a customer completed identity
// verification. The verification flow itself lives outside this service.
type VerificationChecker interface {
	IsVerified(customerID int64) (bool, error)
}

type ServiceAPI interface {
	CreateBooking(req *CreateBookingRequest) (*bookingmodel.Booking, error)
	GetBooking(id int64) (*bookingmodel.Booking, error)
}

type Service struct {
	repo         Repository
	transactions payment.RepositoryAPI
	verification VerificationChecker
	logger       *slog.Logger
}

func NewService(repo Repository, transactions payment.RepositoryAPI, verification VerificationChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		transactions: transactions,
		verification: verification,
		logger:       logger,
	}
}

// CreateBooking prices the requested service, enforces the verification
// restriction, and creates the pending transaction plus the booking that
// references it by order id.
func (s *Service) CreateBooking(req *CreateBookingRequest) (*bookingmodel.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount := Price(req.ServiceID, req.Duration, req.DurationUnit)
	if amount == 0 {
		s.logger.Error("booking priced to zero, treating as data error",
			"service_id", req.ServiceID,
			"duration", req.Duration,
			"duration_unit", req.DurationUnit)
		return nil, errors.ErrUnknownService
	}

	if IsRestricted(req.ServiceID) {
		verified, err := s.verification.IsVerified(req.CustomerID)
		if err != nil {
			s.logger.Error("verification lookup failed",
				"error", err,
				"customer_id", req.CustomerID)
			return nil, errors.NewInternalError("failed to check identity verification", err)
		}
		if !verified {
			s.logger.Warn("restricted service requested by unverified customer",
				"customer_id", req.CustomerID,
				"service_id", req.ServiceID)
			return nil, errors.ErrServiceRestricted
		}
	}

	orderID := fmt.Sprintf("ORDER-%s", uuid.New().String())

	if err := s.transactions.Create(&transaction.Transaction{
		OrderID:     orderID,
		GrossAmount: amount,
		Status:      string(payment.StatusPending),
	}); err != nil {
		s.logger.Error("failed to create transaction for booking",
			"error", err,
			"order_id", orderID)
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	booking := &bookingmodel.Booking{
		OrderID:       orderID,
		CustomerID:    req.CustomerID,
		CompanionID:   req.CompanionID,
		ServiceID:     req.ServiceID,
		Duration:      req.Duration,
		DurationUnit:  req.DurationUnit,
		AmountIDR:     amount,
		PaymentStatus: bookingmodel.PaymentStatusPending,
		BookingStatus: bookingmodel.StatusPending,
	}

	if err := s.repo.Create(booking); err != nil {
		s.logger.Error("failed to create booking",
			"error", err,
			"order_id", orderID)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info("booking created",
		"booking_id", booking.ID,
		"order_id", orderID,
		"service_id", req.ServiceID,
		"amount_idr", amount)

	return booking, nil
}

func (s *Service) GetBooking(id int64) (*bookingmodel.Booking, error) {
	booking, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load booking", "error", err, "booking_id", id)
		return nil, errors.ErrBookingNotFound
	}
	return booking, nil
}
