package booking

import (
	"time"

	errors "github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/core/common/validation"
	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
)

type CreateBookingRequest struct {
	CustomerID   int64  `json:"customer_id"`
	CompanionID  int64  `json:"companion_id"`
	ServiceID    string `json:"service_id"`
	Duration     int64  `json:"duration"`
	DurationUnit string `json:"duration_unit"`
}

func (r *CreateBookingRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("customer_id", r.CustomerID).Required()
	validator.Field("companion_id", r.CompanionID).Required()
	validator.Field("service_id", r.ServiceID).Required().MaxLength(64)
	validator.Field("duration", r.Duration).Required().MinInt(1, errors.ErrCodeInvalidDuration)
	validator.Field("duration_unit", r.DurationUnit).Required().OneOf(UnitHours, UnitDays, UnitWeeks, UnitMonths)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type BookingView struct {
	ID            int64     `json:"id"`
	OrderID       string    `json:"order_id"`
	CustomerID    int64     `json:"customer_id"`
	CompanionID   int64     `json:"companion_id"`
	ServiceID     string    `json:"service_id"`
	Duration      int64     `json:"duration"`
	DurationUnit  string    `json:"duration_unit"`
	AmountIDR     int64     `json:"amount_idr"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToView(b *bookingmodel.Booking) *BookingView {
	if b == nil {
		return nil
	}
	return &BookingView{
		ID:            b.ID,
		OrderID:       b.OrderID,
		CustomerID:    b.CustomerID,
		CompanionID:   b.CompanionID,
		ServiceID:     b.ServiceID,
		Duration:      b.Duration,
		DurationUnit:  b.DurationUnit,
		AmountIDR:     b.AmountIDR,
		PaymentStatus: b.PaymentStatus,
		BookingStatus: b.BookingStatus,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
