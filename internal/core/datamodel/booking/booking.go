package booking

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking references its Transaction through OrderID only; the booking never
// owns the transaction's lifecycle and is confirmed exclusively by the
// reconciliation cascade when that transaction reaches paid.
type Booking struct {
	ID            int64     `gorm:"primaryKey"`
	OrderID       string    `gorm:"column:order_id;not null;index"`
	CustomerID    int64     `gorm:"column:customer_id;not null"`
	CompanionID   int64     `gorm:"column:companion_id;not null"`
	ServiceID     string    `gorm:"column:service_id;not null"`
	Duration      int64     `gorm:"column:duration;not null"`
	DurationUnit  string    `gorm:"column:duration_unit;not null"`
	AmountIDR     int64     `gorm:"column:amount_idr;not null"`
	PaymentStatus string    `gorm:"column:payment_status;default:pending"`
	BookingStatus string    `gorm:"column:booking_status;default:pending"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (Booking) TableName() string {
	return "bookings"
}
