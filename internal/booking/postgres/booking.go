package postgres

import (
	"time"

	bookingpkg "github.com/frahmantamala/companion-booking/internal/booking"
	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) bookingpkg.Repository {
	return &BookingRepository{
		db: db,
	}
}

func (r *BookingRepository) Create(b *bookingmodel.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) GetByID(id int64) (*bookingmodel.Booking, error) {
	var b bookingmodel.Booking
	err := r.db.First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByOrderID(orderID string) (*bookingmodel.Booking, error) {
	var b bookingmodel.Booking
	err := r.db.Where("order_id = ?", orderID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ConfirmByOrderID flips the linked booking to paid/confirmed in one UPDATE.
// Re-applying it on a replayed notification rewrites the same values. A nil
// booking with nil error means nothing references the order yet.
func (r *BookingRepository) ConfirmByOrderID(orderID string) (*bookingmodel.Booking, error) {
	tx := r.db.Model(&bookingmodel.Booking{}).Where("order_id = ?", orderID).Updates(map[string]interface{}{
		"payment_status": bookingmodel.PaymentStatusPaid,
		"booking_status": bookingmodel.StatusConfirmed,
		"updated_at":     time.Now().UTC(),
	})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	var b bookingmodel.Booking
	if err := r.db.Where("order_id = ?", orderID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
