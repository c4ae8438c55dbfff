package postgres

import (
	bookingpkg "github.com/frahmantamala/companion-booking/internal/booking"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/customer"
	"gorm.io/gorm"
)

// VerificationRepository consults the profile store for a customer's identity
// verification flag. The verification upload/review flow itself is handled
// outside this service.
type VerificationRepository struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) bookingpkg.VerificationChecker {
	return &VerificationRepository{
		db: db,
	}
}

func (r *VerificationRepository) IsVerified(customerID int64) (bool, error) {
	var c customer.Customer
	err := r.db.Select("is_verified").First(&c, customerID).Error
	if err != nil {
		return false, err
	}
	return c.IsVerified, nil
}
