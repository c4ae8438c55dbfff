package postgres

import (
	"time"

	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	paymentpkg "github.com/frahmantamala/companion-booking/internal/payment"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &TransactionRepository{
		db: db,
	}
}

func (r *TransactionRepository) Create(t *transaction.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByOrderID(orderID string) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := r.db.Where("order_id = ?", orderID).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ApplyStatus writes the notification outcome in a single UPDATE keyed by
// order id. Replaying the same notification produces the same row, and
// payment_confirmed_at keeps its first value thanks to COALESCE.
func (r *TransactionRepository) ApplyStatus(u paymentpkg.StatusUpdate) (int64, error) {
	updates := map[string]interface{}{
		"status":     string(u.Status),
		"updated_at": time.Now().UTC(),
	}

	if u.PaymentType != "" {
		updates["payment_type"] = u.PaymentType
	}

	if u.TransactionTime != "" {
		updates["transaction_time"] = u.TransactionTime
	}

	if u.SettlementTime != "" {
		updates["settlement_time"] = u.SettlementTime
	}

	if u.RawPayload != nil {
		updates["raw_response"] = u.RawPayload
	}

	if u.Status == paymentpkg.StatusPaid {
		updates["payment_confirmed_at"] = gorm.Expr("COALESCE(payment_confirmed_at, ?)", time.Now().UTC())
	}

	tx := r.db.Model(&transaction.Transaction{}).Where("order_id = ?", u.OrderID).Updates(updates)
	return tx.RowsAffected, tx.Error
}
