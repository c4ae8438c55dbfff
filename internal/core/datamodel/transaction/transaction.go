package transaction

import (
	"encoding/json"
	"time"
)

// Transaction is the local payment record for a single provider order.
// OrderID is assigned when the transaction is created and never changes;
// all notification processing is keyed by it.
type Transaction struct {
	ID                 int64           `gorm:"primaryKey"`
	OrderID            string          `gorm:"column:order_id;not null;uniqueIndex"`
	GrossAmount        int64           `gorm:"column:gross_amount;not null"`
	Status             string          `gorm:"column:status;default:pending"`
	PaymentType        *string         `gorm:"column:payment_type"`
	TransactionTime    *string         `gorm:"column:transaction_time"`
	SettlementTime     *string         `gorm:"column:settlement_time"`
	RawResponse        json.RawMessage `gorm:"column:raw_response;type:jsonb"`
	PaymentConfirmedAt *time.Time      `gorm:"column:payment_confirmed_at"`
	CreatedAt          time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;default:now()"`
}

func (Transaction) TableName() string {
	return "transactions"
}
