package payment

import (
	"time"

	"github.com/frahmantamala/companion-booking/internal/core/common/validation"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
)

// NotificationRequest is the provider's webhook payload. String fields keep
// the provider's exact serialization because the signature is computed over
// the concatenated text, not the parsed values.
type NotificationRequest struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	PaymentType       string `json:"payment_type,omitempty"`
	TransactionTime   string `json:"transaction_time,omitempty"`
	SettlementTime    string `json:"settlement_time,omitempty"`
}

// Validate checks the fields the verifier needs; without them no signature
// can be computed, so the request is rejected before any verification attempt.
func (r *NotificationRequest) Validate() error {
	validator := validation.NewValidator()

	validator.Field("order_id", r.OrderID).Required()
	validator.Field("status_code", r.StatusCode).Required()
	validator.Field("gross_amount", r.GrossAmount).Required()
	validator.Field("signature_key", r.SignatureKey).Required()
	validator.Field("transaction_status", r.TransactionStatus).Required()

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type NotificationResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type NotificationErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ReconcileResult reports the status a notification resolved to.
type ReconcileResult struct {
	OrderID string
	Status  PaymentStatus
}

type TransactionView struct {
	OrderID            string     `json:"order_id"`
	GrossAmount        int64      `json:"gross_amount"`
	Status             string     `json:"status"`
	PaymentType        *string    `json:"payment_type,omitempty"`
	TransactionTime    *string    `json:"transaction_time,omitempty"`
	SettlementTime     *string    `json:"settlement_time,omitempty"`
	PaymentConfirmedAt *time.Time `json:"payment_confirmed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func ToView(t *transaction.Transaction) *TransactionView {
	if t == nil {
		return nil
	}
	return &TransactionView{
		OrderID:            t.OrderID,
		GrossAmount:        t.GrossAmount,
		Status:             t.Status,
		PaymentType:        t.PaymentType,
		TransactionTime:    t.TransactionTime,
		SettlementTime:     t.SettlementTime,
		PaymentConfirmedAt: t.PaymentConfirmedAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}
