package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentPaid      = "payment.paid"
	EventTypePaymentFailed    = "payment.failed"
	EventTypePaymentRefunded  = "payment.refunded"
	EventTypeBookingConfirmed = "booking.confirmed"
)

type PaymentPaidEvent struct {
	BaseEvent
	OrderID     string `json:"order_id"`
	GrossAmount string `json:"gross_amount"`
	PaymentType string `json:"payment_type"`
}

func NewPaymentPaidEvent(orderID, grossAmount, paymentType string) *PaymentPaidEvent {
	return &PaymentPaidEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentPaid,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":     orderID,
				"gross_amount": grossAmount,
				"payment_type": paymentType,
			},
		},
		OrderID:     orderID,
		GrossAmount: grossAmount,
		PaymentType: paymentType,
	}
}

type PaymentFailedEvent struct {
	BaseEvent
	OrderID        string `json:"order_id"`
	ProviderStatus string `json:"provider_status"`
}

func NewPaymentFailedEvent(orderID, providerStatus string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":        orderID,
				"provider_status": providerStatus,
			},
		},
		OrderID:        orderID,
		ProviderStatus: providerStatus,
	}
}

type PaymentRefundedEvent struct {
	BaseEvent
	OrderID string `json:"order_id"`
}

func NewPaymentRefundedEvent(orderID string) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentRefunded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id": orderID,
			},
		},
		OrderID: orderID,
	}
}

type BookingConfirmedEvent struct {
	BaseEvent
	BookingID  int64  `json:"booking_id"`
	OrderID    string `json:"order_id"`
	CustomerID int64  `json:"customer_id"`
	ServiceID  string `json:"service_id"`
}

func NewBookingConfirmedEvent(bookingID int64, orderID string, customerID int64, serviceID string) *BookingConfirmedEvent {
	return &BookingConfirmedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeBookingConfirmed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"booking_id":  bookingID,
				"order_id":    orderID,
				"customer_id": customerID,
				"service_id":  serviceID,
			},
		},
		BookingID:  bookingID,
		OrderID:    orderID,
		CustomerID: customerID,
		ServiceID:  serviceID,
	}
}
