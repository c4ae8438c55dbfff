package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/companion-booking/internal"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	paymentpkg "github.com/frahmantamala/companion-booking/internal/payment"
	"github.com/frahmantamala/companion-booking/internal/transport"
)

type mockPaymentService struct {
	reconcileResult *paymentpkg.ReconcileResult
	reconcileErr    error
	received        *paymentpkg.NotificationRequest
}

func (m *mockPaymentService) Reconcile(ctx context.Context, req *paymentpkg.NotificationRequest) (*paymentpkg.ReconcileResult, error) {
	m.received = req
	return m.reconcileResult, m.reconcileErr
}

func (m *mockPaymentService) GetByOrderID(orderID string) (*transaction.Transaction, error) {
	return nil, nil
}

var _ = Describe("WebhookHandler", func() {
	var (
		service  *mockPaymentService
		handler  *paymentpkg.WebhookHandler
		recorder *httptest.ResponseRecorder
	)

	notificationBody := func() map[string]string {
		return map[string]string{
			"order_id":           "ORD-1",
			"status_code":        "200",
			"gross_amount":       "100000.00",
			"signature_key":      "deadbeef",
			"transaction_status": "settlement",
		}
	}

	postNotification := func(body []byte) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/notification", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		handler.HandleNotification(recorder, req)
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = &mockPaymentService{}
		handler = paymentpkg.NewWebhookHandler(transport.NewBaseHandler(logger), service, logger)
		recorder = httptest.NewRecorder()
	})

	Context("with a processable notification", func() {
		It("should acknowledge with the resolved status", func() {
			service.reconcileResult = &paymentpkg.ReconcileResult{OrderID: "ORD-1", Status: paymentpkg.StatusPaid}
			body, _ := json.Marshal(notificationBody())

			postNotification(body)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var resp paymentpkg.NotificationResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
			Expect(resp.OrderID).To(Equal("ORD-1"))
			Expect(resp.Status).To(Equal("paid"))
			Expect(service.received.TransactionStatus).To(Equal("settlement"))
		})
	})

	Context("with a malformed body", func() {
		It("should return 400 without calling the service", func() {
			postNotification([]byte(`{"order_id": `))

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(service.received).To(BeNil())

			var resp paymentpkg.NotificationErrorResponse
			Expect(json.Unmarshal(recorder.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Success).To(BeFalse())
		})
	})

	Context("with required fields missing", func() {
		It("should return 400 without calling the service", func() {
			body := notificationBody()
			delete(body, "signature_key")
			raw, _ := json.Marshal(body)

			postNotification(raw)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			Expect(service.received).To(BeNil())
		})
	})

	Context("when the signature is rejected", func() {
		It("should return 403 so the provider does not retry", func() {
			service.reconcileErr = apperrors.ErrInvalidSignature
			body, _ := json.Marshal(notificationBody())

			postNotification(body)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})
	})

	Context("when the order id is unknown", func() {
		It("should return 404", func() {
			service.reconcileErr = apperrors.ErrOrderNotFound
			body, _ := json.Marshal(notificationBody())

			postNotification(body)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("when persistence fails", func() {
		It("should return 500 so the provider redelivers", func() {
			service.reconcileErr = apperrors.NewInternalError("failed to persist transaction status", nil)
			body, _ := json.Marshal(notificationBody())

			postNotification(body)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
