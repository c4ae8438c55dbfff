package payment_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingPostgres "github.com/frahmantamala/companion-booking/internal/booking/postgres"
	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	"github.com/frahmantamala/companion-booking/internal/core/events"
	paymentpkg "github.com/frahmantamala/companion-booking/internal/payment"
	paymentPostgres "github.com/frahmantamala/companion-booking/internal/payment/postgres"
	"github.com/frahmantamala/companion-booking/internal/transport"
)

// transactionRow mirrors the transactions table with text instead of jsonb
// and without now() defaults, for SQLite compatibility.
type transactionRow struct {
	ID                 int64      `gorm:"primaryKey"`
	OrderID            string     `gorm:"column:order_id;not null;uniqueIndex"`
	GrossAmount        int64      `gorm:"column:gross_amount;not null"`
	Status             string     `gorm:"column:status;default:pending"`
	PaymentType        *string    `gorm:"column:payment_type"`
	TransactionTime    *string    `gorm:"column:transaction_time"`
	SettlementTime     *string    `gorm:"column:settlement_time"`
	RawResponse        string     `gorm:"column:raw_response;type:text"`
	PaymentConfirmedAt *time.Time `gorm:"column:payment_confirmed_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (transactionRow) TableName() string {
	return "transactions"
}

type bookingRow struct {
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
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingRow) TableName() string {
	return "bookings"
}

var _ = Describe("Notification Reconciliation Integration", func() {
	const serverKey = "integration-server-key"

	var (
		db              *gorm.DB
		transactionRepo paymentpkg.RepositoryAPI
		bookingRepo     paymentpkg.BookingConfirmer
		handler         *paymentpkg.WebhookHandler
	)

	seedOrder := func(orderID string, amount int64, withBooking bool) {
		err := transactionRepo.Create(&transaction.Transaction{
			OrderID:     orderID,
			GrossAmount: amount,
			Status:      "pending",
		})
		Expect(err).NotTo(HaveOccurred())

		if withBooking {
			err = db.Create(&bookingRow{
				OrderID:       orderID,
				CustomerID:    1,
				CompanionID:   2,
				ServiceID:     "rent-a-lover",
				Duration:      2,
				DurationUnit:  "weeks",
				AmountIDR:     amount,
				PaymentStatus: bookingmodel.PaymentStatusPending,
				BookingStatus: bookingmodel.StatusPending,
			}).Error
			Expect(err).NotTo(HaveOccurred())
		}
	}

	postNotification := func(body map[string]string) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/notification", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		handler.HandleNotification(recorder, req)
		return recorder
	}

	signedNotification := func(orderID, grossAmount, transactionStatus string) map[string]string {
		return map[string]string{
			"order_id":           orderID,
			"status_code":        "200",
			"gross_amount":       grossAmount,
			"signature_key":      signFor(orderID, "200", grossAmount, serverKey),
			"transaction_status": transactionStatus,
			"payment_type":       "bank_transfer",
			"transaction_time":   "2025-06-01 10:00:00",
		}
	}

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&transactionRow{}, &bookingRow{})
		Expect(err).NotTo(HaveOccurred())

		transactionRepo = paymentPostgres.NewTransactionRepository(db)
		bookingRepo = bookingPostgres.NewBookingRepository(db)

		verifier := paymentpkg.NewSignatureVerifier(serverKey)
		eventBus := events.NewEventBus(slogger)
		service := paymentpkg.NewService(verifier, transactionRepo, bookingRepo, eventBus, slogger)
		handler = paymentpkg.NewWebhookHandler(transport.NewBaseHandler(slogger), service, slogger)
	})

	Context("when a settlement arrives for a booked order", func() {
		It("should mark the transaction paid and confirm the booking", func() {
			seedOrder("ORD-1", 4900000, true)

			recorder := postNotification(signedNotification("ORD-1", "4900000.00", "settlement"))

			Expect(recorder.Code).To(Equal(http.StatusOK))

			t, err := transactionRepo.GetByOrderID("ORD-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal("paid"))
			Expect(t.PaymentConfirmedAt).NotTo(BeNil())

			var b bookingRow
			Expect(db.Where("order_id = ?", "ORD-1").First(&b).Error).NotTo(HaveOccurred())
			Expect(b.PaymentStatus).To(Equal(bookingmodel.PaymentStatusPaid))
			Expect(b.BookingStatus).To(Equal(bookingmodel.StatusConfirmed))
		})

		It("should absorb a replayed notification without changing the outcome", func() {
			seedOrder("ORD-1", 4900000, true)
			notification := signedNotification("ORD-1", "4900000.00", "settlement")

			first := postNotification(notification)
			Expect(first.Code).To(Equal(http.StatusOK))

			confirmedAfterFirst, err := transactionRepo.GetByOrderID("ORD-1")
			Expect(err).NotTo(HaveOccurred())

			second := postNotification(notification)
			Expect(second.Code).To(Equal(http.StatusOK))
			Expect(second.Body.String()).To(Equal(first.Body.String()))

			confirmedAfterSecond, err := transactionRepo.GetByOrderID("ORD-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(confirmedAfterSecond.Status).To(Equal("paid"))
			Expect(confirmedAfterSecond.PaymentConfirmedAt.UnixNano()).To(Equal(confirmedAfterFirst.PaymentConfirmedAt.UnixNano()))
		})
	})

	Context("when the order has no booking yet", func() {
		It("should still mark the transaction paid", func() {
			seedOrder("ORD-2", 100000, false)

			recorder := postNotification(signedNotification("ORD-2", "100000.00", "settlement"))

			Expect(recorder.Code).To(Equal(http.StatusOK))

			t, err := transactionRepo.GetByOrderID("ORD-2")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal("paid"))
		})
	})

	Context("when the gross amount was tampered with", func() {
		It("should reject with 403 and leave the transaction untouched", func() {
			seedOrder("ORD-3", 100000, true)

			notification := signedNotification("ORD-3", "100000.00", "settlement")
			notification["gross_amount"] = "1.00"

			recorder := postNotification(notification)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))

			t, err := transactionRepo.GetByOrderID("ORD-3")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal("pending"))

			var b bookingRow
			Expect(db.Where("order_id = ?", "ORD-3").First(&b).Error).NotTo(HaveOccurred())
			Expect(b.BookingStatus).To(Equal(bookingmodel.StatusPending))
		})
	})

	Context("when a failure status arrives", func() {
		It("should mark the transaction failed and keep the booking pending", func() {
			seedOrder("ORD-4", 100000, true)

			recorder := postNotification(signedNotification("ORD-4", "100000.00", "expire"))

			Expect(recorder.Code).To(Equal(http.StatusOK))

			t, err := transactionRepo.GetByOrderID("ORD-4")
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Status).To(Equal("failed"))
			Expect(t.PaymentConfirmedAt).To(BeNil())

			var b bookingRow
			Expect(db.Where("order_id = ?", "ORD-4").First(&b).Error).NotTo(HaveOccurred())
			Expect(b.BookingStatus).To(Equal(bookingmodel.StatusPending))
		})
	})

	Context("when the order id is unknown", func() {
		It("should reject with 404", func() {
			recorder := postNotification(signedNotification("ORD-ghost", "100000.00", "settlement"))

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})
	})
})
