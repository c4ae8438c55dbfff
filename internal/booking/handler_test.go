package booking_test

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
	"github.com/go-chi/chi"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	bookingpkg "github.com/frahmantamala/companion-booking/internal/booking"
	bookingPostgres "github.com/frahmantamala/companion-booking/internal/booking/postgres"
	paymentPostgres "github.com/frahmantamala/companion-booking/internal/payment/postgres"
	"github.com/frahmantamala/companion-booking/internal/transport"
)

// sqlite-compatible copies of the persistence schema, jsonb and now()
// defaults replaced.
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

type customerRow struct {
	ID         int64     `gorm:"primaryKey"`
	Name       string    `gorm:"column:name;not null"`
	Phone      string    `gorm:"column:phone"`
	IsVerified bool      `gorm:"column:is_verified;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (customerRow) TableName() string {
	return "customers"
}

var _ = Describe("Booking Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *bookingpkg.Handler
		router  chi.Router
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&transactionRow{}, &bookingRow{}, &customerRow{})
		Expect(err).NotTo(HaveOccurred())

		customers := []customerRow{
			{ID: 1, Name: "Ayu", Phone: "+628111111111", IsVerified: true},
			{ID: 2, Name: "Budi", Phone: "+628122222222", IsVerified: false},
		}
		Expect(db.Create(&customers).Error).NotTo(HaveOccurred())

		bookingRepo := bookingPostgres.NewBookingRepository(db)
		transactionRepo := paymentPostgres.NewTransactionRepository(db)
		verificationRepo := bookingPostgres.NewVerificationRepository(db)

		service := bookingpkg.NewService(bookingRepo, transactionRepo, verificationRepo, slogger)
		handler = bookingpkg.NewHandler(&transport.BaseHandler{Logger: slogger}, service, slogger)

		router = chi.NewRouter()
		router.Post("/api/v1/bookings", handler.CreateBooking)
		router.Get("/api/v1/bookings/{id}", handler.GetBooking)
	})

	createBooking := func(payload map[string]interface{}) *httptest.ResponseRecorder {
		raw, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		return recorder
	}

	Describe("POST /api/v1/bookings", func() {
		Context("with a valid request", func() {
			It("should create the booking with its pending transaction", func() {
				recorder := createBooking(map[string]interface{}{
					"customer_id":   2,
					"companion_id":  5,
					"service_id":    "rent-a-lover",
					"duration":      2,
					"duration_unit": "weeks",
				})

				Expect(recorder.Code).To(Equal(http.StatusCreated))

				var view bookingpkg.BookingView
				Expect(json.Unmarshal(recorder.Body.Bytes(), &view)).To(Succeed())
				Expect(view.AmountIDR).To(Equal(int64(4900000)))
				Expect(view.PaymentStatus).To(Equal("pending"))
				Expect(view.BookingStatus).To(Equal("pending"))
				Expect(view.OrderID).To(HavePrefix("ORDER-"))

				var t transactionRow
				Expect(db.Where("order_id = ?", view.OrderID).First(&t).Error).NotTo(HaveOccurred())
				Expect(t.GrossAmount).To(Equal(int64(4900000)))
				Expect(t.Status).To(Equal("pending"))
			})
		})

		Context("with a restricted service", func() {
			It("should allow a verified customer", func() {
				recorder := createBooking(map[string]interface{}{
					"customer_id":   1,
					"companion_id":  5,
					"service_id":    "offline-date",
					"duration":      4,
					"duration_unit": "hours",
				})

				Expect(recorder.Code).To(Equal(http.StatusCreated))

				var view bookingpkg.BookingView
				Expect(json.Unmarshal(recorder.Body.Bytes(), &view)).To(Succeed())
				Expect(view.AmountIDR).To(Equal(int64(1000000)))
			})

			It("should reject an unverified customer with 403", func() {
				recorder := createBooking(map[string]interface{}{
					"customer_id":   2,
					"companion_id":  5,
					"service_id":    "offline-date",
					"duration":      4,
					"duration_unit": "hours",
				})

				Expect(recorder.Code).To(Equal(http.StatusForbidden))
			})
		})

		Context("with an unknown service", func() {
			It("should reject with 400", func() {
				recorder := createBooking(map[string]interface{}{
					"customer_id":   1,
					"companion_id":  5,
					"service_id":    "dog-walking",
					"duration":      2,
					"duration_unit": "hours",
				})

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})

		Context("with a malformed body", func() {
			It("should reject with 400", func() {
				req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte(`{`)))
				recorder := httptest.NewRecorder()
				router.ServeHTTP(recorder, req)

				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("GET /api/v1/bookings/{id}", func() {
		It("should return an existing booking", func() {
			created := createBooking(map[string]interface{}{
				"customer_id":   1,
				"companion_id":  5,
				"service_id":    "gamemate",
				"duration":      3,
				"duration_unit": "hours",
			})
			Expect(created.Code).To(Equal(http.StatusCreated))

			var view bookingpkg.BookingView
			Expect(json.Unmarshal(created.Body.Bytes(), &view)).To(Succeed())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))

			var fetched bookingpkg.BookingView
			Expect(json.Unmarshal(recorder.Body.Bytes(), &fetched)).To(Succeed())
			Expect(fetched.ServiceID).To(Equal("gamemate"))
			Expect(fetched.AmountIDR).To(Equal(int64(150000)))
		})

		It("should return 404 for an unknown booking", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/999", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should return 400 for a non numeric id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/abc", nil)
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
