package cmd

import (
	"fmt"
	"os"

	bookingmodel "github.com/frahmantamala/companion-booking/internal/core/datamodel/booking"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/customer"
	"github.com/frahmantamala/companion-booking/internal/core/datamodel/transaction"
	"github.com/frahmantamala/companion-booking/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed development data",
	Long:  `Insert demo customers, transactions, and bookings for local development`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeeder()
	},
}

func runSeeder() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.LoggerWrapper()

	sqlxDB, err := sqlx.Connect("pgx", config.Database.Source)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer sqlxDB.Close()

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
	if err != nil {
		log.Error("failed to open gorm connection", "error", err)
		os.Exit(1)
	}

	if clearData {
		log.Info("clearing existing data")
		for _, table := range []string{"bookings", "transactions", "customers"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				log.Error("failed to clear table", "table", table, "error", err)
				os.Exit(1)
			}
		}
	}

	customers := []customer.Customer{
		{Name: "Dina Ayu", Phone: "+6281234567001", IsVerified: true},
		{Name: "Raka Pratama", Phone: "+6281234567002", IsVerified: false},
	}
	for i := range customers {
		if err := db.Create(&customers[i]).Error; err != nil {
			log.Error("failed to seed customer", "error", err, "name", customers[i].Name)
			os.Exit(1)
		}
	}

	transactions := []transaction.Transaction{
		{OrderID: "ORDER-SEED-1", GrossAmount: 4900000, Status: "pending"},
		{OrderID: "ORDER-SEED-2", GrossAmount: 1000000, Status: "pending"},
	}
	for i := range transactions {
		if err := db.Create(&transactions[i]).Error; err != nil {
			log.Error("failed to seed transaction", "error", err, "order_id", transactions[i].OrderID)
			os.Exit(1)
		}
	}

	bookings := []bookingmodel.Booking{
		{
			OrderID:       "ORDER-SEED-1",
			CustomerID:    customers[0].ID,
			CompanionID:   101,
			ServiceID:     "rent-a-lover",
			Duration:      2,
			DurationUnit:  "weeks",
			AmountIDR:     4900000,
			PaymentStatus: bookingmodel.PaymentStatusPending,
			BookingStatus: bookingmodel.StatusPending,
		},
		{
			OrderID:       "ORDER-SEED-2",
			CustomerID:    customers[0].ID,
			CompanionID:   102,
			ServiceID:     "offline-date",
			Duration:      6,
			DurationUnit:  "hours",
			AmountIDR:     1000000,
			PaymentStatus: bookingmodel.PaymentStatusPending,
			BookingStatus: bookingmodel.StatusPending,
		},
	}
	for i := range bookings {
		if err := db.Create(&bookings[i]).Error; err != nil {
			log.Error("failed to seed booking", "error", err, "order_id", bookings[i].OrderID)
			os.Exit(1)
		}
	}

	log.Info("seed complete",
		"customers", len(customers),
		"transactions", len(transactions),
		"bookings", len(bookings))
}
