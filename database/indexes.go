package database

import (
	"gorm.io/gorm"

	"table-booking-backend/utils"
)

// EnsureIndexes creates the lookup indexes the booking queries depend on.
// AutoMigrate covers columns and unique constraints; these are the plain
// secondary indexes.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		"CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_table_id ON bookings(table_id)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)",
		"CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(booking_date)",
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating index: %v\nStatement: %s", err, stmt)
			return err
		}
	}

	utils.InfoLogger.Println("Booking indexes ensured.")
	return nil
}
