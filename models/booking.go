package models

import "time"

// Booking statuses. There is no enforced transition graph: any status may be
// written via update. Cancelled bookings are excluded from conflict checks.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// DefaultDurationHours is used when a booking request does not supply one.
const DefaultDurationHours = 2

type Booking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	User          User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TableID       uint      `gorm:"not null;index" json:"table_id"`
	Table         Table     `gorm:"foreignKey:TableID" json:"table,omitempty"`
	BookingDate   string    `gorm:"type:varchar(10);not null;index" json:"booking_date"`
	BookingTime   string    `gorm:"type:varchar(5);not null" json:"booking_time"`
	DurationHours int       `gorm:"not null;default:2" json:"duration_hours"`
	GuestsCount   int       `gorm:"not null" json:"guests_count"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Notes         string    `gorm:"type:text;not null;default:''" json:"notes"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// ValidBookingStatus reports whether status is one of the known booking statuses.
func ValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}
