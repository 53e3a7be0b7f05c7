package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"table-booking-backend/models"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookingService is the admission core: it decides whether a requested
// (table, date, time, duration) slot may become a persisted booking.
//
// The availability check and the insert run inside a single transaction, so
// two callers racing for the same slot cannot both get a booking.
type BookingService struct {
	db *gorm.DB

	// ConflictWindow is the width assumed for an existing booking's interval
	// when comparing it against a candidate slot. UseBookingDuration switches
	// to each booking's own stored duration instead.
	ConflictWindow     time.Duration
	UseBookingDuration bool
}

// NewBookingService creates a BookingService with the default two-hour
// conflict window.
func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{
		db:             db,
		ConflictWindow: time.Duration(models.DefaultDurationHours) * time.Hour,
	}
}

// CreateBookingInput carries the fields for a new booking request.
// DurationHours and Status fall back to their defaults when unset.
type CreateBookingInput struct {
	UserID        uint
	TableID       uint
	BookingDate   string
	BookingTime   string
	GuestsCount   int
	Status        string
	Notes         *string
	DurationHours int
}

// BookingPatch enumerates the updatable booking fields. Nil means "leave
// unchanged". ID and timestamps are never updatable.
type BookingPatch struct {
	TableID       *uint   `json:"table_id"`
	BookingDate   *string `json:"booking_date"`
	BookingTime   *string `json:"booking_time"`
	DurationHours *int    `json:"duration_hours"`
	GuestsCount   *int    `json:"guests_count"`
	Status        *string `json:"status"`
	Notes         *string `json:"notes"`
}

// slotFields reports whether the patch touches anything that affects the
// overlap check.
func (p *BookingPatch) slotFields() bool {
	return p.TableID != nil || p.BookingDate != nil || p.BookingTime != nil || p.DurationHours != nil
}

// CheckAvailability reports whether the table can take a booking at the given
// slot. It fails with ErrTableNotFound / ErrTableUnavailable before the
// overlap scan is ever reached.
func (s *BookingService) CheckAvailability(tableID uint, bookingDate, bookingTime string, durationHours int) (bool, error) {
	if durationHours <= 0 {
		durationHours = models.DefaultDurationHours
	}
	return s.checkAvailability(s.db, tableID, bookingDate, bookingTime, durationHours, 0)
}

// CreateBooking admits the slot and persists the booking in one transaction.
// On conflict nothing is written and the caller may retry with another slot.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	if in.DurationHours == 0 {
		in.DurationHours = models.DefaultDurationHours
	}
	if in.Status == "" {
		in.Status = models.BookingStatusPending
	}
	if !models.ValidBookingStatus(in.Status) {
		return nil, &ValidationError{Field: "status", Reason: "unknown status " + in.Status}
	}
	if in.GuestsCount <= 0 {
		return nil, &ValidationError{Field: "guests_count", Reason: "must be positive"}
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, in.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		ok, err := s.checkAvailability(tx, in.TableID, in.BookingDate, in.BookingTime, in.DurationHours, 0)
		if err != nil {
			return err
		}
		if !ok {
			var table models.Table
			tx.First(&table, in.TableID)
			return &ConflictError{
				TableNumber: table.TableNumber,
				BookingDate: in.BookingDate,
				BookingTime: in.BookingTime,
			}
		}

		booking = models.Booking{
			UserID:        in.UserID,
			TableID:       in.TableID,
			BookingDate:   in.BookingDate,
			BookingTime:   in.BookingTime,
			DurationHours: in.DurationHours,
			GuestsCount:   in.GuestsCount,
			Status:        in.Status,
			Notes:         normalizeNotes(in.Notes),
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking applies a typed patch. A patch touching table, date, time or
// duration re-runs the availability check with the booking itself excluded.
func (s *BookingService) UpdateBooking(bookingID uint, patch BookingPatch) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		if patch.TableID != nil {
			booking.TableID = *patch.TableID
		}
		if patch.BookingDate != nil {
			booking.BookingDate = *patch.BookingDate
		}
		if patch.BookingTime != nil {
			booking.BookingTime = *patch.BookingTime
		}
		if patch.DurationHours != nil {
			if *patch.DurationHours <= 0 {
				return &ValidationError{Field: "duration_hours", Reason: "must be positive"}
			}
			booking.DurationHours = *patch.DurationHours
		}
		if patch.GuestsCount != nil {
			if *patch.GuestsCount <= 0 {
				return &ValidationError{Field: "guests_count", Reason: "must be positive"}
			}
			booking.GuestsCount = *patch.GuestsCount
		}
		if patch.Status != nil {
			if !models.ValidBookingStatus(*patch.Status) {
				return &ValidationError{Field: "status", Reason: "unknown status " + *patch.Status}
			}
			booking.Status = *patch.Status
		}
		if patch.Notes != nil {
			booking.Notes = normalizeNotes(patch.Notes)
		}

		if patch.slotFields() && booking.Status != models.BookingStatusCancelled {
			ok, err := s.checkAvailability(tx, booking.TableID, booking.BookingDate, booking.BookingTime, booking.DurationHours, booking.ID)
			if err != nil {
				return err
			}
			if !ok {
				var table models.Table
				tx.First(&table, booking.TableID)
				return &ConflictError{
					TableNumber: table.TableNumber,
					BookingDate: booking.BookingDate,
					BookingTime: booking.BookingTime,
				}
			}
		}

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// checkAvailability runs on the caller's handle so CreateBooking can keep the
// check and the insert in the same transaction.
func (s *BookingService) checkAvailability(tx *gorm.DB, tableID uint, bookingDate, bookingTime string, durationHours int, excludeID uint) (bool, error) {
	candStart, err := combineDateTime(bookingDate, bookingTime)
	if err != nil {
		return false, err
	}
	if durationHours <= 0 {
		return false, &ValidationError{Field: "duration_hours", Reason: "must be positive"}
	}
	candEnd := candStart.Add(time.Duration(durationHours) * time.Hour)

	var table models.Table
	if err := tx.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTableNotFound
		}
		return false, err
	}
	if !table.IsAvailable {
		return false, ErrTableUnavailable
	}

	var existing []models.Booking
	q := tx.Where("table_id = ? AND booking_date = ? AND status <> ?",
		tableID, bookingDate, models.BookingStatusCancelled)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return false, err
	}

	for _, b := range existing {
		start, err := combineDateTime(b.BookingDate, b.BookingTime)
		if err != nil {
			continue
		}
		end := start.Add(s.conflictWindow(b))
		// Half-open intervals: touching endpoints do not conflict.
		if start.Before(candEnd) && end.After(candStart) {
			return false, nil
		}
	}
	return true, nil
}

func (s *BookingService) conflictWindow(b models.Booking) time.Duration {
	if s.UseBookingDuration && b.DurationHours > 0 {
		return time.Duration(b.DurationHours) * time.Hour
	}
	return s.ConflictWindow
}

func combineDateTime(bookingDate, bookingTime string) (time.Time, error) {
	d, err := time.Parse(dateLayout, bookingDate)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "booking_date", Reason: "expected YYYY-MM-DD"}
	}
	t, err := time.Parse(timeLayout, bookingTime)
	if err != nil {
		// TIME columns round-trip with seconds on some drivers.
		t, err = time.Parse("15:04:05", bookingTime)
		if err != nil {
			return time.Time{}, &ValidationError{Field: "booking_time", Reason: "expected HH:MM"}
		}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// normalizeNotes guarantees notes is always a string: nil becomes the empty
// string, anything else is trimmed.
func normalizeNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return strings.TrimSpace(*notes)
}
