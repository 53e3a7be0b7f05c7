package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"table-booking-backend/events"
	"table-booking-backend/models"
	"table-booking-backend/services"
	"table-booking-backend/utils"
)

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
}

func NewBookingController(db *gorm.DB, service *services.BookingService) *BookingController {
	return &BookingController{DB: db, Service: service}
}

// CreateBooking -> admit a slot through the booking service
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req struct {
		UserID        uint    `json:"user_id" binding:"required"`
		TableID       uint    `json:"table_id" binding:"required"`
		BookingDate   string  `json:"booking_date" binding:"required"`
		BookingTime   string  `json:"booking_time" binding:"required"`
		GuestsCount   int     `json:"guests_count" binding:"required"`
		Status        string  `json:"status"`
		Notes         *string `json:"notes"`
		DurationHours int     `json:"duration_hours"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.CreateBooking(services.CreateBookingInput{
		UserID:        req.UserID,
		TableID:       req.TableID,
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		GuestsCount:   req.GuestsCount,
		Status:        req.Status,
		Notes:         req.Notes,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastBookingCreate(*booking)

	utils.InfoLogger.Printf("Booking %d created: table %d on %s at %s",
		booking.ID, booking.TableID, booking.BookingDate, booking.BookingTime)
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", booking)
}

// GetAllBookings -> list bookings with optional filters
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	q := bc.DB.Model(&models.Booking{}).Preload("User").Preload("Table")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("booking_date = ?", date)
	}
	if userID := c.Query("user_id"); userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if tableID := c.Query("table_id"); tableID != "" {
		q = q.Where("table_id = ?", tableID)
	}
	q = q.Order("booking_date DESC, booking_time DESC")
	q = applyLimitOffset(q, c)

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> single booking with its user and table
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	bookingID := c.Param("booking_id")
	var booking models.Booking
	if err := bc.DB.Preload("User").Preload("Table").First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBooking -> typed patch through the booking service; a patch touching
// the slot re-runs the availability check
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, ok := parseID(c, "booking_id")
	if !ok {
		return
	}

	var patch services.BookingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking, err := bc.Service.UpdateBooking(bookingID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastBookingUpdate(*booking)

	utils.InfoLogger.Printf("Booking %d updated (status=%s)", booking.ID, booking.Status)
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// DeleteBooking -> remove a booking row
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")
	var booking models.Booking

	if err := bc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := bc.DB.Delete(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastBookingDelete(booking.ID)

	utils.InfoLogger.Printf("Booking %d deleted", booking.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking deleted", gin.H{"id": booking.ID})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+param))
		return 0, false
	}
	return uint(id), true
}
