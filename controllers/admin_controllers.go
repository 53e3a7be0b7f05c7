package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"table-booking-backend/models"
	"table-booking-backend/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats -> table availability counts plus today's bookings by status
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var totalTables, availableTables int64
	ac.DB.Model(&models.Table{}).Count(&totalTables)
	ac.DB.Model(&models.Table{}).Where("is_available = ?", true).Count(&availableTables)

	today := time.Now().Format("2006-01-02")
	bookingsToday := map[string]int64{}
	for _, status := range []string{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	} {
		var n int64
		ac.DB.Model(&models.Booking{}).
			Where("booking_date = ? AND status = ?", today, status).
			Count(&n)
		bookingsToday[status] = n
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"tables": gin.H{
			"total":     totalTables,
			"available": availableTables,
			"offline":   totalTables - availableTables,
		},
		"bookings_today": bookingsToday,
		"date":           today,
	})
}
