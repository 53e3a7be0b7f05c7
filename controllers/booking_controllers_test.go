package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"table-booking-backend/controllers"
	"table-booking-backend/models"
	"table-booking-backend/services"
)

func setupBookingRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	bookingCtrl := controllers.NewBookingController(db, services.NewBookingService(db))
	router.POST("/bookings", bookingCtrl.CreateBooking)
	router.GET("/bookings", bookingCtrl.GetAllBookings)
	router.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	router.PATCH("/bookings/:booking_id", bookingCtrl.UpdateBooking)
	router.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)
	return router
}

func TestCreateBookingEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	router := setupBookingRouter(db)

	w, response := doJSON(t, router, "POST", "/bookings", map[string]interface{}{
		"user_id":      user.ID,
		"table_id":     table.ID,
		"booking_date": "2025-06-01",
		"booking_time": "18:00",
		"guests_count": 3,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "", data["notes"])
	assert.EqualValues(t, 2, data["duration_hours"])
}

func TestCreateBookingConflictEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	router := setupBookingRouter(db)

	w, _ := doJSON(t, router, "POST", "/bookings", map[string]interface{}{
		"user_id": user.ID, "table_id": table.ID,
		"booking_date": "2025-06-01", "booking_time": "18:00", "guests_count": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, response := doJSON(t, router, "POST", "/bookings", map[string]interface{}{
		"user_id": user.ID, "table_id": table.ID,
		"booking_date": "2025-06-01", "booking_time": "19:00", "guests_count": 2,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, response["message"], "T1")
	assert.Contains(t, response["message"], "2025-06-01")
}

func TestGetAllBookingsFilters(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	t1 := seedTable(t, db, "T1")
	t2 := seedTable(t, db, "T2")
	svc := services.NewBookingService(db)

	_, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: t1.ID,
		BookingDate: "2025-06-01", BookingTime: "18:00", GuestsCount: 2,
	})
	require.NoError(t, err)
	_, err = svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: t2.ID,
		BookingDate: "2025-06-02", BookingTime: "18:00", GuestsCount: 2,
		Status: models.BookingStatusConfirmed,
	})
	require.NoError(t, err)

	router := setupBookingRouter(db)

	w, response := doJSON(t, router, "GET", "/bookings", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 2)

	w, response = doJSON(t, router, "GET", "/bookings?status=confirmed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	w, response = doJSON(t, router, "GET", "/bookings?date=2025-06-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	w, response = doJSON(t, router, "GET", fmt.Sprintf("/bookings?table_id=%d", t2.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)
}

func TestGetBookingByIDPreloadsRelations(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	svc := services.NewBookingService(db)
	booking, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: table.ID,
		BookingDate: "2025-06-01", BookingTime: "18:00", GuestsCount: 2,
	})
	require.NoError(t, err)

	router := setupBookingRouter(db)

	w, response := doJSON(t, router, "GET", fmt.Sprintf("/bookings/%d", booking.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "T1", data["table"].(map[string]interface{})["table_number"])
	assert.Equal(t, "guest1", data["user"].(map[string]interface{})["username"])
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	svc := services.NewBookingService(db)
	booking, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: table.ID,
		BookingDate: "2025-06-01", BookingTime: "18:00", GuestsCount: 2,
	})
	require.NoError(t, err)

	router := setupBookingRouter(db)

	w, response := doJSON(t, router, "PATCH", fmt.Sprintf("/bookings/%d", booking.ID), map[string]interface{}{
		"status": "cancelled",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", response["data"].(map[string]interface{})["status"])

	// The freed slot is immediately bookable again.
	w, _ = doJSON(t, router, "POST", "/bookings", map[string]interface{}{
		"user_id": user.ID, "table_id": table.ID,
		"booking_date": "2025-06-01", "booking_time": "18:00", "guests_count": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateBookingRescheduleConflict(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	svc := services.NewBookingService(db)

	_, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: table.ID,
		BookingDate: "2025-06-01", BookingTime: "18:00", GuestsCount: 2,
	})
	require.NoError(t, err)
	second, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: table.ID,
		BookingDate: "2025-06-01", BookingTime: "21:00", GuestsCount: 2,
	})
	require.NoError(t, err)

	router := setupBookingRouter(db)

	w, _ := doJSON(t, router, "PATCH", fmt.Sprintf("/bookings/%d", second.ID), map[string]interface{}{
		"booking_time": "19:00",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteBookingEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := seedClient(t, db)
	table := seedTable(t, db, "T1")
	svc := services.NewBookingService(db)
	booking, err := svc.CreateBooking(services.CreateBookingInput{
		UserID: user.ID, TableID: table.ID,
		BookingDate: "2025-06-01", BookingTime: "18:00", GuestsCount: 2,
	})
	require.NoError(t, err)

	router := setupBookingRouter(db)

	w, _ := doJSON(t, router, "DELETE", fmt.Sprintf("/bookings/%d", booking.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, "GET", fmt.Sprintf("/bookings/%d", booking.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
