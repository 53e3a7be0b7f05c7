package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"table-booking-backend/events"
	"table-booking-backend/models"
	"table-booking-backend/services"
	"table-booking-backend/utils"
)

type TableController struct {
	DB       *gorm.DB
	Bookings *services.BookingService
	Cache    *cache.Cache // flushed on mutation, may be nil
}

func NewTableController(db *gorm.DB, bookings *services.BookingService, store *cache.Cache) *TableController {
	return &TableController{DB: db, Bookings: bookings, Cache: store}
}

func (tc *TableController) flushCache() {
	if tc.Cache != nil {
		tc.Cache.Flush()
	}
}

// CreateTable -> add a new table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string  `json:"table_number" binding:"required"`
		Capacity    int     `json:"capacity" binding:"required"`
		Location    *string `json:"location"`
		IsAvailable *bool   `json:"is_available"` // optional, default true
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Capacity <= 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Location:    req.Location,
		IsAvailable: true,
		Description: req.Description,
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.flushCache()
	events.BroadcastTableCreate(table)

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> list tables with optional filters
func (tc *TableController) GetAllTables(c *gin.Context) {
	q := tc.DB.Model(&models.Table{})
	if c.Query("available_only") == "true" {
		q = q.Where("is_available = ?", true)
	}
	if location := c.Query("location"); location != "" {
		q = q.Where("location = ?", location)
	}
	if number := c.Query("number"); number != "" {
		q = q.Where("table_number = ?", number)
	}
	q = q.Order("table_number ASC")
	q = applyLimitOffset(q, c)

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> single table detail
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CheckAvailability -> probe a slot without creating a booking
func (tc *TableController) CheckAvailability(c *gin.Context) {
	tableID, err := strconv.ParseUint(c.Param("table_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table id"))
		return
	}

	bookingDate := c.Query("date")
	bookingTime := c.Query("time")
	if bookingDate == "" || bookingTime == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date and time query params are required"))
		return
	}

	duration := 0
	if v := c.Query("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid duration"))
			return
		}
	}

	available, err := tc.Bookings.CheckAvailability(uint(tableID), bookingDate, bookingTime, duration)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability checked", gin.H{
		"table_id":  tableID,
		"date":      bookingDate,
		"time":      bookingTime,
		"available": available,
	})
}

// UpdateTable -> apply a typed patch; id and timestamps are not updatable
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type patch struct {
		TableNumber *string `json:"table_number"`
		Capacity    *int    `json:"capacity"`
		Location    *string `json:"location"`
		IsAvailable *bool   `json:"is_available"`
		Description *string `json:"description"`
	}
	var req patch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity must be positive"))
			return
		}
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = req.Location
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}
	if req.Description != nil {
		table.Description = req.Description
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.flushCache()
	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d updated (available=%t)", table.ID, table.IsAvailable)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> refuse while bookings still reference the table
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table

	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var refs int64
	if err := tc.DB.Model(&models.Booking{}).Where("table_id = ?", table.ID).Count(&refs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if refs > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("table still has bookings, delete them first"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	tc.flushCache()
	events.BroadcastTableDelete(table.ID)

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
