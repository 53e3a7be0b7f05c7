package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"table-booking-backend/controllers"
	"table-booking-backend/middlewares"
	"table-booking-backend/models"
	"table-booking-backend/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	bookingService := services.NewBookingService(db)
	tableCache := cache.New(5*time.Second, time.Minute)

	userCtrl := controllers.NewUserController(db)
	tableCtrl := controllers.NewTableController(db, bookingService, tableCache)
	bookingCtrl := controllers.NewBookingController(db, bookingService)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Guests browse tables and probe availability without logging in. The
	// availability probe is never cached, its answer changes on every booking.
	tables := r.Group("/tables")
	{
		cached := tables.Group("")
		cached.Use(middlewares.Cache(tableCache, 5*time.Second))
		cached.GET("", tableCtrl.GetAllTables)
		cached.GET("/:table_id", tableCtrl.GetTableByID)

		tables.GET("/:table_id/availability", tableCtrl.CheckAvailability)
	}

	// Booking creation goes through the admission service.
	r.POST("/bookings", bookingCtrl.CreateBooking)
	r.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)

	// Live table/booking updates for dashboards.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("/events", controllers.EventsHandler)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// USERS (admin/manager)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.GET("/users/:user_id", userCtrl.GetUserByID)
	auth.PATCH("/users/:user_id", middlewares.RequireRole(models.RoleManager), userCtrl.UpdateUser)
	auth.DELETE("/users/:user_id", middlewares.RequireRole(), userCtrl.DeleteUser)

	// TABLES (admin/manager)
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.POST("/tables", middlewares.RequireRole(models.RoleManager), tableCtrl.CreateTable)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id", middlewares.RequireRole(models.RoleManager), tableCtrl.UpdateTable)
	auth.DELETE("/tables/:table_id", middlewares.RequireRole(), tableCtrl.DeleteTable)

	// BOOKINGS (admin/manager)
	auth.GET("/bookings", bookingCtrl.GetAllBookings)
	auth.POST("/bookings", bookingCtrl.CreateBooking)
	auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
	auth.PATCH("/bookings/:booking_id", middlewares.RequireRole(models.RoleManager), bookingCtrl.UpdateBooking)
	auth.DELETE("/bookings/:booking_id", middlewares.RequireRole(models.RoleManager), bookingCtrl.DeleteBooking)

	// DASHBOARD (admin/manager)
	auth.GET("/dashboard/stats", middlewares.RequireRole(models.RoleManager), adminCtrl.GetDashboardStats)

	return r
}
