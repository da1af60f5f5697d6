package routes

import (
	"net/http"
	"time"

	userRepo "reservio/database/repository/user"
	"reservio/handlers"
	"reservio/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers registered on the router.
type HandlerBundle struct {
	UserRepo userRepo.UserRepository

	Booking    *handlers.BookingHandler
	Suggestion *handlers.SuggestionHandler
	Resource   *handlers.ResourceHandler
	TimeBlock  *handlers.TimeBlockHandler
}

// RegisterRoutes wires every endpoint group onto the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/api/users")
	{
		users.POST("/register", handlers.RegisterUserHandler)
		users.POST("/login", handlers.AuthenticateUserHandler)

		users.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		users.GET("/id/:id", handlers.GetUserByIDHandler)
	}

	bookings := r.Group("/api/bookings")
	bookings.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		bookings.POST("", hb.Booking.CreateBooking)
		bookings.GET("/mine", hb.Booking.ListMyBookings)
		bookings.GET("/:id", hb.Booking.GetBooking)
		bookings.PUT("/:id/cancel", hb.Booking.CancelBooking)

		admin := bookings.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.PUT("/:id/status", hb.Booking.UpdateBookingStatus)
		admin.DELETE("/:id", hb.Booking.DeleteBooking)
	}

	suggestions := r.Group("/api/suggestions")
	suggestions.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		suggestions.GET("", hb.Suggestion.Suggest)
	}

	resources := r.Group("/api/resources")
	resources.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		resources.GET("", hb.Resource.ListResources)
		resources.GET("/:id", hb.Resource.GetResource)
		resources.GET("/:id/bookings", hb.Booking.ResourceDaySheet)

		admin := resources.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.POST("", hb.Resource.CreateResource)
		admin.PUT("/:id/status", hb.Resource.UpdateResourceStatus)
	}

	timeblocks := r.Group("/api/timeblocks")
	timeblocks.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		timeblocks.GET("", hb.TimeBlock.ListTimeBlocks)
		timeblocks.GET("/:id", hb.TimeBlock.GetTimeBlock)

		admin := timeblocks.Group("")
		admin.Use(middleware.AdminOnlyMiddleware())
		admin.POST("/seed", hb.TimeBlock.SeedTimeBlocks)
	}
}
