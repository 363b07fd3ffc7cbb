package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/foodshop/backend/config"
	"github.com/foodshop/backend/controllers"
	"github.com/foodshop/backend/middlewares"
	"github.com/foodshop/backend/models"
	"github.com/foodshop/backend/services"
)

// Setup wires every route tree. All business routes live under /api;
// uploaded images are served statically under /uploads.
func Setup(db *gorm.DB, cfg config.Config, gateway services.PaymentGateway) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORS())

	// Global per-IP limit; signup/login carry a stricter one below.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.Limit())

	uploader := services.NewUploader(cfg.UploadDir, cfg.PublicBaseURL)

	authCtrl := controllers.NewAuthController(db)
	cartCtrl := controllers.NewCartController(db)
	itemCtrl := controllers.NewItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, gateway)
	reviewCtrl := controllers.NewReviewController(db)
	bookingCtrl := controllers.NewBookingController(db)
	adminUserCtrl := controllers.NewAdminUserController(db)
	adminOrderCtrl := controllers.NewAdminOrderController(db)
	adminMenuCtrl := controllers.NewAdminMenuController(db, uploader)

	adminOnly := middlewares.RequireRoles(models.RoleAdmin)

	r.Static("/uploads/items", cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middlewares.NewAuthRateLimiter())
	{
		auth.POST("/signup", authCtrl.Signup)
		auth.POST("/login", authCtrl.Login)
	}

	// Public menu browsing and approved reviews.
	api.GET("/items", itemCtrl.ListItems)
	api.GET("/reviews/item/:id", reviewCtrl.GetItemReviews)

	cart := api.Group("/cart")
	cart.Use(middlewares.Auth())
	{
		cart.GET("", cartCtrl.GetCart)
		cart.PUT("", cartCtrl.UpdateCart)
		cart.POST("/add", cartCtrl.AddToCart)
		cart.DELETE("/clear", cartCtrl.ClearCart)
	}

	orders := api.Group("/orders")
	orders.Use(middlewares.Auth())
	{
		orders.POST("/place", orderCtrl.PlaceOrder)
		orders.GET("/history", orderCtrl.GetOrderHistory)
		orders.POST("/status/explain", orderCtrl.ExplainStatus)
	}

	payments := api.Group("/payments")
	payments.Use(middlewares.Auth())
	{
		payments.POST("/initiate", paymentCtrl.InitiatePayment)
		payments.GET("/complete/:paymentId", paymentCtrl.CompletePayment)
		payments.GET("/status/:paymentId", paymentCtrl.GetPaymentStatus)
	}

	bookings := api.Group("/bookings")
	bookings.Use(middlewares.Auth())
	{
		bookings.POST("", bookingCtrl.CreateBooking)
		bookings.GET("/my", bookingCtrl.GetMyBookings)
		bookings.GET("/all", adminOnly, bookingCtrl.GetAllBookings)
		bookings.DELETE("/:id", bookingCtrl.CancelBooking)
	}

	reviews := api.Group("/reviews")
	reviews.Use(middlewares.Auth())
	{
		reviews.POST("", reviewCtrl.CreateReview)
		reviews.GET("", adminOnly, reviewCtrl.GetAllReviews)
		reviews.PATCH("/:id/status", adminOnly, reviewCtrl.UpdateReviewStatus)
		reviews.DELETE("/:id", adminOnly, reviewCtrl.DeleteReview)
	}

	admin := api.Group("/admin")
	admin.Use(middlewares.Auth(), adminOnly)
	{
		menu := admin.Group("/menu")
		{
			menu.GET("", adminMenuCtrl.ListItems)
			menu.POST("/save", adminMenuCtrl.SaveItem)
			menu.PATCH("/:id", adminMenuCtrl.UpdateItem)
			menu.DELETE("/:id", adminMenuCtrl.DeleteItem)
		}

		adminOrders := admin.Group("/orders")
		{
			adminOrders.GET("", adminOrderCtrl.GetAllOrders)
			adminOrders.GET("/stats", adminOrderCtrl.GetOrderStats)
			adminOrders.PATCH("/:orderId/status", adminOrderCtrl.UpdateOrderStatus)
		}

		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", adminUserCtrl.GetAllUsers)
			adminUsers.GET("/stats", adminUserCtrl.GetUserStats)
			adminUsers.GET("/:userId", adminUserCtrl.GetUserByID)
			adminUsers.POST("", adminUserCtrl.CreateUser)
			adminUsers.PATCH("/:userId/role", adminUserCtrl.UpdateUserRole)
			adminUsers.DELETE("/:userId", adminUserCtrl.DeleteUser)
		}

		admin.GET("/payments", paymentCtrl.ListPayments)
	}

	return r
}
