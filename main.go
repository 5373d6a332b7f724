package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/StockRoom/controllers"
	"github.com/StockRoom/initializers"
	"github.com/StockRoom/middlewares"
	"github.com/StockRoom/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	clientURL := os.Getenv("CLIENT_URL")
	if clientURL == "" {
		clientURL = "http://localhost:3000"
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{clientURL}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP() + c.FullPath()
	}

	// Health check
	router.GET("/", func(c *gin.Context) {
		c.String(200, "API is running...")
	})

	router.POST("/api/auth/signup", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserSignup)
	router.POST("/api/auth/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.UserLogin)

	// Password reset endpoints
	router.POST("/api/auth/forgot-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ForgotPassword)
	router.POST("/api/auth/reset-password/:token", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.ResetPassword)

	auth := router.Group("/api")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// user routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		// notification routes
		auth.GET("/users/:user_profile_id/notifications", controllers.GetUserNotifications)
		auth.PATCH("/users/:user_profile_id/notifications/mark-all-read", controllers.MarkAllNotificationsAsRead)

		// inventory routes
		auth.GET("/inventory", controllers.GetInventory)
		auth.GET("/inventory/filter", controllers.FilterInventory)
		auth.POST("/inventory/add", controllers.AddInventoryItem)
		auth.PUT("/inventory/edit/:id", controllers.UpdateInventoryItem)
		auth.DELETE("/inventory/delete/:id", controllers.DeleteInventoryItem)

		// request routes
		auth.POST("/requests", controllers.SubmitRequests)
		auth.GET("/requests", controllers.GetAllRequests)
		auth.GET("/requests/user/:username", controllers.GetUserRequests)
		auth.GET("/requests/pending", controllers.GetPendingRequests)
		auth.PUT("/requests/approve/:id", controllers.ApproveRequest)
		auth.PUT("/requests/reject/:id", controllers.RejectRequest)
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
