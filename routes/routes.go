package routes

import (
	"os"
	"strings"

	"boothmarket-backend/config"
	"boothmarket-backend/controllers"
	"boothmarket-backend/models"
	"boothmarket-backend/session"
	"boothmarket-backend/store"
	"boothmarket-backend/utils"
	"boothmarket-backend/views"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(st store.Store, sessions *session.Manager, registry *views.Registry) *gin.Engine {
	r := gin.Default()

	allowed := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowed = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	authController := &controllers.AuthController{Sessions: sessions}
	boothController := &controllers.BoothController{Views: registry}
	productController := &controllers.ProductController{Views: registry, Store: st}
	orderController := &controllers.OrderController{Views: registry}
	messageController := &controllers.MessageController{Views: registry}
	dashboardController := &controllers.DashboardController{Views: registry, Store: st}

	auth := r.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(authController.Middleware())
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", authController.Me)
	}

	api := r.Group("/api")
	api.Use(authController.Middleware())
	{
		admin := api.Group("/")
		admin.Use(utils.RequireRole(models.RoleAdmin))
		{
			booths := admin.Group("/booths")
			{
				booths.GET("", boothController.GetBooths)
				booths.POST("", boothController.CreateBooth)
				booths.GET("/:id", boothController.GetBooth)
				booths.PUT("/:id", boothController.UpdateBooth)
				booths.DELETE("/:id", boothController.DeleteBooth)
				booths.PUT("/:id/staff", boothController.AssignStaff)
			}

			products := admin.Group("/products")
			{
				products.POST("", productController.CreateProduct)
				products.PUT("/:id", productController.UpdateProduct)
				products.DELETE("/:id", productController.DeleteProduct)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", orderController.GetPendingOrders)
				orders.PUT("/:id/status", orderController.ResolveOrder)
			}

			admin.POST("/messages", messageController.SendMessage)
			admin.GET("/dashboard", dashboardController.AdminOverview)
		}

		staff := api.Group("/staff")
		staff.Use(utils.RequireRole(models.RoleBoothStaff))
		{
			staff.GET("/dashboard", dashboardController.StaffOverview)
			staff.GET("/messages", messageController.GetMessages)
			staff.PUT("/messages/:id/read", messageController.MarkRead)
			staff.PUT("/products/:id/stock", productController.ToggleStock)
			staff.POST("/orders", orderController.CreateOrder)
		}
	}

	return r
}
