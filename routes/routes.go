package routes

import (
	"os"
	"salonbase-backend/config"
	"salonbase-backend/controllers"
	"salonbase-backend/utils"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public storefront, no auth
	public := r.Group("/public")
	{
		public.GET("/salons/:slug", controllers.GetPublicSalon)
		public.GET("/salons/:slug/packs", controllers.GetPublicPacks)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Product routes
		products := api.Group("/products")
		{
			products.POST("", controllers.CreateProduct)
			products.GET("", controllers.GetProducts)
			products.GET("/:id", controllers.GetProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Pack routes
		packs := api.Group("/packs")
		{
			packs.POST("", controllers.CreatePack)
			packs.GET("", controllers.GetPacks)
			packs.GET("/:id", controllers.GetPack)
			packs.PUT("/:id", controllers.UpdatePack)
			packs.DELETE("/:id", controllers.DeletePack)
		}

		// Customer roster routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.AttachCustomer)
			customers.GET("", controllers.GetSalonCustomers)
			customers.GET("/:id", controllers.GetSalonCustomer)
			customers.PUT("/:id", controllers.UpdateSalonCustomer)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.PUT("/:id/cancel", controllers.CancelAppointment)
			appointments.PUT("/:id/complete", controllers.CompleteAppointment)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.PUT("/:id/pay", controllers.MarkOrderPaid)
		}

		// Settings routes
		profile := api.Group("/profile", utils.RequireRole("owner"))
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.PUT("/working-hours", controllers.UpdateWorkingHours)
			profile.PUT("/notifications", controllers.UpdateNotificationSettings)
			profile.PUT("/customization", controllers.UpdateCustomization)
		}

		// Customization catalogs
		customization := api.Group("/customization")
		{
			customization.GET("/layouts", controllers.GetLayoutPatterns)
			customization.GET("/themes", controllers.GetThemePalettes)
		}
	}

	return r
}
