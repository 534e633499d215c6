package routes

import (
	"turnopro-backend/config"
	"turnopro-backend/controllers"
	"turnopro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppConfig.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(utils.GetLogger()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public reservation page, tenant resolved by slug
	public := r.Group("/public/:slug")
	{
		public.GET("/services", controllers.GetPublicServices)
		public.GET("/availability", controllers.GetPublicAvailability)
		public.POST("/bookings", controllers.CreatePublicBooking)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.PUT("/reorder", controllers.ReorderServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", controllers.CreateCategory)
			categories.GET("", controllers.GetCategories)
			categories.PUT("/reorder", controllers.ReorderCategories)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.DELETE("/:id", controllers.DeleteCategory)
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("", controllers.GetSchedules)
			schedules.PUT("", controllers.UpsertSchedule)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.PUT("/:id/status", controllers.TransitionBooking)
		}

		api.GET("/agenda", controllers.GetAgenda)

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	// Platform moderation
	admin := r.Group("/admin")
	admin.Use(utils.AuthMiddleware(), utils.RequireRole("admin"))
	{
		admin.PUT("/tenants/:id/suspend", controllers.SuspendTenant)
		admin.PUT("/tenants/:id/reactivate", controllers.ReactivateTenant)
	}

	return r
}
