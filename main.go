package main

import (
	"fmt"
	"log"

	"turnopro-backend/config"
	"turnopro-backend/controllers"
	"turnopro-backend/models"
	"turnopro-backend/routes"
	"turnopro-backend/services/notification"
	"turnopro-backend/services/scheduling"
	"turnopro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.LoadConfig()
	utils.InitializeLogger()
	utils.InitCache()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.ServiceCategory{},
		&models.Service{},
		&models.Customer{},
		&models.Schedule{},
		&models.Booking{},
		&models.NotificationLog{},
	)
}

func main() {
	logger := utils.GetLogger()
	defer logger.Sync()

	sender := notification.NewTwilioSender(config.DB, logger)
	engine := scheduling.NewEngine(config.DB, logger, sender)
	controllers.Setup(engine)

	reminders := notification.NewReminderScheduler(config.DB, sender, logger)
	reminders.Start()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + config.AppConfig.AppPort)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
