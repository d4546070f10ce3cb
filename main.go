package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"salonbase-backend/config"
	"salonbase-backend/migrations"
	"salonbase-backend/routes"
	"salonbase-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Failed to access database pool: %v", err)
	}
	if err := migrations.Apply(context.Background(), sqlDB); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
}

func main() {
	services.NewReminderService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
