package main

import (
	"lms/config"
	analyticsController "lms/controllers/analytics"
	"lms/database"
	"lms/routers/analyticsRoutes"
	"lms/routers/authRoutes"
	"lms/routers/courseRoutes"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
	"time"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Chatbot answer cache plus background jobs
	chatCache := utils.NewTTLCache()
	chatTTL := time.Duration(config.AppConfig.ChatCacheTTL) * time.Minute
	analyticsController.InitChatbot(chatCache, services.NewChatClient(), chatTTL)
	utils.InitializeSchedulers(chatCache)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
