package main

import (
	"log"

	"github.com/Sun-Kwak/lavida-cms-sub000/config"
	"github.com/Sun-Kwak/lavida-cms-sub000/database"
	authRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/authRoutes"
	enrollmentRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/enrollmentRoutes"
	memberRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/memberRoutes"
	orderRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/orderRoutes"
	productRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/productRoutes"
	scheduleRoutes "github.com/Sun-Kwak/lavida-cms-sub000/routers/scheduleRoutes"
	"github.com/Sun-Kwak/lavida-cms-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	memberRoutes.SetupMemberRoutes(app)
	productRoutes.SetupProductRoutes(app)
	orderRoutes.SetupOrderRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	scheduleRoutes.SetupScheduleRoutes(app)

	utils.InitializePointExpiryScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
