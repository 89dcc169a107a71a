package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/samshad/5410-Serverless/internal/database"
	"github.com/samshad/5410-Serverless/internal/handlers"
	"github.com/samshad/5410-Serverless/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	if err := database.Connect(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect()

	store := database.NewMongoFeedbackStore()

	// Sentiment classification is optional; without a key every
	// submission is stored as neutral.
	var sentiment services.SentimentClassifier
	if svc, err := services.NewGroqSentimentService(os.Getenv("GROQ_API_KEY"), os.Getenv("GROQ_MODEL")); err != nil {
		log.Println("Sentiment classifier disabled:", err)
	} else {
		sentiment = svc
	}

	feedbackHandler := handlers.NewFeedbackHandler(store, sentiment)
	adminHandler := handlers.NewAdminHandler(store)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("FRONTEND_URL"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Feedback routes, paths kept compatible with the deployed front-end
	app.Get("/feedbacks", feedbackHandler.List)
	app.Post("/feedbacks", handlers.OptionalAuthMiddleware, feedbackHandler.Submit)
	app.Post("/delete_feedbacks", feedbackHandler.Delete)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)
	auth.Get("/me", handlers.AuthMiddleware, handlers.Me)

	// Admin routes (protected by Auth + Admin middleware)
	admin := app.Group("/admin", handlers.AuthMiddleware, handlers.AdminMiddleware)
	admin.Get("/stats", adminHandler.Stats)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Feedback server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
