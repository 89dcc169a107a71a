package main

import (
	"context"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/samshad/5410-Serverless/internal/database"
	"github.com/samshad/5410-Serverless/internal/handlers"
)

// The lookup service is deliberately tiny: one route, one point read
// against the user security table per request, nothing held between
// requests.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	store, err := database.NewDynamoUserSecurityStore(context.Background())
	if err != nil {
		log.Fatal("Failed to configure DynamoDB client:", err)
	}

	lookupHandler := handlers.NewLookupHandler(store)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/user-security", lookupHandler.GetUserSecurity)

	port := os.Getenv("LOOKUP_PORT")
	if port == "" {
		port = "8081"
	}

	log.Printf("Lookup service starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
