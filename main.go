package main

import (
	"fmt"
	"log"

	"boothmarket-backend/config"
	"boothmarket-backend/models"
	"boothmarket-backend/routes"
	"boothmarket-backend/services"
	"boothmarket-backend/session"
	"boothmarket-backend/store"
	"boothmarket-backend/views"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		// Missing connection parameters are unrecoverable: fail fast
		// rather than run with a broken store connection.
		log.Fatal(err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Booth{},
		&models.Product{},
		&models.Order{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	st := store.New(db)
	sessions := session.NewManager(st)
	registry := views.NewRegistry(st, sessions)

	resync := services.NewResyncService(st, cfg.ResyncSchedule)
	if err := resync.Start(); err != nil {
		log.Fatalf("Failed to start resync scheduler: %v", err)
	}

	if cfg.SMSEnabled() {
		services.NewSMSService(st, cfg).Start()
	}

	r := routes.SetupRouter(st, sessions, registry)
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
