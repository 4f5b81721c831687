package main

import (
	"log"

	"github.com/Rahul-714/MarketNest/config"
	"github.com/Rahul-714/MarketNest/controllers"
	"github.com/Rahul-714/MarketNest/gateway"
	"github.com/Rahul-714/MarketNest/routes"
	"github.com/Rahul-714/MarketNest/utils"
	"github.com/robfig/cron/v3"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire gateway drivers and engines
	factory := gateway.NewFactory(cfg)
	controllers.Init(config.DB, factory)

	// Daily automatic payout sweep
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		paid, err := controllers.PayoutService().ProcessAutomaticPayouts()
		if err != nil {
			utils.LogError("Scheduled payout sweep failed: %v", err)
			return
		}
		utils.LogInfo("Scheduled payout sweep paid %d vendors", paid)
	}); err != nil {
		utils.LogError("Failed to schedule payout sweep: %v", err)
		log.Fatal("Failed to schedule payout sweep:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
