package config

import (
	"fmt"

	"github.com/Rahul-714/MarketNest/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Vendor{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.VendorOrder{},
		&models.VendorPayout{},
		&models.StoreSetting{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	seedStoreSettings()
}

// seedStoreSettings makes sure the singleton settings row exists so the
// engines always have commission and payout defaults to read.
func seedStoreSettings() {
	var count int64
	if err := DB.Model(&models.StoreSetting{}).Count(&count).Error; err != nil {
		panic(fmt.Sprintf("Failed to check store settings: %v", err))
	}
	if count == 0 {
		setting := models.StoreSetting{
			GlobalCommissionRate: models.DefaultCommissionRate,
			AutoPayoutEnabled:    false,
		}
		if err := DB.Create(&setting).Error; err != nil {
			panic(fmt.Sprintf("Failed to seed store settings: %v", err))
		}
	}
}
