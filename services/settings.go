package services

import (
	"github.com/Rahul-714/MarketNest/models"
	"github.com/Rahul-714/MarketNest/utils"
	"gorm.io/gorm"
)

// Settings is the configuration value threaded into the engines. Keeping it
// a plain value makes the commission rate and payout toggle trivial to pin
// in tests.
type Settings struct {
	GlobalCommissionRate float64
	AutoPayoutEnabled    bool
}

// SettingsLoader supplies the current settings on demand.
type SettingsLoader func() Settings

// DefaultSettings returns the documented fallbacks used when no settings
// row exists.
func DefaultSettings() Settings {
	return Settings{
		GlobalCommissionRate: models.DefaultCommissionRate,
		AutoPayoutEnabled:    false,
	}
}

// LoadSettings reads the singleton store settings row, falling back to
// defaults when it is missing.
func LoadSettings(db *gorm.DB) Settings {
	var setting models.StoreSetting
	if err := db.First(&setting).Error; err != nil {
		utils.LogDebug("Store settings not found, using defaults: %v", err)
		return DefaultSettings()
	}
	return Settings{
		GlobalCommissionRate: setting.GlobalCommissionRate,
		AutoPayoutEnabled:    setting.AutoPayoutEnabled,
	}
}

// DBSettingsLoader binds LoadSettings to a database handle.
func DBSettingsLoader(db *gorm.DB) SettingsLoader {
	return func() Settings {
		return LoadSettings(db)
	}
}
