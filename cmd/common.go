package cmd

import (
	"fmt"

	"github.com/rajeshhitechvalley/Cfapp-sub001/configs"

	"gorm.io/gorm"
)

// openDB loads config, connects and migrates.
func openDB(opts *RootOptions) (*configs.Config, *gorm.DB, error) {
	cfg := configs.LoadConfig(opts.EnvFile)
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := configs.SetupDatabase(db); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cfg, db, nil
}
