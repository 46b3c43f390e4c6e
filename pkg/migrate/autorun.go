package migrate

import (
	"context"
	"fmt"

	"github.com/ridgeline-hq/hoa-backend/pkg/config"
	"github.com/ridgeline-hq/hoa-backend/pkg/db"
	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled. SQLite deployments fall back to GORM's AutoMigrate
// since the goose files carry Postgres DDL.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite {
		logg.Info(ctx, "running GORM auto-migration (sqlite dev)")
		return AutoMigrate(client)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrate creates or updates the full schema through GORM.
func AutoMigrate(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.Property{},
		&models.Unit{},
		&models.Resident{},
		&models.ResidentEnhanced{},
		&models.User{},
		&models.Payment{},
		&models.MaintenanceRequest{},
		&models.MaintenanceRequestEnhanced{},
		&models.MaintenanceWorkLog{},
		&models.Contractor{},
		&models.Violation{},
		&models.Meeting{},
		&models.Document{},
		&models.FinancialAccount{},
		&models.ManagementFee{},
	)
}
