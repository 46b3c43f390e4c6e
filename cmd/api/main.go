package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/ridgeline-hq/hoa-backend/api/routes"
	"github.com/ridgeline-hq/hoa-backend/internal/contractors"
	"github.com/ridgeline-hq/hoa-backend/internal/documents"
	"github.com/ridgeline-hq/hoa-backend/internal/finance"
	"github.com/ridgeline-hq/hoa-backend/internal/maintenance"
	"github.com/ridgeline-hq/hoa-backend/internal/meetings"
	"github.com/ridgeline-hq/hoa-backend/internal/payments"
	"github.com/ridgeline-hq/hoa-backend/internal/properties"
	"github.com/ridgeline-hq/hoa-backend/internal/residents"
	"github.com/ridgeline-hq/hoa-backend/internal/units"
	"github.com/ridgeline-hq/hoa-backend/internal/users"
	"github.com/ridgeline-hq/hoa-backend/internal/violations"
	"github.com/ridgeline-hq/hoa-backend/pkg/config"
	"github.com/ridgeline-hq/hoa-backend/pkg/db"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
	"github.com/ridgeline-hq/hoa-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	svcs, err := buildServices(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func buildServices(dbClient *db.Client) (routes.Services, error) {
	gdb := dbClient.DB()

	propertyRepo := properties.NewRepository(gdb)
	unitRepo := units.NewRepository(gdb)
	residentRepo := residents.NewRepository(gdb)
	enhancedResidentRepo := residents.NewEnhancedRepository(gdb)
	userRepo := users.NewRepository(gdb)
	paymentRepo := payments.NewRepository(gdb)
	contractorRepo := contractors.NewRepository(gdb)
	maintenanceRepo := maintenance.NewRepository(gdb)
	enhancedMaintenanceRepo := maintenance.NewEnhancedRepository(gdb)
	violationRepo := violations.NewRepository(gdb)
	meetingRepo := meetings.NewRepository(gdb)
	documentRepo := documents.NewRepository(gdb)
	financeRepo := finance.NewRepository(gdb)

	propertySvc, err := properties.NewService(propertyRepo, unitRepo)
	if err != nil {
		return routes.Services{}, err
	}
	unitSvc, err := units.NewService(unitRepo, propertyRepo, residentRepo, enhancedResidentRepo)
	if err != nil {
		return routes.Services{}, err
	}
	residentSvc, err := residents.NewService(residentRepo, unitRepo, paymentRepo, maintenanceRepo, violationRepo)
	if err != nil {
		return routes.Services{}, err
	}
	enhancedResidentSvc, err := residents.NewEnhancedService(enhancedResidentRepo, unitRepo, propertyRepo, userRepo, enhancedMaintenanceRepo)
	if err != nil {
		return routes.Services{}, err
	}
	userSvc, err := users.NewService(userRepo, enhancedResidentRepo)
	if err != nil {
		return routes.Services{}, err
	}
	paymentSvc, err := payments.NewService(paymentRepo, residentRepo, unitRepo)
	if err != nil {
		return routes.Services{}, err
	}
	contractorSvc, err := contractors.NewService(contractorRepo, enhancedMaintenanceRepo)
	if err != nil {
		return routes.Services{}, err
	}
	maintenanceSvc, err := maintenance.NewService(maintenanceRepo, unitRepo, residentRepo)
	if err != nil {
		return routes.Services{}, err
	}
	enhancedMaintenanceSvc, err := maintenance.NewEnhancedService(enhancedMaintenanceRepo, unitRepo, propertyRepo, enhancedResidentRepo, userRepo, contractorRepo)
	if err != nil {
		return routes.Services{}, err
	}
	violationSvc, err := violations.NewService(violationRepo, unitRepo, residentRepo)
	if err != nil {
		return routes.Services{}, err
	}
	meetingSvc, err := meetings.NewService(meetingRepo, propertyRepo)
	if err != nil {
		return routes.Services{}, err
	}
	documentSvc, err := documents.NewService(documentRepo, propertyRepo, unitRepo)
	if err != nil {
		return routes.Services{}, err
	}
	financeSvc, err := finance.NewService(financeRepo, propertyRepo)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Properties:          propertySvc,
		Units:               unitSvc,
		Residents:           residentSvc,
		EnhancedResidents:   enhancedResidentSvc,
		Users:               userSvc,
		Payments:            paymentSvc,
		Contractors:         contractorSvc,
		Maintenance:         maintenanceSvc,
		EnhancedMaintenance: enhancedMaintenanceSvc,
		Violations:          violationSvc,
		Meetings:            meetingSvc,
		Documents:           documentSvc,
		Finance:             financeSvc,
	}, nil
}
