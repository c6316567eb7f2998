package main

import (
	"fmt"
	"log/slog"

	"github.com/novaretail/customer-intelligence/internal/domain/dashboard"
	"github.com/novaretail/customer-intelligence/internal/domain/dashboard/handler"
	"github.com/novaretail/customer-intelligence/internal/domain/dataset"
	"github.com/novaretail/customer-intelligence/internal/domain/insights"
	"github.com/novaretail/customer-intelligence/pkg/config"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Table *dataset.Table

	InsightsGenerator *insights.Generator
	DashboardService  *dashboard.Service

	DashboardHandler *handler.DashboardHandler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDataset(); err != nil {
		return nil, fmt.Errorf("failed to init dataset: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	if err := deps.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to init handlers: %w", err)
	}

	logger.Info("all dependencies initialized successfully")

	return deps, nil
}

// initDataset loads and types the source spreadsheet once for the process
// lifetime. The table is immutable afterwards.
func (d *Dependencies) initDataset() error {
	table, err := dataset.Load(d.Config.Dataset.Path)
	if err != nil {
		return err
	}
	d.Table = table

	d.Logger.Info("dataset loaded",
		"path", d.Config.Dataset.Path,
		"rows", table.Len())
	return nil
}

// initServices initializes all service layer dependencies
func (d *Dependencies) initServices() error {
	d.InsightsGenerator = insights.NewGenerator(
		d.Config.Dashboard.Currency,
		d.Config.Dashboard.DeclineAlertThreshold,
		d.Logger,
	)
	d.DashboardService = dashboard.NewService(d.Table, d.InsightsGenerator, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// initHandlers initializes all handler dependencies
func (d *Dependencies) initHandlers() error {
	d.DashboardHandler = handler.NewDashboardHandler(d.DashboardService, d.Logger)

	d.Logger.Info("handlers initialized")
	return nil
}
