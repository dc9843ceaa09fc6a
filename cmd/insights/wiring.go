package main

import (
	"context"
	"fmt"

	"github.com/ayushi-gajendra/restaurant-insights/internal/repositories"
	"github.com/ayushi-gajendra/restaurant-insights/internal/service"
	"github.com/ayushi-gajendra/restaurant-insights/pkg/database"
)

// dataset bundles the loaded tables and the report service wired over
// them. cleanup releases the database connection when one was opened.
type dataset struct {
	menuRepo  *repositories.MenuRepository
	orderRepo *repositories.OrderRepository
	reports   *service.ReportService
	source    string
	cleanup   func()
}

// loadDataset builds the sources from configuration, loads both
// tables, and wires the report service. Load failures abort here; no
// command runs against a partial dataset.
func loadDataset(ctx context.Context) (*dataset, error) {
	var (
		menuSrc  repositories.MenuSource
		orderSrc repositories.OrderSource
		source   string
		cleanup  = func() {}
	)

	if cfg.Source.FromDB {
		dbConfig := cfg.DatabaseConfig()
		db, err := database.NewConnection(dbConfig, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.HealthCheck(); err != nil {
			_ = db.Close()
			return nil, err
		}
		cleanup = func() {
			db.LogStats()
			_ = db.Close()
		}

		sqlSrc := repositories.NewSQLSource(db, log)
		menuSrc, orderSrc = sqlSrc, sqlSrc
		source = dbConfig.Target()
	} else {
		csvSrc := repositories.NewCSVSource(cfg.Source.MenuPath, cfg.Source.OrdersPath, log)
		menuSrc, orderSrc = csvSrc, csvSrc
		source = fmt.Sprintf("%s, %s", cfg.Source.MenuPath, cfg.Source.OrdersPath)
	}

	menuRepo := repositories.NewMenuRepository(log)
	if err := menuRepo.Load(ctx, menuSrc); err != nil {
		cleanup()
		return nil, err
	}

	orderRepo := repositories.NewOrderRepository(log)
	if err := orderRepo.Load(ctx, orderSrc); err != nil {
		cleanup()
		return nil, err
	}

	aggregationRepo := repositories.NewAggregationRepository(orderRepo, menuRepo, log)
	reports := service.NewReportService(menuRepo, orderRepo, aggregationRepo, log)

	return &dataset{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		reports:   reports,
		source:    source,
		cleanup:   cleanup,
	}, nil
}
