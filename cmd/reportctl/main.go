// Command reportctl renders stockledger reports straight from the database,
// without going through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/angelmondragon/stockledger-backend/internal/customers"
	"github.com/angelmondragon/stockledger-backend/internal/inventory"
	"github.com/angelmondragon/stockledger-backend/internal/reports"
	"github.com/angelmondragon/stockledger-backend/internal/sales"
	"github.com/angelmondragon/stockledger-backend/pkg/config"
	"github.com/angelmondragon/stockledger-backend/pkg/db"
	"github.com/angelmondragon/stockledger-backend/pkg/logger"
)

// serviceFactory opens the report service and returns a release func.
type serviceFactory func(ctx context.Context) (reports.Service, func() error, error)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(openFromEnv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open serviceFactory) *cobra.Command {
	root := &cobra.Command{
		Use:          "reportctl",
		Short:        "Export inventory, sales and customer reports",
		SilenceUsage: true,
	}
	root.AddCommand(newExportCmd(open), newSummaryCmd(open))
	return root
}

func openFromEnv(ctx context.Context) (reports.Service, func() error, error) {
	cfg, err := config.LoadReporting()
	if err != nil {
		return nil, nil, err
	}
	logg := logger.New(logger.Options{ServiceName: "reportctl", Level: logger.ParseLevel(cfg.LogLevel), Output: os.Stderr})

	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(client.DB(), cfg.Reports.PreviewLimit)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return svc, client.Close, nil
}

func newService(conn *gorm.DB, previewLimit int) (reports.Service, error) {
	itemRepo := inventory.NewRepository(conn)
	svc, err := reports.NewService(reports.ServiceParams{
		Sales:        sales.NewRepository(conn),
		Items:        itemRepo,
		Customers:    customers.NewRepository(conn),
		PreviewLimit: previewLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("build report service: %w", err)
	}
	return svc, nil
}
