package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/modules/clients/domain/aggregates/client"
	"github.com/praxishq/praxis/modules/clients/importing"
	"github.com/praxishq/praxis/modules/clients/infrastructure/persistence"
	"github.com/praxishq/praxis/modules/clients/infrastructure/spreadsheet"
	"github.com/praxishq/praxis/modules/clients/services"
	"github.com/praxishq/praxis/pkg/composables"
	"github.com/praxishq/praxis/pkg/configuration"
	"github.com/praxishq/praxis/pkg/eventbus"
	"github.com/praxishq/praxis/pkg/logging"
)

type importOptions struct {
	input string
	apply bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import clients from a CSV or XLSX file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Input spreadsheet file (required)")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Apply changes to DB (default is dry-run)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("connect to database: %w", err))
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return withCode(exitDB, fmt.Errorf("ping database: %w", err))
	}
	ctx = composables.WithPool(ctx, pool)

	f, err := os.Open(opts.input)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("open input: %w", err))
	}
	defer func() { _ = f.Close() }()
	filename := filepath.Base(opts.input)

	logger := logging.ConsoleLogger(conf.LogrusLogLevel())
	repo := persistence.NewClientRepository()
	var report importing.Report
	if opts.apply {
		svc := services.NewImportService(repo, eventbus.NewEventPublisher(logger), logger)
		report, err = svc.Import(ctx, f, filename)
		if err != nil {
			if len(report.Diagnostics) > 0 {
				printReport(report)
				return withCode(exitValidation, err)
			}
			return withCode(exitDB, err)
		}
	} else {
		report, err = dryRun(ctx, repo, f, filename)
		if err != nil {
			return err
		}
	}

	printReport(report)
	return nil
}

// dryRun reconciles against the current store without writing anything.
func dryRun(ctx context.Context, repo client.Repository, f *os.File, filename string) (importing.Report, error) {
	rows, err := spreadsheet.ReadRows(f, filename)
	if err != nil {
		return importing.Report{}, withCode(exitValidation, err)
	}
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return importing.Report{}, withCode(exitDB, err)
	}
	store := make([]importing.Fields, 0, len(existing))
	for _, c := range existing {
		store = append(store, importing.Fields{
			FirstName:     c.FirstName(),
			LastName:      c.LastName(),
			PreferredName: c.PreferredName(),
			Email:         c.Email(),
			Phone:         c.Phone(),
			DateOfBirth:   c.DateOfBirth(),
		})
	}
	return importing.Reconcile(rows, store).Report, nil
}

func printReport(report importing.Report) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Printf("added=%d skipped=%d\n", report.Added, report.Skipped)
		return
	}
	fmt.Println(string(out))
}
