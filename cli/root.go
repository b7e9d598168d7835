package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"airbnb-merger/config"
	"airbnb-merger/services"
	"airbnb-merger/storage"
	"airbnb-merger/utils"
)

// NewRootCmd builds the merge command. Flags override values loaded from
// the environment and .env.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airbnb-merger",
		Short: "Merge a directory of Airbnb listing files into one CSV",
		Long: `airbnb-merger reads every .csv, .xlsx and .xls file in the input directory,
labels each row with a name derived from its file (city_a.csv -> "City A"),
stacks the tables, removes duplicate and empty rows, trims text and writes a
single CSV. Outputs larger than the compression threshold also get a .csv.gz
copy.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.InputDir, "input", "i", cfg.InputDir, "directory holding the source files")
	f.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "path of the merged CSV file")
	f.StringVar(&cfg.IDColumn, "id-column", cfg.IDColumn, "identifier column used for deduplication")
	f.StringVar(&cfg.SourceColumn, "source-column", cfg.SourceColumn, "name of the column holding each row's source label")
	f.IntVar(&cfg.CompressThresholdMB, "compress-threshold-mb", cfg.CompressThresholdMB, "write a gzip copy when the output exceeds this size (0 disables)")
	f.IntVar(&cfg.PreviewRows, "preview", cfg.PreviewRows, "number of rows shown in the summary preview")
	f.BoolVar(&cfg.ExportPostgres, "postgres", cfg.ExportPostgres, "also export the merged table to PostgreSQL")
	f.StringVar(&cfg.PostgresTable, "postgres-table", cfg.PostgresTable, "target PostgreSQL table")
	f.BoolVarP(&cfg.Debug, "verbose", "v", cfg.Debug, "enable debug logging")

	return cmd
}

// Execute loads configuration and runs the root command.
func Execute() error {
	cfg := config.Load()
	ctx := context.Background()
	if err := NewRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := utils.NewLogger()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Airbnb Data Merger starting ===")
	logger.Info("Config: input %s | output %s | id column %q | label column %q",
		cfg.InputDir, cfg.OutputPath, cfg.IDColumn, cfg.SourceColumn)

	writer := &storage.CSVWriter{Path: cfg.OutputPath, Threshold: cfg.CompressThresholdBytes()}

	var exporter storage.TableExporter
	if cfg.ExportPostgres {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: logger}
		pg, err := storage.NewPostgresWriter(ctx, cfg.DSN(), cfg.PostgresTable, retry)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Continuing with CSV output only")
		} else {
			defer pg.Close()
			exporter = pg
		}
	}

	opts := services.MergeOptions{
		InputDir:     cfg.InputDir,
		IDColumn:     cfg.IDColumn,
		SourceColumn: cfg.SourceColumn,
	}
	res, err := services.NewMerger(opts, logger, writer, exporter).Run(ctx)
	if err != nil {
		logger.Error("Merge failed: %v", err)
		return err
	}

	reporter := services.NewReportService(logger)
	report := reporter.Generate(res.Table, res.Stats, cfg.SourceColumn, cfg.PreviewRows, res.RunID)
	reporter.Print(os.Stdout, report)

	fmt.Printf("  Done. Merged file → %s\n\n", res.Paths[0])
	return nil
}
