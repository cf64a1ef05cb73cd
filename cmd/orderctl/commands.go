package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Renal37/orderdesk/internal/config"
	"github.com/Renal37/orderdesk/internal/logger"
	"github.com/Renal37/orderdesk/internal/models"
	"github.com/Renal37/orderdesk/internal/services"
	"github.com/Renal37/orderdesk/internal/storage"
)

type options struct {
	dataFile string
	dsn      string
	logLevel string
}

type commandFunc func(ctx context.Context, out io.Writer, service *services.RecordService, args []string) error

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "orderctl",
		Short:         "manage stored orders and inquiries",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dataFile, "data-file", "f", "", "path to the JSON data file (DATA_FILE)")
	rootCmd.PersistentFlags().StringVarP(&opts.dsn, "dsn", "d", "", "PostgreSQL data source name (DATABASE_URI)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "error", "log level")

	rootCmd.AddCommand(
		listCommand(opts),
		statsCommand(opts),
		setStatusCommand(opts),
		deleteCommand(opts),
	)

	return rootCmd
}

// withService открывает хранилище по флагам и окружению и вызывает fn.
func withService(opts *options, fn commandFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := config.Config{DataFile: opts.dataFile, DSN: opts.dsn}
		if err := cfg.ParseEnv(); err != nil {
			return err
		}
		if opts.dataFile != "" {
			cfg.DataFile = opts.dataFile
		}
		if opts.dsn != "" {
			cfg.DSN = opts.dsn
		}

		if err := logger.Initialize(opts.logLevel, config.EnvDevelopment); err != nil {
			return err
		}

		backend, closeStorage, err := storage.Open(cmd.Context(), cfg.DSN, cfg.DataFile)
		if err != nil {
			return err
		}
		defer closeStorage()

		return fn(cmd.Context(), cmd.OutOrStdout(), services.NewRecordService(backend, nil), args)
	}
}

func listCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "print all records, newest first",
		Args:  cobra.NoArgs,
		RunE: withService(opts, func(ctx context.Context, out io.Writer, service *services.RecordService, _ []string) error {
			table := tablewriter.NewWriter(out)
			table.Header("#", "ID", "Type", "Status", "Name", "Phone", "Date")

			for i, record := range service.List(ctx) {
				name, _ := record.String("name")
				phone, _ := record.String("phone")

				if err := table.Append([]string{
					fmt.Sprint(i),
					record.ID(),
					record.Type(),
					string(record.Status()),
					name,
					phone,
					record.Date(),
				}); err != nil {
					return err
				}
			}

			return table.Render()
		}),
	}
}

func statsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "print dashboard counters",
		Args:  cobra.NoArgs,
		RunE: withService(opts, func(ctx context.Context, out io.Writer, service *services.RecordService, _ []string) error {
			stats := service.Stats(ctx)
			_, err := fmt.Fprintf(out, "total: %d\npending inquiries: %d\n", stats.Total, stats.PendingInquiries)
			return err
		}),
	}
}

func setStatusCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [id] [status]",
		Short: "change record status (New, Pending, Completed)",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return statusNames, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: withService(opts, func(ctx context.Context, out io.Writer, service *services.RecordService, args []string) error {
			if err := service.UpdateStatus(ctx, args[0], args[1]); err != nil {
				if errors.Is(err, services.ErrRecordNotFound) {
					return fmt.Errorf("order %s not found", args[0])
				}
				return err
			}

			_, err := fmt.Fprintf(out, "%s: %s\n", args[0], args[1])
			return err
		}),
	}
}

func deleteCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "delete a record by id or position",
		Args:  cobra.ExactArgs(1),
		RunE: withService(opts, func(ctx context.Context, out io.Writer, service *services.RecordService, args []string) error {
			service.Delete(ctx, args[0])

			_, err := fmt.Fprintf(out, "deleted %s\n", args[0])
			return err
		}),
	}
}

// statusNames варианты автодополнения для set-status.
var statusNames = []string{
	string(models.StatusNew),
	string(models.StatusPending),
	string(models.StatusCompleted),
}
