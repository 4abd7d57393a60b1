package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huyquangvevo/vcs-chamcong-report/attendance"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/api"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/config"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/logging"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/report"
	"github.com/huyquangvevo/vcs-chamcong-report/internal/storage"
)

var (
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "chamcong",
	Short:         "Attendance reports and department alerts",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dotenv := config.LoadDotEnv()

		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		if logger, err = logging.New(level); err != nil {
			return err
		}
		if !dotenv {
			logger.Debug("no .env file found, using process environment")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var alertDate string

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "Mail today's attendance summary to every department manager",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().In(cfg.Location)
		if alertDate != "" {
			var err error
			if date, err = attendance.ParseDate(alertDate); err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}
		return withTimekeeping(cmd.Context(), func(tk *Timekeeping) error {
			return tk.alert(cmd.Context(), date)
		})
	},
}

var (
	reportFrom       string
	reportTo         string
	reportDepartment uint64
	reportJSON       bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the attendance report for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := attendance.ParseDate(reportFrom)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to, err := attendance.ParseDate(reportTo)
		if err != nil {
			return fmt.Errorf("--to: %w", err)
		}
		return withTimekeeping(cmd.Context(), func(tk *Timekeeping) error {
			res, err := tk.Reports.Generate(cmd.Context(), report.Request{From: from, To: to, DepartmentID: reportDepartment})
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), res.Rows, reportJSON)
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the attendance REST API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTimekeeping(cmd.Context(), func(tk *Timekeeping) error {
			srv := api.NewServer(tk.Reports, logger.Named("api"))
			srv.Workers = cfg.Workers
			srv.MaxRangeDays = cfg.MaxDays
			app := srv.App()

			errc := make(chan error, 1)
			go func() {
				logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
				errc <- app.Listen(cfg.HTTPAddr)
			}()

			select {
			case err := <-errc:
				return err
			case <-cmd.Context().Done():
			}
			logger.Info("shutting down")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.ShutdownWithContext(ctx)
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the MySQL directory tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.OpenMySQL(cfg.MySQL.DSN(), logger)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}
		if err := storage.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("migration complete")
		return nil
	},
}

func withTimekeeping(ctx context.Context, fn func(*Timekeeping) error) error {
	tk, err := NewTimekeeping(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer tk.Close(context.Background())
	return fn(tk)
}

func writeReport(w io.Writer, rows []attendance.Row, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return printRows(w, rows)
}

func printRows(w io.Writer, rows []attendance.Row) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("DATE", "ID", "NAME", "DEPARTMENT", "IN", "OUT", "DURATION", "STATUS")
	for _, r := range rows {
		t.Row(r.Date, r.EmployeeID, r.Name, r.Department, r.In, r.Out, r.Duration, r.Status.String())
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	alertCmd.Flags().StringVar(&alertDate, "date", "", "report date (YYYY-MM-DD), default today")

	reportCmd.Flags().StringVar(&reportFrom, "from", "", "first date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "last date (YYYY-MM-DD)")
	reportCmd.Flags().Uint64Var(&reportDepartment, "department", 0, "department id, 0 for all")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print JSON instead of a table")
	_ = reportCmd.MarkFlagRequired("from")
	_ = reportCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(alertCmd, reportCmd, serveCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			fmt.Fprintln(os.Stderr, "error: --from must not be after --to")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
