package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/mtcalc/malta-tax-engine/internal/config"
	"github.com/mtcalc/malta-tax-engine/internal/domain"
	"github.com/mtcalc/malta-tax-engine/internal/logging"
	"github.com/mtcalc/malta-tax-engine/internal/output"
	"github.com/mtcalc/malta-tax-engine/pkg/dateutil"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand
type app struct {
	stdout, stderr io.Writer

	envFile   string
	format    string
	logLevel  string
	logFormat string
	today     string
	saveDir   string

	settings config.Settings
	logger   *slog.Logger
	engine   *calculation.CalculationEngine
	parser   *config.InputParser
	now      func() time.Time
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout: stdout,
		stderr: stderr,
		engine: calculation.NewCalculationEngine(),
		parser: config.NewInputParser(),
		now:    time.Now,
	}

	root := &cobra.Command{
		Use:           "mtcalc",
		Short:         "Malta statutory tax calculators",
		Long:          "mtcalc computes Malta income tax, SSC, rental tax, late-filing penalties and interest, notice periods and audit exemption.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.format, "format", "o", "", "output format ("+joinNames()+"); default from "+config.EnvOutput)
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file with MTCALC_* settings")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")
	pf.StringVar(&a.today, "today", "", "compute as of this date (YYYY-MM-DD) instead of the system date")
	pf.StringVar(&a.saveDir, "save", "", "also write the report to a timestamped file in this directory")

	root.AddCommand(
		newPenaltyCmd(a),
		newIncomeCmd(a),
		newSSCCmd(a),
		newRentalCmd(a),
		newNoticeCmd(a),
		newAuditCmd(a),
		newDeadlinesCmd(a),
		newRunCmd(a),
		newTablesCmd(a),
	)
	return root
}

// setup merges flags over environment settings and wires logging into the engine
func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.LoadSettings(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		s.LogFormat = a.logFormat
	}
	if a.format != "" {
		s.Output = a.format
	}
	if a.today != "" {
		d, err := dateutil.ParseDate(a.today)
		if err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		s.Today = &d
	}
	if output.GetFormatterByName(s.Output) == nil && cmd.Name() != "tables" {
		return fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, s.Output, joinNames())
	}
	a.settings = s
	a.logger = logging.New(s.LogLevel, s.LogFormat, a.stderr)
	a.engine.SetLogger(logging.NewAdapter(a.logger, "command", cmd.Name()))
	return nil
}

// today resolves the run date from --today, MTCALC_TODAY or the clock
func (a *app) todayDate() civil.Date {
	return a.settings.ResolveToday(a.now())
}

// execute runs calculations through the engine and renders the report.
// A report with failed calculations is still written but returns an error.
func (a *app) execute(ctx context.Context, today civil.Date, calcs []domain.Calculation) error {
	report, err := a.engine.Run(ctx, today, calcs)
	if err != nil {
		return err
	}
	if err := output.WriteReport(a.stdout, report, a.settings.Output); err != nil {
		return err
	}
	if a.saveDir != "" {
		path, err := output.GenerateReport(report, a.settings.Output, a.saveDir)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		a.logger.Info("report saved", "path", path, "run_id", report.RunID)
	}
	if n := report.FailedCount(); n > 0 {
		return fmt.Errorf("%d of %d calculation(s) failed", n, len(report.Outcomes))
	}
	return nil
}

// single builds one calculation from a request and executes it
func (a *app) single(cmd *cobra.Command, req config.CalculationRequest) error {
	today := a.todayDate()
	calc := a.parser.BuildCalculation(req, today)
	return a.execute(cmd.Context(), today, []domain.Calculation{calc})
}

func joinNames() string {
	return strings.Join(output.AvailableFormatterNames(), ", ")
}
