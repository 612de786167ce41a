package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/location-screen/internal/classify"
	"github.com/sells-group/location-screen/internal/config"
	"github.com/sells-group/location-screen/internal/metrics"
	"github.com/sells-group/location-screen/internal/report"
	"github.com/sells-group/location-screen/internal/rules"
	"github.com/sells-group/location-screen/internal/screen"
	"github.com/sells-group/location-screen/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Screen all approved locations and write a report",
	Long: `Reads every approved location from the configured source, flags the
ones that are unsuitable for remote work, and writes a report.

Examples:
  # Scan the web app database (DATABASE_URL) into the default text report
  scan

  # Scan a CSV export and print JSON to stdout
  scan --driver csv --path locations.csv --format json --output -

  # Use a custom keyword catalog and write a node_exporter textfile
  scan --rules rules.yaml --metrics-textfile /var/lib/node_exporter/location_screen.prom`,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.String("driver", "", "record source: postgres, sqlite, csv, xlsx (overrides config)")
	f.String("database-url", "", "database URL or SQLite path (overrides config)")
	f.String("path", "", "input file for csv/xlsx sources (overrides config)")
	f.Bool("keep-order", false, "keep file row order instead of sorting by name")
	f.String("rules", "", "YAML keyword catalog (default: built-in)")
	f.Int("concurrency", 0, "classification workers (0=use config)")
	f.String("format", "", "report format: text, csv, json, xlsx (overrides config)")
	f.String("output", "", "report file path, - for stdout (overrides config)")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := applyScanOverrides(cmd, *cfg)
	if err := c.Validate("scan"); err != nil {
		return err
	}

	log := zap.L().With(zap.String("command", "scan"), zap.String("driver", c.Source.Driver))
	// Summary lines go to stderr when the report itself is on stdout.
	out := cmd.OutOrStdout()
	if c.Report.Output == "-" {
		out = cmd.ErrOrStderr()
	}

	catalog, err := loadCatalog(c.Rules.Path)
	if err != nil {
		return err
	}
	writer, err := report.ForFormat(c.Report.Format)
	if err != nil {
		return err
	}

	src, err := store.Open(ctx, c.Source)
	if err != nil {
		return eris.Wrap(err, "scan: open source")
	}
	defer src.Close() //nolint:errcheck

	locations, err := src.Locations(ctx)
	if err != nil {
		return eris.Wrap(err, "scan: load locations")
	}
	fmt.Fprintf(out, "Scanning %d approved locations...\n\n", len(locations)) //nolint:errcheck

	runner := screen.NewRunner(classify.New(catalog), c.Scan.Concurrency)
	res, err := runner.Run(ctx, locations)
	if err != nil {
		return err
	}

	rep := report.New(res.RunID, time.Now(), res.Scanned, res.Flagged)
	if err := writeReport(writer, rep, c.Report.Output, cmd.OutOrStdout()); err != nil {
		return err
	}

	if c.Metrics.Textfile != "" {
		m := metrics.New()
		m.Observe(res)
		if err := m.WriteTextfile(c.Metrics.Textfile); err != nil {
			return err
		}
		log.Info("metrics textfile written", zap.String("path", c.Metrics.Textfile))
	}

	if c.Report.Output != "-" {
		fmt.Fprintf(out, "Report saved to: %s\n", c.Report.Output) //nolint:errcheck
	}
	fmt.Fprintf(out, "Found %d potentially unsuitable locations out of %d total locations\n", //nolint:errcheck
		len(rep.Flagged), res.Scanned)
	if len(res.Failures) > 0 {
		fmt.Fprintf(out, "Skipped %d locations that could not be classified\n", len(res.Failures)) //nolint:errcheck
	}
	return nil
}

// applyScanOverrides layers scan flags over the loaded config.
func applyScanOverrides(cmd *cobra.Command, base config.Config) config.Config {
	c := base
	f := cmd.Flags()

	if v, _ := f.GetString("driver"); v != "" {
		c.Source.Driver = v
	}
	if v, _ := f.GetString("database-url"); v != "" {
		c.Source.DatabaseURL = v
	}
	if v, _ := f.GetString("path"); v != "" {
		c.Source.Path = v
	}
	if f.Changed("keep-order") {
		c.Source.KeepOrder, _ = f.GetBool("keep-order")
	}
	if v, _ := f.GetString("rules"); v != "" {
		c.Rules.Path = v
	}
	if v, _ := f.GetInt("concurrency"); v > 0 {
		c.Scan.Concurrency = v
	}
	if v, _ := f.GetString("format"); v != "" {
		c.Report.Format = v
	}
	if v, _ := f.GetString("output"); v != "" {
		c.Report.Output = v
	}
	if v, _ := f.GetString("metrics-textfile"); v != "" {
		c.Metrics.Textfile = v
	}

	return c
}

// loadCatalog reads a catalog file, or returns the built-in one when path is empty.
func loadCatalog(path string) (*rules.Catalog, error) {
	if path == "" {
		return rules.Default(), nil
	}
	return rules.Load(path)
}

// writeReport renders rep to outputPath, or to stdout when outputPath is "-".
func writeReport(writer report.Writer, rep report.Report, outputPath string, stdout io.Writer) error {
	if outputPath == "-" {
		return writer.Write(stdout, rep)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return eris.Wrapf(err, "scan: create output file %s", outputPath)
	}
	if err := writer.Write(f, rep); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "scan: close output file %s", outputPath)
}
