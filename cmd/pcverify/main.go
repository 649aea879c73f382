package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/api"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/catalog"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/config"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/golden"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/metrics"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/render"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/review"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema/validate"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/verify"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// Exit codes.
const (
	exitInternal = 1
	exitFailOn   = 2
	exitInput    = 3
	exitResolve  = 4
	exitDrift    = 5
)

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

// checkFlags holds the parsed flags for the check command.
type checkFlags struct {
	format            string
	out               string
	catalogFiles      []string
	profileName       string
	failOn            string
	severityThreshold string
	baseline          string
	diffOut           string
	verbose           bool
}

// serveFlags holds the parsed flags for the serve command.
type serveFlags struct {
	configPath string
	addr       string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var ee *exitErr
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(exitInternal)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pcverify",
		Short:         "Verify that a PC build's components are compatible",
		Long:          "pcverify checks a selection of PC components against socket, memory, clearance, connector and power rules and reports every incompatibility.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags checkFlags
	checkCmd := &cobra.Command{
		Use:   "check <build-file>",
		Short: "Verify one build file and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := checkCmd.Flags()
	f.StringVar(&flags.format, "format", "json", "Output format: json or md")
	f.StringVar(&flags.out, "out", "", "Write output to file instead of stdout")
	f.StringArrayVar(&flags.catalogFiles, "catalog", nil, "Catalog file paths (may be repeated)")
	f.StringVar(&flags.profileName, "profile", "", "Rule profile: default or strict (overrides the build file)")
	f.StringVar(&flags.failOn, "fail-on", "", "Exit 2 if the build is incompatible, or has any warning: incompatible or warning")
	f.StringVar(&flags.severityThreshold, "severity-threshold", "warning", "Minimum severity to emit: warning or error")
	f.StringVar(&flags.baseline, "baseline", "", "Compare the rendered report with this file and exit 5 on drift")
	f.StringVar(&flags.diffOut, "diff-out", "", "Write the baseline drift patch to this file instead of stderr")
	f.BoolVar(&flags.verbose, "verbose", false, "Log processing steps to stderr")

	var sflags serveFlags
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the verification HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, sflags)
		},
	}
	serveCmd.Flags().StringVar(&sflags.configPath, "config", "", "Server config file (YAML)")
	serveCmd.Flags().StringVar(&sflags.addr, "addr", "", "Listen address, overrides config and PCVERIFY_ADDR")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", schema.Tool, version)
		},
	}

	root.AddCommand(checkCmd, serveCmd, versionCmd)
	return root
}

func runCheck(buildPath string, flags checkFlags, stdout, stderr io.Writer) error {
	// --- Step 1: Validate flags ---
	if err := validateFlags(flags); err != nil {
		return codeError(exitInput, "invalid flags: %s", err)
	}

	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	logger := newLogger(level, "text", stderr)

	// --- Step 2: Load catalog ---
	logger.Debug("Loading catalog", "files", len(flags.catalogFiles))
	cat, err := catalog.Load(flags.catalogFiles...)
	if err != nil {
		return codeError(exitInput, "loading catalog: %s", err)
	}
	logger.Debug("Catalog loaded", "parts", cat.Len(), "hash", cat.Hash)

	// --- Step 3: Load build file ---
	logger.Debug("Loading build", "path", buildPath)
	doc, err := catalog.LoadDocument(buildPath)
	if err != nil {
		return codeError(exitInput, "loading build: %s", err)
	}

	// --- Step 4: Load profile; the flag wins over the build file ---
	profileName := flags.profileName
	if profileName == "" {
		profileName = doc.Profile
	}
	prof, err := profile.Get(profileName)
	if err != nil {
		return codeError(exitInput, "loading profile: %s", err)
	}
	logger.Debug("Using profile", "profile", prof.Name)

	// --- Step 5: Resolve parts ---
	b, err := doc.Resolve(cat)
	if err != nil {
		return codeError(exitResolve, "resolving parts: %s", err)
	}

	// --- Step 6: Verify ---
	report, err := verify.New(verify.WithProfile(prof), verify.WithVersion(version)).Verify(b)
	if err != nil {
		return codeError(exitInternal, "verifying build: %s", err)
	}
	logger.Debug("Build verified",
		"compatible", report.Compatible,
		"errors", report.Summary.ErrorCount,
		"warnings", report.Summary.WarningCount)

	// --- Step 7: Apply severity threshold filter (output only, does not affect compatible/counts) ---
	report.Categories = review.FilterBySeverity(report.Categories, schema.Severity(flags.severityThreshold))

	// --- Step 8: Render output ---
	logger.Debug("Rendering output", "format", flags.format)
	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(exitInput, "invalid format: %s", err)
	}
	outputBytes, err := renderer.Render(report)
	if err != nil {
		return codeError(exitInput, "rendering output: %s", err)
	}

	// --- Step 9: Write output ---
	if flags.out != "" {
		if err := os.WriteFile(flags.out, outputBytes, 0o644); err != nil {
			return codeError(exitInput, "writing output file: %s", err)
		}
	} else if _, err := stdout.Write(outputBytes); err != nil {
		return codeError(exitInput, "writing output: %s", err)
	}

	// --- Step 10: Compare with baseline ---
	if flags.baseline != "" {
		if err := checkBaseline(flags, outputBytes, stderr, logger); err != nil {
			return err
		}
	}

	// --- Step 11: Evaluate --fail-on ---
	switch flags.failOn {
	case "incompatible":
		if !report.Compatible {
			return codeError(exitFailOn, "build is incompatible (%d errors)", report.Summary.ErrorCount)
		}
	case "warning":
		if !report.Compatible || report.Summary.WarningCount > 0 {
			return codeError(exitFailOn, "build has %d errors and %d warnings (--fail-on warning)",
				report.Summary.ErrorCount, report.Summary.WarningCount)
		}
	}

	return nil
}

// checkBaseline diffs the rendered report against the stored one. JSON
// baselines are validated first so a corrupt baseline is an input error, not
// drift.
func checkBaseline(flags checkFlags, rendered []byte, stderr io.Writer, logger *slog.Logger) error {
	want, err := os.ReadFile(flags.baseline)
	if err != nil {
		return codeError(exitInput, "reading baseline: %s", err)
	}
	if flags.format == "json" {
		if _, err := validate.Parse(want); err != nil {
			return codeError(exitInput, "baseline %s: %s", flags.baseline, err)
		}
	}

	w := stderr
	if flags.diffOut != "" {
		f, err := os.Create(flags.diffOut)
		if err != nil {
			return codeError(exitInput, "creating diff file: %s", err)
		}
		defer f.Close()
		w = f
	}

	logger.Debug("Comparing with baseline", "baseline", flags.baseline)
	ok, err := golden.Write(w, flags.baseline, want, rendered)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	if !ok {
		return codeError(exitDrift, "report drifted from baseline %s", flags.baseline)
	}
	return nil
}

// validateFlags returns an error if any flag value is invalid.
func validateFlags(flags checkFlags) error {
	switch flags.format {
	case "json", "md":
	default:
		return fmt.Errorf("--format must be json or md, got %q", flags.format)
	}

	switch flags.failOn {
	case "", "incompatible", "warning":
	default:
		return fmt.Errorf("--fail-on must be incompatible or warning, got %q", flags.failOn)
	}

	switch schema.Severity(flags.severityThreshold) {
	case schema.SeverityWarning, schema.SeverityError:
	default:
		return fmt.Errorf("--severity-threshold must be warning or error, got %q", flags.severityThreshold)
	}

	if flags.profileName != "" {
		if _, err := profile.Get(flags.profileName); err != nil {
			return fmt.Errorf("--profile: %w", err)
		}
	}

	if flags.diffOut != "" && flags.baseline == "" {
		return fmt.Errorf("--diff-out requires --baseline")
	}

	return nil
}

func runServe(ctx context.Context, flags serveFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return codeError(exitInput, "%s", err)
	}
	if flags.addr != "" {
		cfg.Addr = flags.addr
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.Catalog...)
	if err != nil {
		return codeError(exitInput, "loading catalog: %s", err)
	}
	logger.Info("Catalog loaded", "files", len(cfg.Catalog), "parts", cat.Len(), "hash", cat.Hash)

	handlers, err := api.NewHandlers(cat, api.Options{
		DefaultProfile: cfg.Profile,
		Version:        version,
		Metrics:        metrics.NewRegistry(),
	})
	if err != nil {
		return codeError(exitInput, "%s", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(handlers, cfg.MaxBodyBytes)
	return api.NewServer(cfg, router).Run(ctx)
}

// newLogger builds a slog logger writing to w. format is "json" or "text".
func newLogger(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
