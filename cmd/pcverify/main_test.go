package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// testdataDir is the root of the testdata directory.
const testdataDir = "../../testdata"

// buildPath returns the path to a file in testdata/builds/.
func buildPath(name string) string {
	return filepath.Join(testdataDir, "builds", name)
}

func runCheckFlags() checkFlags {
	return checkFlags{
		format: "json",
		catalogFiles: []string{
			filepath.Join(testdataDir, "catalog", "core.yaml"),
			filepath.Join(testdataDir, "catalog", "power.yaml"),
			filepath.Join(testdataDir, "catalog", "chassis.yaml"),
		},
		severityThreshold: "warning",
	}
}

// check runs runCheck and returns stdout, stderr and the error.
func check(t *testing.T, build string, flags checkFlags) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runCheck(buildPath(build), flags, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func decodeReport(t *testing.T, data string) schema.Report {
	t.Helper()
	var report schema.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, data)
	}
	return report
}

func categoryStatus(r schema.Report, name schema.Category) schema.Status {
	for _, c := range r.Categories {
		if c.Name == name {
			return c.Status
		}
	}
	return ""
}

func wantExitCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", code)
	}
	var ee *exitErr
	if !asExitErr(err, &ee) {
		t.Fatalf("expected exitErr, got %T: %v", err, err)
	}
	if ee.code != code {
		t.Errorf("expected exit code %d, got %d (%v)", code, ee.code, err)
	}
}

// --- Tests ---

func TestRunCheck_Compatible(t *testing.T) {
	out, _, err := check(t, "compatible.yaml", runCheckFlags())
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	if !report.Compatible {
		t.Errorf("expected compatible build, got %+v", report.Summary)
	}
	if report.Build != "am5-workstation" {
		t.Errorf("Build = %q, want am5-workstation", report.Build)
	}
	if report.Profile != "default" {
		t.Errorf("Profile = %q, want default", report.Profile)
	}
	if len(report.Categories) != len(schema.Categories()) {
		t.Errorf("expected %d categories, got %d", len(schema.Categories()), len(report.Categories))
	}
	if report.Summary.CategoriesSkipped != 0 {
		t.Errorf("expected no skipped categories, got %d", report.Summary.CategoriesSkipped)
	}
}

func TestRunCheck_CoolerMismatch(t *testing.T) {
	out, _, err := check(t, "cooler_mismatch.yaml", runCheckFlags())
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	if report.Compatible {
		t.Error("expected incompatible build")
	}
	if got := categoryStatus(report, schema.CategorySocket); got != schema.StatusFail {
		t.Errorf("socket status = %s, want fail", got)
	}
	if got := categoryStatus(report, schema.CategoryPhysicalClearance); got != schema.StatusSkip {
		t.Errorf("physical-clearance status = %s, want skip", got)
	}
}

func TestRunCheck_StorageOverflow(t *testing.T) {
	out, _, err := check(t, "storage_overflow.yaml", runCheckFlags())
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	for _, c := range report.Categories {
		if c.Name != schema.CategoryStorageConnector {
			continue
		}
		if len(c.Violations) != 1 {
			t.Fatalf("expected 1 storage violation, got %d", len(c.Violations))
		}
		v := c.Violations[0]
		if v.Details["required"] != float64(5) || v.Details["supplied"] != float64(4) {
			t.Errorf("details = %v, want required 5 supplied 4", v.Details)
		}
		return
	}
	t.Error("storage-connector category missing")
}

func TestRunCheck_MissingMotherboard(t *testing.T) {
	out, _, err := check(t, "missing_board.yaml", runCheckFlags())
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	if report.Error == nil || report.Error.Code != schema.CodeBuildIncomplete {
		t.Fatalf("expected BUILD_INCOMPLETE error, got %+v", report.Error)
	}
	if len(report.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(report.Categories))
	}
}

func TestRunCheck_MarkdownFormat(t *testing.T) {
	flags := runCheckFlags()
	flags.format = "md"
	flags.out = filepath.Join(t.TempDir(), "out.md")

	if _, _, err := check(t, "cooler_mismatch.yaml", flags); err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	data, err := os.ReadFile(flags.out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "# PC Build Compatibility Report") {
		t.Errorf("markdown missing header")
	}
	if !strings.Contains(s, "INCOMPATIBLE") {
		t.Errorf("markdown missing verdict")
	}
	if !strings.Contains(s, "| socket | fail | 1 |") {
		t.Errorf("markdown missing socket row:\n%s", s)
	}
}

func TestRunCheck_OutFileLeavesStdoutEmpty(t *testing.T) {
	flags := runCheckFlags()
	flags.out = filepath.Join(t.TempDir(), "out.json")

	out, _, err := check(t, "compatible.yaml", flags)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty stdout with --out, got %q", out)
	}
}

func TestRunCheck_FailOnIncompatible(t *testing.T) {
	flags := runCheckFlags()
	flags.failOn = "incompatible"

	_, _, err := check(t, "cooler_mismatch.yaml", flags)
	wantExitCode(t, err, exitFailOn)

	if _, _, err := check(t, "compatible.yaml", flags); err != nil {
		t.Errorf("expected no error for a compatible build, got: %v", err)
	}
}

func TestRunCheck_FailOnWarning(t *testing.T) {
	flags := runCheckFlags()
	flags.failOn = "warning"

	out, _, err := check(t, "fast_memory.yaml", flags)
	wantExitCode(t, err, exitFailOn)

	report := decodeReport(t, out)
	if !report.Compatible {
		t.Error("a downclock warning must not make the build incompatible")
	}
	if report.Summary.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", report.Summary.WarningCount)
	}

	flags.failOn = "incompatible"
	if _, _, err := check(t, "fast_memory.yaml", flags); err != nil {
		t.Errorf("--fail-on incompatible should ignore warnings, got: %v", err)
	}
}

func TestRunCheck_SeverityThreshold_FiltersOutput(t *testing.T) {
	flags := runCheckFlags()
	flags.severityThreshold = "error"

	out, _, err := check(t, "fast_memory.yaml", flags)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	for _, c := range report.Categories {
		for _, v := range c.Violations {
			if v.Severity != schema.SeverityError {
				t.Errorf("%s emitted %s violation with threshold error", c.Name, v.Severity)
			}
		}
	}
	// Counts and statuses reflect the unfiltered evaluation.
	if report.Summary.WarningCount != 1 {
		t.Errorf("WarningCount = %d, want 1", report.Summary.WarningCount)
	}
	if got := categoryStatus(report, schema.CategoryRAM); got != schema.StatusWarn {
		t.Errorf("ram status = %s, want warn", got)
	}
}

func TestRunCheck_ProfileFromBuildFile(t *testing.T) {
	out, _, err := check(t, "inline_gpu.yaml", runCheckFlags())
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}

	report := decodeReport(t, out)
	if report.Profile != "strict" {
		t.Errorf("Profile = %q, want strict from the build file", report.Profile)
	}
	if report.Compatible {
		t.Error("a 370 mm inline card cannot fit a 360 mm case")
	}
	if got := categoryStatus(report, schema.CategoryPhysicalClearance); got != schema.StatusFail {
		t.Errorf("physical-clearance status = %s, want fail", got)
	}
	if got := categoryStatus(report, schema.CategoryGraphicsCardPowerConnector); got != schema.StatusFail {
		t.Errorf("graphics-card-power-connector status = %s, want fail", got)
	}
}

func TestRunCheck_ProfileFlagOverridesBuildFile(t *testing.T) {
	flags := runCheckFlags()
	flags.profileName = "default"

	out, _, err := check(t, "inline_gpu.yaml", flags)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if report := decodeReport(t, out); report.Profile != "default" {
		t.Errorf("Profile = %q, want default", report.Profile)
	}
}

func TestRunCheck_StrictProfileBlocksDownclock(t *testing.T) {
	flags := runCheckFlags()
	flags.profileName = "strict"
	flags.failOn = "incompatible"

	out, _, err := check(t, "fast_memory.yaml", flags)
	wantExitCode(t, err, exitFailOn)
	if got := categoryStatus(decodeReport(t, out), schema.CategoryRAM); got != schema.StatusFail {
		t.Errorf("ram status = %s, want fail under strict", got)
	}
}

func TestRunCheck_BaselineMatches(t *testing.T) {
	dir := t.TempDir()
	flags := runCheckFlags()
	flags.out = filepath.Join(dir, "baseline.json")
	if _, _, err := check(t, "cooler_mismatch.yaml", flags); err != nil {
		t.Fatalf("recording baseline: %v", err)
	}

	flags.out = ""
	flags.baseline = filepath.Join(dir, "baseline.json")
	_, stderr, err := check(t, "cooler_mismatch.yaml", flags)
	if err != nil {
		t.Fatalf("expected no drift, got: %v\n%s", err, stderr)
	}
	if stderr != "" {
		t.Errorf("expected no diff output, got:\n%s", stderr)
	}
}

func TestRunCheck_BaselineDrift(t *testing.T) {
	dir := t.TempDir()
	flags := runCheckFlags()
	flags.out = filepath.Join(dir, "baseline.json")
	if _, _, err := check(t, "compatible.yaml", flags); err != nil {
		t.Fatalf("recording baseline: %v", err)
	}

	flags.out = ""
	flags.baseline = filepath.Join(dir, "baseline.json")
	flags.diffOut = filepath.Join(dir, "drift.patch")
	_, _, err := check(t, "cooler_mismatch.yaml", flags)
	wantExitCode(t, err, exitDrift)

	patch, err := os.ReadFile(flags.diffOut)
	if err != nil {
		t.Fatalf("reading diff: %v", err)
	}
	if !strings.HasPrefix(string(patch), "# drift from ") {
		t.Errorf("diff missing header:\n%s", patch)
	}
	if !strings.Contains(string(patch), "@@") {
		t.Errorf("diff has no hunks:\n%s", patch)
	}
}

func TestRunCheck_CorruptBaseline_ExitsCode3(t *testing.T) {
	baseline := filepath.Join(t.TempDir(), "baseline.json")
	if err := os.WriteFile(baseline, []byte(`{"tool": ""}`), 0o644); err != nil {
		t.Fatal(err)
	}

	flags := runCheckFlags()
	flags.baseline = baseline
	_, _, err := check(t, "compatible.yaml", flags)
	wantExitCode(t, err, exitInput)
}

func TestRunCheck_InvalidFlags_ExitsCode3(t *testing.T) {
	cases := map[string]func(*checkFlags){
		"format":    func(f *checkFlags) { f.format = "sarif" },
		"fail-on":   func(f *checkFlags) { f.failOn = "error" },
		"threshold": func(f *checkFlags) { f.severityThreshold = "info" },
		"profile":   func(f *checkFlags) { f.profileName = "lenient" },
		"diff-out":  func(f *checkFlags) { f.diffOut = "drift.patch" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			flags := runCheckFlags()
			mutate(&flags)
			_, _, err := check(t, "compatible.yaml", flags)
			wantExitCode(t, err, exitInput)
		})
	}
}

func TestRunCheck_MissingBuild_ExitsCode3(t *testing.T) {
	_, _, err := check(t, "nonexistent.yaml", runCheckFlags())
	wantExitCode(t, err, exitInput)
}

func TestRunCheck_MissingCatalog_ExitsCode3(t *testing.T) {
	flags := runCheckFlags()
	flags.catalogFiles = append(flags.catalogFiles, filepath.Join(testdataDir, "catalog", "nonexistent.yaml"))

	_, _, err := check(t, "compatible.yaml", flags)
	wantExitCode(t, err, exitInput)
}

func TestRunCheck_UnknownPart_ExitsCode4(t *testing.T) {
	_, _, err := check(t, "unknown_part.yaml", runCheckFlags())
	wantExitCode(t, err, exitResolve)
	if !strings.Contains(err.Error(), "1b4e28ba-2fa1-4d3b-a3f5-999999999999") {
		t.Errorf("error does not name the unknown part: %v", err)
	}
}

func TestRunCheck_Verbose_LogsToStderr(t *testing.T) {
	flags := runCheckFlags()
	flags.verbose = true

	_, stderr, err := check(t, "compatible.yaml", flags)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(stderr, "Build verified") {
		t.Errorf("expected debug log on stderr, got:\n%s", stderr)
	}
}

func TestRootCmd_Version(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := out.String(); got != "pcverify dev\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestRootCmd_CheckRequiresBuildFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"check"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error without a build file")
	}
}

func TestRootCmd_CheckFlags(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"check", buildPath("cooler_mismatch.yaml"),
		"--catalog", filepath.Join(testdataDir, "catalog", "core.yaml"),
		"--catalog", filepath.Join(testdataDir, "catalog", "power.yaml"),
		"--catalog", filepath.Join(testdataDir, "catalog", "chassis.yaml"),
		"--fail-on", "incompatible",
	})

	err := cmd.Execute()
	wantExitCode(t, err, exitFailOn)
	if report := decodeReport(t, out.String()); report.Compatible {
		t.Error("expected incompatible report on stdout")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	s := buf.String()
	if strings.Contains(s, "hidden") {
		t.Errorf("info record logged at warn level: %s", s)
	}
	if !strings.Contains(s, `"msg":"shown"`) {
		t.Errorf("expected JSON warn record, got: %s", s)
	}
}

// asExitErr is a type-assertion helper for *exitErr.
func asExitErr(err error, out **exitErr) bool {
	e, ok := err.(*exitErr)
	if ok {
		*out = e
	}
	return ok
}
