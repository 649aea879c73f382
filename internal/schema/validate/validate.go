// Package validate checks that a stored report is well formed before it is
// used as a baseline.
package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/review"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// Parse unmarshals a JSON report and validates its structure: category names
// and order, statuses, severities and the compatible flag.
func Parse(raw []byte) (*schema.Report, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("JSON parse failed: empty input")
	}

	var report schema.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("JSON parse failed: %w", err)
	}

	if err := validateReport(&report); err != nil {
		return nil, err
	}

	return &report, nil
}

func validateReport(r *schema.Report) error {
	if r.Tool == "" {
		return fmt.Errorf("report: tool is required")
	}
	if r.Error != nil {
		if r.Error.Code == "" {
			return fmt.Errorf("report.error: code is required")
		}
		if r.Compatible {
			return fmt.Errorf("report: a report with a build error cannot be compatible")
		}
		if len(r.Categories) > 0 {
			return fmt.Errorf("report: a report with a build error has no categories, got %d", len(r.Categories))
		}
		return nil
	}

	last := -1
	for i, c := range r.Categories {
		if err := validateCategory(c, i, last); err != nil {
			return err
		}
		last = schema.CategoryOrdinal(c.Name)
	}

	if got, want := r.Compatible, review.Compatible(r.Categories); got != want {
		return fmt.Errorf("report: compatible is %t but violations imply %t", got, want)
	}
	return nil
}

func validateCategory(c schema.CategoryResult, idx, last int) error {
	prefix := fmt.Sprintf("categories[%d]", idx)

	ord := schema.CategoryOrdinal(c.Name)
	if ord < 0 {
		return fmt.Errorf("%s: unknown category %q", prefix, c.Name)
	}
	if ord <= last {
		return fmt.Errorf("%s: category %q is out of order", prefix, c.Name)
	}
	if !schema.IsValidStatus(c.Status) {
		return fmt.Errorf("%s: invalid status %q (must be pass, warn, fail, or skip)", prefix, c.Status)
	}
	for j, v := range c.Violations {
		if err := validateViolation(v, fmt.Sprintf("%s.violations[%d]", prefix, j)); err != nil {
			return err
		}
	}

	if c.Status == schema.StatusSkip {
		if len(c.Violations) > 0 {
			return fmt.Errorf("%s: skipped category %q has %d violations", prefix, c.Name, len(c.Violations))
		}
		return nil
	}
	// Severity filtering may drop warnings from a warn category, never errors.
	want := review.Status(c.Violations)
	if c.Status == want || (c.Status == schema.StatusWarn && want == schema.StatusPass) {
		return nil
	}
	return fmt.Errorf("%s: status %q does not match violations (want %q)", prefix, c.Status, want)
}

func validateViolation(v schema.Violation, prefix string) error {
	if err := validateSeverity(v.Severity, prefix); err != nil {
		return err
	}
	if v.Message == "" {
		return fmt.Errorf("%s: message is required", prefix)
	}
	return nil
}

func validateSeverity(s schema.Severity, prefix string) error {
	switch s {
	case schema.SeverityWarning, schema.SeverityError:
		return nil
	}
	return fmt.Errorf("%s: invalid severity %q (must be warning or error)", prefix, s)
}
