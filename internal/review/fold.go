package review

import "github.com/vbukhtaev/pc-configurator-sub002/internal/schema"

// Status computes the category status from its violations. A category with
// no violations passes; any error fails it; warnings alone leave it at warn.
func Status(violations []schema.Violation) schema.Status {
	status := schema.StatusPass
	for _, v := range violations {
		switch v.Severity {
		case schema.SeverityError:
			return schema.StatusFail
		case schema.SeverityWarning:
			status = schema.StatusWarn
		}
	}
	return status
}

// Compatible reports whether no category carries an error-severity violation.
// Compatibility is always computed before any --severity-threshold filtering.
func Compatible(categories []schema.CategoryResult) bool {
	for _, c := range categories {
		for _, v := range c.Violations {
			if v.Severity == schema.SeverityError {
				return false
			}
		}
	}
	return true
}

// Counts returns the pre-filter error and warning counts across categories.
func Counts(categories []schema.CategoryResult) (errors, warnings int) {
	for _, c := range categories {
		for _, v := range c.Violations {
			switch v.Severity {
			case schema.SeverityError:
				errors++
			case schema.SeverityWarning:
				warnings++
			}
		}
	}
	return
}

// Summarize fills a Summary from the folded categories.
func Summarize(categories []schema.CategoryResult) schema.Summary {
	var s schema.Summary
	s.ErrorCount, s.WarningCount = Counts(categories)
	for _, c := range categories {
		if c.Status == schema.StatusSkip {
			s.CategoriesSkipped++
		} else {
			s.CategoriesChecked++
		}
	}
	return s
}

// FilterBySeverity returns a copy of categories keeping only violations at or
// above the threshold. Category names, order and statuses are preserved.
func FilterBySeverity(categories []schema.CategoryResult, threshold schema.Severity) []schema.CategoryResult {
	if threshold == schema.SeverityWarning {
		return categories
	}
	out := make([]schema.CategoryResult, len(categories))
	for i, c := range categories {
		kept := make([]schema.Violation, 0, len(c.Violations))
		for _, v := range c.Violations {
			if meetsSeverity(v.Severity, threshold) {
				kept = append(kept, v)
			}
		}
		c.Violations = kept
		out[i] = c
	}
	return out
}

func meetsSeverity(s, threshold schema.Severity) bool {
	return schema.SeverityOrdinal(s) >= schema.SeverityOrdinal(threshold)
}
