package schema

import "github.com/google/uuid"

// Tool is the name stamped into every report.
const Tool = "pcverify"

// Report is the top-level verification result for one build.
type Report struct {
	Tool       string           `json:"tool"`
	Version    string           `json:"version"`
	Build      string           `json:"build,omitempty"`
	Profile    string           `json:"profile"`
	Compatible bool             `json:"compatible"`
	Error      *BuildError      `json:"error,omitempty"`
	Summary    Summary          `json:"summary"`
	Categories []CategoryResult `json:"categories"`
}

// BuildError is a structural problem that prevented verification, such as a
// build without a CPU. When set, Categories is empty.
type BuildError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

// CodeBuildIncomplete marks a build missing one of its mandatory components.
const CodeBuildIncomplete = "BUILD_INCOMPLETE"

// Summary holds violation counts across all categories.
// Counts always reflect every violation before any --severity-threshold filtering.
type Summary struct {
	ErrorCount        int `json:"error_count"`
	WarningCount      int `json:"warning_count"`
	CategoriesChecked int `json:"categories_checked"`
	CategoriesSkipped int `json:"categories_skipped"`
}

// Severity levels for violations. Only errors affect compatibility.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SeverityOrdinal returns the numeric ordering for a severity:
// warning(0) < error(1). Returns -1 for an unrecognised severity.
func SeverityOrdinal(s Severity) int {
	switch s {
	case SeverityWarning:
		return 0
	case SeverityError:
		return 1
	default:
		return -1
	}
}

// Status is the outcome of one category.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// IsValidStatus reports whether s is one of the four category statuses.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPass, StatusWarn, StatusFail, StatusSkip:
		return true
	}
	return false
}

// Category names one compatibility dimension.
type Category string

const (
	CategorySocket                     Category = "socket"
	CategoryRAM                        Category = "ram"
	CategoryPhysicalClearance          Category = "physical-clearance"
	CategoryFormFactor                 Category = "form-factor"
	CategoryCPUPowerConnector          Category = "cpu-power-connector"
	CategoryMainPowerConnector         Category = "main-power-connector"
	CategoryFanPowerConnector          Category = "fan-power-connector"
	CategoryStorageConnector           Category = "storage-connector"
	CategoryStoragePowerConnector      Category = "storage-power-connector"
	CategoryGraphicsCardPowerConnector Category = "graphics-card-power-connector"
	CategoryFanSize                    Category = "fan-size"
	CategoryExpansionBay               Category = "expansion-bay"
	CategoryPowerBudget                Category = "power-budget"
)

// categoryOrder is the fixed report order.
var categoryOrder = []Category{
	CategorySocket,
	CategoryRAM,
	CategoryPhysicalClearance,
	CategoryFormFactor,
	CategoryCPUPowerConnector,
	CategoryMainPowerConnector,
	CategoryFanPowerConnector,
	CategoryStorageConnector,
	CategoryStoragePowerConnector,
	CategoryGraphicsCardPowerConnector,
	CategoryFanSize,
	CategoryExpansionBay,
	CategoryPowerBudget,
}

// Categories returns every category in report order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// CategoryOrdinal returns the position of c in report order, or -1 if c is
// not a known category.
func CategoryOrdinal(c Category) int {
	for i, known := range categoryOrder {
		if known == c {
			return i
		}
	}
	return -1
}

// IsValidCategory reports whether c is one of the 13 compatibility categories.
func IsValidCategory(c Category) bool {
	return CategoryOrdinal(c) >= 0
}

// CategoryResult holds the outcome and violations of one category.
type CategoryResult struct {
	Name       Category    `json:"name"`
	Status     Status      `json:"status"`
	Violations []Violation `json:"violations"`
}

// Violation is a single compatibility finding.
type Violation struct {
	Message      string         `json:"message"`
	Severity     Severity       `json:"severity"`
	ComponentIDs []uuid.UUID    `json:"component_ids"`
	Details      map[string]any `json:"details,omitempty"`
}
