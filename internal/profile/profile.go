package profile

import (
	"fmt"
	"strings"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// DefaultFixedOverheadWatts approximates the draw of everything the catalog
// has no figure for: board, memory, drives and fans.
const DefaultFixedOverheadWatts = 100

// Profile defines how advisory findings are graded for a named policy.
type Profile struct {
	Name string
	// OverclockSeverity grades RAM rated above what the board and CPU run.
	OverclockSeverity schema.Severity
	// PowerSeverity grades an estimated draw above PSU capacity. An unknown
	// PSU wattage is always a warning.
	PowerSeverity schema.Severity
	// ThermalSeverity grades a cooler rated below the CPU's TDP.
	ThermalSeverity schema.Severity
	// FixedOverheadWatts is added to CPU and GPU draw in the power estimate.
	FixedOverheadWatts int
	// PowerHeadroomPercent is the margin the PSU must keep above the estimate.
	PowerHeadroomPercent int
}

// Get returns the built-in profile for the given name.
func Get(name string) (*Profile, error) {
	switch name {
	case "default", "":
		return advisory(), nil
	case "strict":
		return strict(), nil
	default:
		return nil, fmt.Errorf("unknown profile %q: valid profiles are %s", name, strings.Join(Names(), ", "))
	}
}

// Names lists the built-in profile names.
func Names() []string {
	return []string{"default", "strict"}
}

// Describe returns a one-paragraph summary of the grading rules, used in the
// markdown report footer.
func (p *Profile) Describe() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Profile: %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("- RAM above rated clock: %s\n", p.OverclockSeverity))
	sb.WriteString(fmt.Sprintf("- Power budget: %s (overhead %d W, headroom %d%%)\n",
		p.PowerSeverity, p.FixedOverheadWatts, p.PowerHeadroomPercent))
	sb.WriteString(fmt.Sprintf("- Cooler below CPU TDP: %s\n", p.ThermalSeverity))
	return sb.String()
}
