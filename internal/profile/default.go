package profile

import "github.com/vbukhtaev/pc-configurator-sub002/internal/schema"

// advisory reports downclocking, power and thermal findings without blocking
// the build.
func advisory() *Profile {
	return &Profile{
		Name:               "default",
		OverclockSeverity:  schema.SeverityWarning,
		PowerSeverity:      schema.SeverityWarning,
		ThermalSeverity:    schema.SeverityWarning,
		FixedOverheadWatts: DefaultFixedOverheadWatts,
	}
}
