package profile

import "github.com/vbukhtaev/pc-configurator-sub002/internal/schema"

func strict() *Profile {
	return &Profile{
		Name:                 "strict",
		OverclockSeverity:    schema.SeverityError,
		PowerSeverity:        schema.SeverityError,
		ThermalSeverity:      schema.SeverityError,
		FixedOverheadWatts:   DefaultFixedOverheadWatts,
		PowerHeadroomPercent: 20,
	}
}
