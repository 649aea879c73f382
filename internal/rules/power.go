package rules

import (
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckPowerBudget estimates system draw as CPU TDP plus GPU consumption plus
// the profile's fixed overhead and compares it with the PSU rating. Catalog
// data cannot give exact draw, so findings use the profile's power severity;
// an unknown PSU rating is always a warning. A cooler rated below the CPU's
// TDP is reported here too.
func CheckPowerBudget(b *build.Build, p *profile.Profile) []schema.Violation {
	cpu, psu := b.CPU, b.PSU
	if cpu == nil || psu == nil {
		return nil
	}

	var out []schema.Violation
	consumers := []uuid.UUID{cpu.ID}
	estimated := cpu.MaxTDP + p.FixedOverheadWatts
	if g := b.GraphicsCard; g != nil {
		estimated += g.PowerConsumption
		consumers = append(consumers, g.ID)
	}
	needed := estimated * (100 + p.PowerHeadroomPercent) / 100

	switch {
	case psu.Power <= 0:
		out = append(out, violation(schema.SeverityWarning, ids(consumers, []uuid.UUID{psu.ID}),
			"PSU %q does not declare a wattage; estimated draw of %d W cannot be verified", psu.Name, estimated))
	case needed > psu.Power:
		v := violation(p.PowerSeverity, ids(consumers, []uuid.UUID{psu.ID}),
			"estimated draw %d W (%d W with %d%% headroom) exceeds PSU %q rating of %d W",
			estimated, needed, p.PowerHeadroomPercent, psu.Name, psu.Power)
		v.Details = map[string]any{"estimated_draw": estimated, "required": needed, "supplied": psu.Power}
		out = append(out, v)
	}

	if c := b.Cooler; c != nil && c.PowerDissipation > 0 && cpu.MaxTDP > c.PowerDissipation {
		v := violation(p.ThermalSeverity, []uuid.UUID{cpu.ID, c.ID},
			"cooler %q dissipates %d W, below CPU %q TDP of %d W", c.Name, c.PowerDissipation, cpu.Name, cpu.MaxTDP)
		v.Details = map[string]any{"required": cpu.MaxTDP, "supplied": c.PowerDissipation}
		out = append(out, v)
	}
	return out
}
