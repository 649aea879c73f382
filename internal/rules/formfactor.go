package rules

import (
	"slices"

	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckFormFactor verifies the case accepts the motherboard and PSU form
// factors. A case that declares no form factors for a part is not checked.
func CheckFormFactor(b *build.Build, _ *profile.Profile) []schema.Violation {
	c, mb := b.Case, b.Motherboard
	if c == nil || mb == nil {
		return nil
	}

	var out []schema.Violation
	if len(c.MotherboardFormFactors) > 0 && !slices.Contains(c.MotherboardFormFactors, mb.FormFactor) {
		out = append(out, violation(schema.SeverityError, []uuid.UUID{mb.ID, c.ID},
			"motherboard %q form factor %s is not supported by case %q", mb.Name, mb.FormFactor, c.Name))
	}
	if ps := b.PSU; ps != nil && len(c.PSUFormFactors) > 0 && !slices.Contains(c.PSUFormFactors, ps.FormFactor) {
		out = append(out, violation(schema.SeverityError, []uuid.UUID{ps.ID, c.ID},
			"PSU %q form factor %s is not supported by case %q", ps.Name, ps.FormFactor, c.Name))
	}
	return out
}
