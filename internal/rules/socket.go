package rules

import (
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckSocket fails when the CPU socket differs from the motherboard socket or
// is not among the cooler's supported sockets. Without a cooler only the board
// is compared.
func CheckSocket(b *build.Build, _ *profile.Profile) []schema.Violation {
	cpu, mb := b.CPU, b.Motherboard
	if cpu == nil || mb == nil {
		return nil
	}

	var out []schema.Violation
	if cpu.Socket != mb.Socket {
		out = append(out, violation(schema.SeverityError, []uuid.UUID{cpu.ID, mb.ID},
			"CPU %q socket %s does not match motherboard %q socket %s", cpu.Name, cpu.Socket, mb.Name, mb.Socket))
	}
	if c := b.Cooler; c != nil && !c.SupportsSocket(cpu.Socket) {
		out = append(out, violation(schema.SeverityError, []uuid.UUID{cpu.ID, c.ID},
			"cooler %q does not support CPU %q socket %s", c.Name, cpu.Name, cpu.Socket))
	}
	return out
}
