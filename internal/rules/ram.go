package rules

import (
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckRAM verifies every selected memory module against the board and the
// CPU memory controller, then checks total capacity and slot usage.
//
// A module whose type neither side accepts is an error. A module rated above
// the effective clock limit still works downclocked, so it is graded with the
// profile's overclock severity instead.
func CheckRAM(b *build.Build, p *profile.Profile) []schema.Violation {
	cpu, mb := b.CPU, b.Motherboard
	if cpu == nil || mb == nil || len(b.RAM) == 0 {
		return nil
	}

	var out []schema.Violation
	totalSize, totalModules := 0, 0
	moduleIDs := make([]uuid.UUID, 0, len(b.RAM))

	for _, q := range b.RAM {
		m := q.Part
		totalSize += m.Size * q.Count
		totalModules += q.Count
		moduleIDs = append(moduleIDs, m.ID)

		boardOK := m.RAMType == mb.RAMType
		if !boardOK {
			out = append(out, violation(schema.SeverityError, []uuid.UUID{m.ID, mb.ID},
				"RAM %q type %s does not match motherboard %q memory type %s", m.Name, m.RAMType, mb.Name, mb.RAMType))
		}
		support, cpuOK := cpu.SupportFor(m.RAMType)
		if !cpuOK {
			out = append(out, violation(schema.SeverityError, []uuid.UUID{m.ID, cpu.ID},
				"RAM %q type %s is not supported by CPU %q", m.Name, m.RAMType, cpu.Name))
		}
		if !boardOK || !cpuOK {
			continue
		}

		limit := clockLimit(mb.MemoryClockLimit(), support.MaxMemoryClock)
		if limit > 0 && m.Clock > limit {
			v := violation(p.OverclockSeverity, []uuid.UUID{m.ID, mb.ID, cpu.ID},
				"RAM %q rated at %d MHz will run downclocked at %d MHz", m.Name, m.Clock, limit)
			v.Details = map[string]any{"rated_clock": m.Clock, "effective_clock": limit}
			out = append(out, v)
		}
	}

	if mb.MaxMemorySize > 0 && totalSize > mb.MaxMemorySize {
		v := violation(schema.SeverityError, ids([]uuid.UUID{mb.ID}, moduleIDs),
			"total memory %d GB exceeds motherboard %q maximum of %d GB", totalSize, mb.Name, mb.MaxMemorySize)
		v.Details = map[string]any{"required": totalSize, "supplied": mb.MaxMemorySize}
		out = append(out, v)
	}
	if mb.SlotsCount > 0 && totalModules > mb.SlotsCount {
		v := violation(schema.SeverityError, ids([]uuid.UUID{mb.ID}, moduleIDs),
			"%d memory modules selected but motherboard %q has %d slots", totalModules, mb.Name, mb.SlotsCount)
		v.Details = map[string]any{"required": totalModules, "supplied": mb.SlotsCount}
		out = append(out, v)
	}
	return out
}

// clockLimit is the lower of two non-zero clock limits; zero means unknown.
func clockLimit(board, cpu int) int {
	switch {
	case board == 0:
		return cpu
	case cpu == 0:
		return board
	case cpu < board:
		return cpu
	default:
		return board
	}
}
