package rules

import (
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckClearance compares cooler height, graphics card length and PSU length
// against the case limits. A nil limit or an undeclared (zero) dimension passes.
func CheckClearance(b *build.Build, _ *profile.Profile) []schema.Violation {
	c := b.Case
	if c == nil {
		return nil
	}

	var out []schema.Violation
	if cl := b.Cooler; cl != nil {
		if v, ok := exceeds("cooler", cl.ID, cl.Name, "height", cl.Height, c, c.MaxCoolerHeight); ok {
			out = append(out, v)
		}
	}
	if g := b.GraphicsCard; g != nil {
		if v, ok := exceeds("graphics card", g.ID, g.Name, "length", g.Length, c, c.MaxGraphicsCardLength); ok {
			out = append(out, v)
		}
	}
	if ps := b.PSU; ps != nil {
		if v, ok := exceeds("PSU", ps.ID, ps.Name, "length", ps.Length, c, c.MaxPSULength); ok {
			out = append(out, v)
		}
	}
	return out
}

func exceeds(kind string, id uuid.UUID, name, dimension string, size int, c *build.Case, limit *int) (schema.Violation, bool) {
	if limit == nil || size <= 0 || size <= *limit {
		return schema.Violation{}, false
	}
	v := violation(schema.SeverityError, []uuid.UUID{id, c.ID},
		"%s %q %s %d mm exceeds case %q limit of %d mm", kind, name, dimension, size, c.Name, *limit)
	v.Details = map[string]any{dimension: size, "limit": *limit}
	return v, true
}
