package rules

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// CheckConnectorBudget compares per-kind demand against supply and returns an
// error for every kind where more connectors are required than supplied.
// providers are the components expected to supply this family; they are named
// in every violation even when they offer none of the exhausted kind.
func CheckConnectorBudget(noun string, required, supplied *build.Tally, providers []uuid.UUID) []schema.Violation {
	var out []schema.Violation
	for _, kind := range required.Kinds() {
		need, have := required.Count(kind), supplied.Count(kind)
		if need <= have {
			continue
		}
		out = append(out, schema.Violation{
			Message:      fmt.Sprintf("%s %s: required %d, supplied %d", noun, kind, need, have),
			Severity:     schema.SeverityError,
			ComponentIDs: ids(providers, required.Owners(kind)),
			Details: map[string]any{
				"kind":     kind,
				"required": need,
				"supplied": have,
			},
		})
	}
	return out
}

// connectorFamily is one connector budget: the same algorithm applied to a
// different pair of consuming and providing components.
type connectorFamily struct {
	category  schema.Category
	noun      string
	requires  []Slot
	required  func(b *build.Build) *build.Tally
	supplied  func(b *build.Build) *build.Tally
	providers func(b *build.Build) []uuid.UUID
}

func (f connectorFamily) rule() Rule {
	return Rule{
		Category: f.category,
		Requires: f.requires,
		Evaluate: func(b *build.Build, _ *profile.Profile) []schema.Violation {
			for _, s := range f.requires {
				if !s.Present(b) {
					return nil
				}
			}
			return CheckConnectorBudget(f.noun, f.required(b), f.supplied(b), f.providers(b))
		},
	}
}

// connectorFamilies lists the budgets in report order.
var connectorFamilies = []connectorFamily{
	{
		category: schema.CategoryCPUPowerConnector,
		noun:     "CPU power connector",
		requires: []Slot{SlotMotherboard, SlotPSU},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Motherboard.ID, b.Motherboard.CPUPowerConnectors, 1)
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.PSU.ID, b.PSU.CPUPowerConnectors, 1)
			return t
		},
		providers: psuProvider,
	},
	{
		category: schema.CategoryMainPowerConnector,
		noun:     "main power connector",
		requires: []Slot{SlotMotherboard, SlotPSU},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Motherboard.ID, b.Motherboard.MainPowerConnectors, 1)
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.PSU.ID, b.PSU.MainPowerConnectors, 1)
			return t
		},
		providers: psuProvider,
	},
	{
		category: schema.CategoryFanPowerConnector,
		noun:     "fan power connector",
		requires: []Slot{SlotMotherboard},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			for _, q := range b.Fans {
				t.Add(q.Part.ID, q.Part.PowerConnector, q.Count)
			}
			if c := b.Cooler; c != nil {
				t.Add(c.ID, c.FanPowerConnector, 1)
			}
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Motherboard.ID, b.Motherboard.FanPowerConnectors, 1)
			if c := b.Case; c != nil {
				t.AddAll(c.ID, c.FanPowerConnectors, 1)
			}
			return t
		},
		providers: func(b *build.Build) []uuid.UUID {
			out := []uuid.UUID{b.Motherboard.ID}
			if b.Case != nil {
				out = append(out, b.Case.ID)
			}
			return out
		},
	},
	{
		category: schema.CategoryStorageConnector,
		noun:     "storage connector",
		requires: []Slot{SlotMotherboard},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			for _, d := range b.Drives() {
				t.Add(d.ID, d.Drive.StorageConnector, d.Count)
			}
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Motherboard.ID, b.Motherboard.StorageConnectors, 1)
			return t
		},
		providers: func(b *build.Build) []uuid.UUID { return []uuid.UUID{b.Motherboard.ID} },
	},
	{
		category: schema.CategoryStoragePowerConnector,
		noun:     "storage power connector",
		requires: []Slot{SlotPSU},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			for _, d := range b.Drives() {
				t.Add(d.ID, d.Drive.StoragePowerConnector, d.Count)
			}
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.PSU.ID, b.PSU.StoragePowerConnectors, 1)
			return t
		},
		providers: psuProvider,
	},
	{
		category: schema.CategoryGraphicsCardPowerConnector,
		noun:     "graphics card power connector",
		requires: []Slot{SlotGraphicsCard, SlotPSU},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.GraphicsCard.ID, b.GraphicsCard.PowerConnectors, 1)
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.PSU.ID, b.PSU.GraphicsCardPowerConnectors, 1)
			return t
		},
		providers: psuProvider,
	},
	{
		category: schema.CategoryFanSize,
		noun:     "fan mount",
		requires: []Slot{SlotCase},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			for _, q := range b.Fans {
				t.Add(q.Part.ID, q.Part.Size, q.Count)
			}
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Case.ID, b.Case.FanSizes, 1)
			return t
		},
		providers: caseProvider,
	},
	{
		category: schema.CategoryExpansionBay,
		noun:     "expansion bay",
		requires: []Slot{SlotCase},
		required: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			for _, d := range b.Drives() {
				t.Add(d.ID, d.Drive.ExpansionBayFormat, d.Count)
			}
			return t
		},
		supplied: func(b *build.Build) *build.Tally {
			t := build.NewTally()
			t.AddAll(b.Case.ID, b.Case.ExpansionBayFormats, 1)
			return t
		},
		providers: caseProvider,
	},
}

func psuProvider(b *build.Build) []uuid.UUID { return []uuid.UUID{b.PSU.ID} }
func caseProvider(b *build.Build) []uuid.UUID { return []uuid.UUID{b.Case.ID} }
