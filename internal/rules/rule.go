// Package rules implements the compatibility rule evaluators. Each rule reads
// only the build fact model and returns zero or more violations; none of them
// fail on a missing optional component.
package rules

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

// Slot names a single-valued build slot a rule depends on.
type Slot string

const (
	SlotCPU          Slot = "cpu"
	SlotMotherboard  Slot = "motherboard"
	SlotPSU          Slot = "psu"
	SlotCooler       Slot = "cooler"
	SlotCase         Slot = "case"
	SlotGraphicsCard Slot = "graphics_card"
)

// Present reports whether the slot is populated in b.
func (s Slot) Present(b *build.Build) bool {
	switch s {
	case SlotCPU:
		return b.CPU != nil
	case SlotMotherboard:
		return b.Motherboard != nil
	case SlotPSU:
		return b.PSU != nil
	case SlotCooler:
		return b.Cooler != nil
	case SlotCase:
		return b.Case != nil
	case SlotGraphicsCard:
		return b.GraphicsCard != nil
	}
	return false
}

// Evaluator checks one compatibility dimension of a build.
type Evaluator func(b *build.Build, p *profile.Profile) []schema.Violation

// Rule binds an evaluator to its report category and the slots it needs.
type Rule struct {
	Category schema.Category
	Requires []Slot
	Evaluate Evaluator
}

// Applicable reports whether every slot the rule requires is populated.
func (r Rule) Applicable(b *build.Build) bool {
	for _, s := range r.Requires {
		if !s.Present(b) {
			return false
		}
	}
	return true
}

// All returns every rule in report order.
func All() []Rule {
	rules := []Rule{
		{Category: schema.CategorySocket, Requires: []Slot{SlotCPU, SlotMotherboard}, Evaluate: CheckSocket},
		{Category: schema.CategoryRAM, Requires: []Slot{SlotCPU, SlotMotherboard}, Evaluate: CheckRAM},
		{Category: schema.CategoryPhysicalClearance, Requires: []Slot{SlotCase}, Evaluate: CheckClearance},
		{Category: schema.CategoryFormFactor, Requires: []Slot{SlotMotherboard, SlotCase}, Evaluate: CheckFormFactor},
	}
	for _, f := range connectorFamilies {
		rules = append(rules, f.rule())
	}
	return append(rules, Rule{
		Category: schema.CategoryPowerBudget,
		Requires: []Slot{SlotCPU, SlotPSU},
		Evaluate: CheckPowerBudget,
	})
}

func violation(sev schema.Severity, ids []uuid.UUID, format string, args ...any) schema.Violation {
	return schema.Violation{
		Message:      fmt.Sprintf(format, args...),
		Severity:     sev,
		ComponentIDs: ids,
	}
}

// ids concatenates groups of component IDs, dropping duplicates.
func ids(groups ...[]uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0)
	for _, g := range groups {
		for _, id := range g {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}
