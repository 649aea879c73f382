package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
)

// Item selects Count units of one part.
type Item struct {
	ID    uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Count int       `json:"count" yaml:"count" validate:"min=1"`
}

// Selection names the parts of a build by ID. Nil single slots and empty
// lists are left unselected.
type Selection struct {
	CPU          *uuid.UUID `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Motherboard  *uuid.UUID `json:"motherboard,omitempty" yaml:"motherboard,omitempty"`
	PSU          *uuid.UUID `json:"psu,omitempty" yaml:"psu,omitempty"`
	Cooler       *uuid.UUID `json:"cooler,omitempty" yaml:"cooler,omitempty"`
	Case         *uuid.UUID `json:"case,omitempty" yaml:"case,omitempty"`
	GraphicsCard *uuid.UUID `json:"graphics_card,omitempty" yaml:"graphics_card,omitempty"`

	RAM  []Item `json:"ram_modules,omitempty" yaml:"ram_modules,omitempty" validate:"dive"`
	Fans []Item `json:"fans,omitempty" yaml:"fans,omitempty" validate:"dive"`
	HDDs []Item `json:"hdds,omitempty" yaml:"hdds,omitempty" validate:"dive"`
	SSDs []Item `json:"ssds,omitempty" yaml:"ssds,omitempty" validate:"dive"`
}

// Resolve turns a selection into a build. Every unknown ID is reported,
// joined into one error matching ErrPartNotFound. A selection without a CPU
// or motherboard resolves; completeness is checked during verification.
func (c *Catalog) Resolve(sel Selection) (*build.Build, error) {
	if err := validateStruct(&sel); err != nil {
		return nil, err
	}

	r := resolver{}
	b := &build.Build{
		CPU:          one(&r, c.cpus, SectionCPUs, sel.CPU),
		Motherboard:  one(&r, c.motherboards, SectionMotherboards, sel.Motherboard),
		PSU:          one(&r, c.psus, SectionPSUs, sel.PSU),
		Cooler:       one(&r, c.coolers, SectionCoolers, sel.Cooler),
		Case:         one(&r, c.cases, SectionCases, sel.Case),
		GraphicsCard: one(&r, c.graphicsCards, SectionGraphicsCards, sel.GraphicsCard),
		RAM:          many(&r, c.ramModules, SectionRAMModules, sel.RAM),
		Fans:         many(&r, c.fans, SectionFans, sel.Fans),
		HDDs:         many(&r, c.hdds, SectionHDDs, sel.HDDs),
		SSDs:         many(&r, c.ssds, SectionSSDs, sel.SSDs),
	}
	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return b, nil
}

type resolver struct {
	errs []error
}

func (r *resolver) missing(section string, id uuid.UUID) {
	r.errs = append(r.errs, fmt.Errorf("%s %s: %w", section, id, ErrPartNotFound))
}

func one[T any](r *resolver, table map[uuid.UUID]T, section string, id *uuid.UUID) *T {
	if id == nil {
		return nil
	}
	p, ok := table[*id]
	if !ok {
		r.missing(section, *id)
		return nil
	}
	return &p
}

func many[T any](r *resolver, table map[uuid.UUID]T, section string, items []Item) []build.Quantified[T] {
	if len(items) == 0 {
		return nil
	}
	out := make([]build.Quantified[T], 0, len(items))
	for _, it := range items {
		p, ok := table[it.ID]
		if !ok {
			r.missing(section, it.ID)
			continue
		}
		out = append(out, build.Quantified[T]{Part: p, Count: it.Count})
	}
	return out
}
