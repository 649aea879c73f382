// Package catalog loads part definitions and resolves build selections
// against them.
package catalog

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
)

var (
	// ErrPartNotFound is returned when a selection names an unknown part ID.
	ErrPartNotFound = errors.New("part not found")
	// ErrDuplicateID is returned when two parts share an ID.
	ErrDuplicateID = errors.New("duplicate part id")
	// ErrInvalid wraps struct validation failures in parts or selections.
	ErrInvalid = errors.New("invalid")
)

// Section names, as used in catalog files and error messages.
const (
	SectionCPUs          = "cpus"
	SectionMotherboards  = "motherboards"
	SectionPSUs          = "psus"
	SectionCoolers       = "coolers"
	SectionCases         = "cases"
	SectionGraphicsCards = "graphics_cards"
	SectionRAMModules    = "ram_modules"
	SectionFans          = "fans"
	SectionHDDs          = "hdds"
	SectionSSDs          = "ssds"
)

// Parts is the on-disk layout of a catalog file.
type Parts struct {
	CPUs          []build.CPU          `json:"cpus,omitempty" yaml:"cpus,omitempty" validate:"dive"`
	Motherboards  []build.Motherboard  `json:"motherboards,omitempty" yaml:"motherboards,omitempty" validate:"dive"`
	PSUs          []build.PSU          `json:"psus,omitempty" yaml:"psus,omitempty" validate:"dive"`
	Coolers       []build.Cooler       `json:"coolers,omitempty" yaml:"coolers,omitempty" validate:"dive"`
	Cases         []build.Case         `json:"cases,omitempty" yaml:"cases,omitempty" validate:"dive"`
	GraphicsCards []build.GraphicsCard `json:"graphics_cards,omitempty" yaml:"graphics_cards,omitempty" validate:"dive"`
	RAMModules    []build.RAMModule    `json:"ram_modules,omitempty" yaml:"ram_modules,omitempty" validate:"dive"`
	Fans          []build.Fan          `json:"fans,omitempty" yaml:"fans,omitempty" validate:"dive"`
	HDDs          []build.HDD          `json:"hdds,omitempty" yaml:"hdds,omitempty" validate:"dive"`
	SSDs          []build.SSD          `json:"ssds,omitempty" yaml:"ssds,omitempty" validate:"dive"`
}

// Catalog is an immutable set of parts indexed by ID. It is safe for
// concurrent reads once loaded.
type Catalog struct {
	// Hash is "sha256:<hex>" over the loaded files, in load order.
	Hash    string
	Sources []string

	owner         map[uuid.UUID]string
	cpus          map[uuid.UUID]build.CPU
	motherboards  map[uuid.UUID]build.Motherboard
	psus          map[uuid.UUID]build.PSU
	coolers       map[uuid.UUID]build.Cooler
	cases         map[uuid.UUID]build.Case
	graphicsCards map[uuid.UUID]build.GraphicsCard
	ramModules    map[uuid.UUID]build.RAMModule
	fans          map[uuid.UUID]build.Fan
	hdds          map[uuid.UUID]build.HDD
	ssds          map[uuid.UUID]build.SSD
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		owner:         make(map[uuid.UUID]string),
		cpus:          make(map[uuid.UUID]build.CPU),
		motherboards:  make(map[uuid.UUID]build.Motherboard),
		psus:          make(map[uuid.UUID]build.PSU),
		coolers:       make(map[uuid.UUID]build.Cooler),
		cases:         make(map[uuid.UUID]build.Case),
		graphicsCards: make(map[uuid.UUID]build.GraphicsCard),
		ramModules:    make(map[uuid.UUID]build.RAMModule),
		fans:          make(map[uuid.UUID]build.Fan),
		hdds:          make(map[uuid.UUID]build.HDD),
		ssds:          make(map[uuid.UUID]build.SSD),
	}
}

// Load reads catalog files in order and merges them. Files are YAML; JSON
// files load too since JSON is valid YAML.
func Load(paths ...string) (*Catalog, error) {
	c := New()
	sum := sha256.New()
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading catalog file: %w", err)
		}
		sum.Write(data)

		parts, err := decodeParts(data)
		if err != nil {
			return nil, fmt.Errorf("parsing catalog file %q: %w", p, err)
		}
		if err := c.Add(parts); err != nil {
			return nil, fmt.Errorf("loading catalog file %q: %w", p, err)
		}
		c.Sources = append(c.Sources, p)
	}
	c.Hash = fmt.Sprintf("sha256:%x", sum.Sum(nil))
	return c, nil
}

func decodeParts(data []byte) (Parts, error) {
	var parts Parts
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&parts); err != nil && !errors.Is(err, io.EOF) {
		return Parts{}, err
	}
	return parts, nil
}

// Add validates parts and merges them into c. IDs must be unique across every
// section. On error c is left unchanged.
func (c *Catalog) Add(parts Parts) error {
	if err := validateStruct(&parts); err != nil {
		return err
	}

	staged := c.clone()
	errs := []error{
		insert(staged, staged.cpus, SectionCPUs, parts.CPUs, func(p build.CPU) uuid.UUID { return p.ID }),
		insert(staged, staged.motherboards, SectionMotherboards, parts.Motherboards, func(p build.Motherboard) uuid.UUID { return p.ID }),
		insert(staged, staged.psus, SectionPSUs, parts.PSUs, func(p build.PSU) uuid.UUID { return p.ID }),
		insert(staged, staged.coolers, SectionCoolers, parts.Coolers, func(p build.Cooler) uuid.UUID { return p.ID }),
		insert(staged, staged.cases, SectionCases, parts.Cases, func(p build.Case) uuid.UUID { return p.ID }),
		insert(staged, staged.graphicsCards, SectionGraphicsCards, parts.GraphicsCards, func(p build.GraphicsCard) uuid.UUID { return p.ID }),
		insert(staged, staged.ramModules, SectionRAMModules, parts.RAMModules, func(p build.RAMModule) uuid.UUID { return p.ID }),
		insert(staged, staged.fans, SectionFans, parts.Fans, func(p build.Fan) uuid.UUID { return p.ID }),
		insert(staged, staged.hdds, SectionHDDs, parts.HDDs, func(p build.HDD) uuid.UUID { return p.ID }),
		insert(staged, staged.ssds, SectionSSDs, parts.SSDs, func(p build.SSD) uuid.UUID { return p.ID }),
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	*c = *staged
	return nil
}

func insert[T any](c *Catalog, table map[uuid.UUID]T, section string, parts []T, id func(T) uuid.UUID) error {
	var errs []error
	for i, p := range parts {
		pid := id(p)
		if prev, ok := c.owner[pid]; ok {
			errs = append(errs, fmt.Errorf("%s[%d]: %w %s (already defined in %s)", section, i, ErrDuplicateID, pid, prev))
			continue
		}
		c.owner[pid] = section
		table[pid] = p
	}
	return errors.Join(errs...)
}

// Len returns the number of parts in the catalog.
func (c *Catalog) Len() int {
	return len(c.owner)
}

// Counts returns the number of parts per section.
func (c *Catalog) Counts() map[string]int {
	out := make(map[string]int)
	for _, section := range c.owner {
		out[section]++
	}
	return out
}

// Section returns the section that defines id, if any.
func (c *Catalog) Section(id uuid.UUID) (string, bool) {
	s, ok := c.owner[id]
	return s, ok
}

// Sections lists the section names in file order.
func Sections() []string {
	return slices.Clone(sectionOrder)
}

var sectionOrder = []string{
	SectionCPUs, SectionMotherboards, SectionPSUs, SectionCoolers, SectionCases,
	SectionGraphicsCards, SectionRAMModules, SectionFans, SectionHDDs, SectionSSDs,
}

func (c *Catalog) clone() *Catalog {
	return &Catalog{
		Hash:          c.Hash,
		Sources:       slices.Clone(c.Sources),
		owner:         maps.Clone(c.owner),
		cpus:          maps.Clone(c.cpus),
		motherboards:  maps.Clone(c.motherboards),
		psus:          maps.Clone(c.psus),
		coolers:       maps.Clone(c.coolers),
		cases:         maps.Clone(c.cases),
		graphicsCards: maps.Clone(c.graphicsCards),
		ramModules:    maps.Clone(c.ramModules),
		fans:          maps.Clone(c.fans),
		hdds:          maps.Clone(c.hdds),
		ssds:          maps.Clone(c.ssds),
	}
}
