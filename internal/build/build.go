// Package build holds the read-only fact model a compatibility check runs
// against: one resolved snapshot of every part selected for a PC build.
package build

import "github.com/google/uuid"

// Build is a concrete selection of components under compatibility review.
// A nil single slot or an empty quantified slot means the part was not selected.
type Build struct {
	Name         string        `json:"name,omitempty" yaml:"name,omitempty"`
	CPU          *CPU          `json:"cpu,omitempty" yaml:"cpu,omitempty"`
	Motherboard  *Motherboard  `json:"motherboard,omitempty" yaml:"motherboard,omitempty"`
	PSU          *PSU          `json:"psu,omitempty" yaml:"psu,omitempty"`
	Cooler       *Cooler       `json:"cooler,omitempty" yaml:"cooler,omitempty"`
	Case         *Case         `json:"case,omitempty" yaml:"case,omitempty"`
	GraphicsCard *GraphicsCard `json:"graphics_card,omitempty" yaml:"graphics_card,omitempty"`

	RAM  []Quantified[RAMModule] `json:"ram_modules,omitempty" yaml:"ram_modules,omitempty" validate:"dive"`
	Fans []Quantified[Fan]       `json:"fans,omitempty" yaml:"fans,omitempty" validate:"dive"`
	HDDs []Quantified[HDD]       `json:"hdds,omitempty" yaml:"hdds,omitempty" validate:"dive"`
	SSDs []Quantified[SSD]       `json:"ssds,omitempty" yaml:"ssds,omitempty" validate:"dive"`
}

// Quantified pairs a part with the number of identical units selected.
type Quantified[T any] struct {
	Part  T   `json:"part" yaml:"part"`
	Count int `json:"count" yaml:"count" validate:"min=1"`
}

// Quantity is one side of a counted many-to-many relation, e.g. a PSU
// supplying two "PCIe 8-pin" connectors.
type Quantity struct {
	Kind  string `json:"kind" yaml:"kind" validate:"required"`
	Count int    `json:"count" yaml:"count" validate:"min=1"`
}

// RAMSupport is one memory type a CPU's controller accepts.
type RAMSupport struct {
	RAMType        string `json:"ram_type" yaml:"ram_type" validate:"required"`
	MaxMemoryClock int    `json:"max_memory_clock" yaml:"max_memory_clock" validate:"min=0"`
}

// CPU is a processor.
type CPU struct {
	ID         uuid.UUID    `json:"id" yaml:"id" validate:"required"`
	Name       string       `json:"name" yaml:"name" validate:"required"`
	Socket     string       `json:"socket" yaml:"socket" validate:"required"`
	MaxTDP     int          `json:"max_tdp" yaml:"max_tdp" validate:"min=0"`
	RAMSupport []RAMSupport `json:"ram_support,omitempty" yaml:"ram_support,omitempty" validate:"dive"`
}

// SupportFor returns the CPU's support entry for ramType.
func (c *CPU) SupportFor(ramType string) (RAMSupport, bool) {
	for _, s := range c.RAMSupport {
		if s.RAMType == ramType {
			return s, true
		}
	}
	return RAMSupport{}, false
}

// Motherboard is a mainboard. Connector lists describe what the board offers
// (storage, fan headers) or needs (CPU and main power inputs).
type Motherboard struct {
	ID                  uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	Name                string     `json:"name" yaml:"name" validate:"required"`
	Socket              string     `json:"socket" yaml:"socket" validate:"required"`
	Chipset             string     `json:"chipset,omitempty" yaml:"chipset,omitempty"`
	FormFactor          string     `json:"form_factor" yaml:"form_factor" validate:"required"`
	RAMType             string     `json:"ram_type" yaml:"ram_type" validate:"required"`
	MaxMemoryClock      int        `json:"max_memory_clock" yaml:"max_memory_clock" validate:"min=0"`
	MaxMemoryOverClock  int        `json:"max_memory_over_clock" yaml:"max_memory_over_clock" validate:"min=0"`
	MaxMemorySize       int        `json:"max_memory_size" yaml:"max_memory_size" validate:"min=0"`
	SlotsCount          int        `json:"slots_count" yaml:"slots_count" validate:"min=0"`
	CPUPowerConnectors  []Quantity `json:"cpu_power_connectors,omitempty" yaml:"cpu_power_connectors,omitempty" validate:"dive"`
	MainPowerConnectors []Quantity `json:"main_power_connectors,omitempty" yaml:"main_power_connectors,omitempty" validate:"dive"`
	StorageConnectors   []Quantity `json:"storage_connectors,omitempty" yaml:"storage_connectors,omitempty" validate:"dive"`
	FanPowerConnectors  []Quantity `json:"fan_power_connectors,omitempty" yaml:"fan_power_connectors,omitempty" validate:"dive"`
}

// MemoryClockLimit is the highest clock the board runs memory at, including
// overclock profiles.
func (m *Motherboard) MemoryClockLimit() int {
	if m.MaxMemoryOverClock > 0 {
		return m.MaxMemoryOverClock
	}
	return m.MaxMemoryClock
}

// PSU is a power supply. Power is the rated output in watts; 0 means unknown.
type PSU struct {
	ID                          uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	Name                        string     `json:"name" yaml:"name" validate:"required"`
	FormFactor                  string     `json:"form_factor" yaml:"form_factor" validate:"required"`
	Certificate                 string     `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	Length                      int        `json:"length" yaml:"length" validate:"min=0"`
	Power                       int        `json:"power" yaml:"power" validate:"min=0"`
	CPUPowerConnectors          []Quantity `json:"cpu_power_connectors,omitempty" yaml:"cpu_power_connectors,omitempty" validate:"dive"`
	MainPowerConnectors         []Quantity `json:"main_power_connectors,omitempty" yaml:"main_power_connectors,omitempty" validate:"dive"`
	StoragePowerConnectors      []Quantity `json:"storage_power_connectors,omitempty" yaml:"storage_power_connectors,omitempty" validate:"dive"`
	GraphicsCardPowerConnectors []Quantity `json:"graphics_card_power_connectors,omitempty" yaml:"graphics_card_power_connectors,omitempty" validate:"dive"`
}

// Cooler is a CPU cooler. FanPowerConnector names the header its fan draws
// from, if any.
type Cooler struct {
	ID                uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name              string    `json:"name" yaml:"name" validate:"required"`
	Height            int       `json:"height" yaml:"height" validate:"min=0"`
	PowerDissipation  int       `json:"power_dissipation" yaml:"power_dissipation" validate:"min=0"`
	SupportedSockets  []string  `json:"supported_sockets" yaml:"supported_sockets" validate:"min=1"`
	FanPowerConnector string    `json:"fan_power_connector,omitempty" yaml:"fan_power_connector,omitempty"`
}

// SupportsSocket reports whether the cooler mounts on socket.
func (c *Cooler) SupportsSocket(socket string) bool {
	for _, s := range c.SupportedSockets {
		if s == socket {
			return true
		}
	}
	return false
}

// Case is a chassis. Nil Max* bounds are unconstrained.
type Case struct {
	ID                     uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	Name                   string     `json:"name" yaml:"name" validate:"required"`
	MaxPSULength           *int       `json:"max_psu_length,omitempty" yaml:"max_psu_length,omitempty" validate:"omitempty,min=0"`
	MaxGraphicsCardLength  *int       `json:"max_graphics_card_length,omitempty" yaml:"max_graphics_card_length,omitempty" validate:"omitempty,min=0"`
	MaxCoolerHeight        *int       `json:"max_cooler_height,omitempty" yaml:"max_cooler_height,omitempty" validate:"omitempty,min=0"`
	MotherboardFormFactors []string   `json:"motherboard_form_factors,omitempty" yaml:"motherboard_form_factors,omitempty"`
	PSUFormFactors         []string   `json:"psu_form_factors,omitempty" yaml:"psu_form_factors,omitempty"`
	FanSizes               []Quantity `json:"fan_sizes,omitempty" yaml:"fan_sizes,omitempty" validate:"dive"`
	ExpansionBayFormats    []Quantity `json:"expansion_bay_formats,omitempty" yaml:"expansion_bay_formats,omitempty" validate:"dive"`
	FanPowerConnectors     []Quantity `json:"fan_power_connectors,omitempty" yaml:"fan_power_connectors,omitempty" validate:"dive"`
}

// GraphicsCard is a discrete GPU.
type GraphicsCard struct {
	ID               uuid.UUID  `json:"id" yaml:"id" validate:"required"`
	Name             string     `json:"name" yaml:"name" validate:"required"`
	Length           int        `json:"length" yaml:"length" validate:"min=0"`
	PowerConsumption int        `json:"power_consumption" yaml:"power_consumption" validate:"min=0"`
	PowerConnectors  []Quantity `json:"power_connectors,omitempty" yaml:"power_connectors,omitempty" validate:"dive"`
}

// RAMModule is a single memory stick. Size is in GB, Clock in MHz.
type RAMModule struct {
	ID      uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name    string    `json:"name" yaml:"name" validate:"required"`
	RAMType string    `json:"ram_type" yaml:"ram_type" validate:"required"`
	Clock   int       `json:"clock" yaml:"clock" validate:"min=0"`
	Size    int       `json:"size" yaml:"size" validate:"min=0"`
}

// Fan is a case fan.
type Fan struct {
	ID             uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name           string    `json:"name" yaml:"name" validate:"required"`
	Size           string    `json:"size" yaml:"size" validate:"required"`
	PowerConnector string    `json:"power_connector,omitempty" yaml:"power_connector,omitempty"`
}

// Drive is the part of a storage device the rules look at. Empty connector or
// bay kinds mean the device does not need one (an M.2 SSD takes no bay and no
// separate power lead).
type Drive struct {
	StorageConnector      string `json:"storage_connector" yaml:"storage_connector" validate:"required"`
	StoragePowerConnector string `json:"storage_power_connector,omitempty" yaml:"storage_power_connector,omitempty"`
	ExpansionBayFormat    string `json:"expansion_bay_format,omitempty" yaml:"expansion_bay_format,omitempty"`
}

// HDD is a hard disk drive.
type HDD struct {
	ID    uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name  string    `json:"name" yaml:"name" validate:"required"`
	Drive `yaml:",inline"`
}

// SSD is a solid state drive.
type SSD struct {
	ID    uuid.UUID `json:"id" yaml:"id" validate:"required"`
	Name  string    `json:"name" yaml:"name" validate:"required"`
	Drive `yaml:",inline"`
}

// StoredDrive is a storage device of either kind with its selected quantity.
type StoredDrive struct {
	ID    uuid.UUID
	Name  string
	Drive Drive
	Count int
}

// Drives flattens HDDs followed by SSDs, preserving selection order.
func (b *Build) Drives() []StoredDrive {
	out := make([]StoredDrive, 0, len(b.HDDs)+len(b.SSDs))
	for _, q := range b.HDDs {
		out = append(out, StoredDrive{ID: q.Part.ID, Name: q.Part.Name, Drive: q.Part.Drive, Count: q.Count})
	}
	for _, q := range b.SSDs {
		out = append(out, StoredDrive{ID: q.Part.ID, Name: q.Part.Name, Drive: q.Part.Drive, Count: q.Count})
	}
	return out
}

// Missing returns the names of the mandatory slots that are not populated.
func (b *Build) Missing() []string {
	var missing []string
	if b.CPU == nil {
		missing = append(missing, "cpu")
	}
	if b.Motherboard == nil {
		missing = append(missing, "motherboard")
	}
	return missing
}
