// Package buildtest provides reference builds for tests.
package buildtest

import (
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
)

// IntPtr returns a pointer to n, for optional case bounds.
func IntPtr(n int) *int { return &n }

// Compatible returns an AM5 build where every rule passes. Each call returns
// fresh parts with new IDs.
func Compatible() *build.Build {
	return &build.Build{
		Name: "am5-reference",
		CPU: &build.CPU{
			ID: uuid.New(), Name: "Ryzen 7 7700X", Socket: "AM5", MaxTDP: 105,
			RAMSupport: []build.RAMSupport{{RAMType: "DDR5", MaxMemoryClock: 5200}},
		},
		Motherboard: &build.Motherboard{
			ID: uuid.New(), Name: "B650 Tomahawk", Socket: "AM5", Chipset: "B650",
			FormFactor: "ATX", RAMType: "DDR5",
			MaxMemoryClock: 4800, MaxMemoryOverClock: 6400, MaxMemorySize: 192, SlotsCount: 4,
			CPUPowerConnectors:  []build.Quantity{{Kind: "EPS 8-pin", Count: 2}},
			MainPowerConnectors: []build.Quantity{{Kind: "ATX 24-pin", Count: 1}},
			StorageConnectors:   []build.Quantity{{Kind: "SATA", Count: 4}, {Kind: "M.2", Count: 2}},
			FanPowerConnectors:  []build.Quantity{{Kind: "4-pin PWM", Count: 3}},
		},
		PSU: &build.PSU{
			ID: uuid.New(), Name: "RM850x", FormFactor: "ATX", Certificate: "80+ Gold", Length: 160, Power: 850,
			CPUPowerConnectors:          []build.Quantity{{Kind: "EPS 8-pin", Count: 2}},
			MainPowerConnectors:         []build.Quantity{{Kind: "ATX 24-pin", Count: 1}},
			StoragePowerConnectors:      []build.Quantity{{Kind: "SATA power", Count: 6}},
			GraphicsCardPowerConnectors: []build.Quantity{{Kind: "PCIe 8-pin", Count: 3}},
		},
		Cooler: &build.Cooler{
			ID: uuid.New(), Name: "NH-D15", Height: 165, PowerDissipation: 220,
			SupportedSockets: []string{"AM5", "AM4", "LGA1700"}, FanPowerConnector: "4-pin PWM",
		},
		Case: &build.Case{
			ID: uuid.New(), Name: "Meshify 2",
			MaxPSULength: IntPtr(250), MaxGraphicsCardLength: IntPtr(360), MaxCoolerHeight: IntPtr(185),
			MotherboardFormFactors: []string{"ATX", "mATX"},
			PSUFormFactors:         []string{"ATX"},
			FanSizes:               []build.Quantity{{Kind: "120mm", Count: 6}, {Kind: "140mm", Count: 3}},
			ExpansionBayFormats:    []build.Quantity{{Kind: "3.5\"", Count: 4}, {Kind: "2.5\"", Count: 2}},
		},
		GraphicsCard: &build.GraphicsCard{
			ID: uuid.New(), Name: "RX 7800 XT", Length: 290, PowerConsumption: 263,
			PowerConnectors: []build.Quantity{{Kind: "PCIe 8-pin", Count: 2}},
		},
		RAM: []build.Quantified[build.RAMModule]{
			{Part: build.RAMModule{ID: uuid.New(), Name: "Vengeance 16GB", RAMType: "DDR5", Clock: 5200, Size: 16}, Count: 2},
		},
		Fans: []build.Quantified[build.Fan]{
			{Part: build.Fan{ID: uuid.New(), Name: "P12", Size: "120mm", PowerConnector: "4-pin PWM"}, Count: 2},
		},
		HDDs: []build.Quantified[build.HDD]{
			{Part: SATAHDD(), Count: 1},
		},
		SSDs: []build.Quantified[build.SSD]{
			{Part: NVMeSSD(), Count: 1},
		},
	}
}

// SATAHDD is a 3.5" SATA hard disk.
func SATAHDD() build.HDD {
	return build.HDD{ID: uuid.New(), Name: "IronWolf 4TB", Drive: build.Drive{
		StorageConnector: "SATA", StoragePowerConnector: "SATA power", ExpansionBayFormat: "3.5\"",
	}}
}

// SATASSD is a 2.5" SATA SSD.
func SATASSD() build.SSD {
	return build.SSD{ID: uuid.New(), Name: "870 EVO", Drive: build.Drive{
		StorageConnector: "SATA", StoragePowerConnector: "SATA power", ExpansionBayFormat: "2.5\"",
	}}
}

// NVMeSSD is an M.2 drive that takes no bay and no power lead.
func NVMeSSD() build.SSD {
	return build.SSD{ID: uuid.New(), Name: "990 Pro", Drive: build.Drive{StorageConnector: "M.2"}}
}

// Minimal has only the mandatory CPU and motherboard.
func Minimal() *build.Build {
	full := Compatible()
	return &build.Build{CPU: full.CPU, Motherboard: full.Motherboard}
}
