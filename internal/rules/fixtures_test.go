package rules

import (
	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/build/buildtest"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
)

func intPtr(n int) *int { return buildtest.IntPtr(n) }

func defaultProfile() *profile.Profile {
	p, err := profile.Get("default")
	if err != nil {
		panic(err)
	}
	return p
}

func strictProfile() *profile.Profile {
	p, err := profile.Get("strict")
	if err != nil {
		panic(err)
	}
	return p
}

func compatibleBuild() *build.Build { return buildtest.Compatible() }
func minimalBuild() *build.Build { return buildtest.Minimal() }
func sataHDD() build.HDD { return buildtest.SATAHDD() }
func sataSSD() build.SSD { return buildtest.SATASSD() }
func nvmeSSD() build.SSD { return buildtest.NVMeSSD() }
