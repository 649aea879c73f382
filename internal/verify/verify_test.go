package verify

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/build/buildtest"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/schema"
)

func category(t *testing.T, r *schema.Report, name schema.Category) schema.CategoryResult {
	t.Helper()
	for _, c := range r.Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %s not in report", name)
	return schema.CategoryResult{}
}

func TestVerify_NilBuild(t *testing.T) {
	_, err := Verify(nil)
	assert.ErrorIs(t, err, ErrNilBuild)
}

func TestVerify_CompatibleBuild(t *testing.T) {
	r, err := Verify(buildtest.Compatible())
	require.NoError(t, err)

	assert.True(t, r.Compatible)
	assert.Nil(t, r.Error)
	assert.Equal(t, schema.Tool, r.Tool)
	assert.Equal(t, "default", r.Profile)
	assert.Equal(t, "am5-reference", r.Build)
	require.Len(t, r.Categories, len(schema.Categories()))
	for i, c := range r.Categories {
		assert.Equal(t, schema.Categories()[i], c.Name)
		assert.Equal(t, schema.StatusPass, c.Status, "category %s", c.Name)
		assert.NotNil(t, c.Violations)
	}
	assert.Equal(t, schema.Summary{CategoriesChecked: 13}, r.Summary)
}

func TestVerify_StorageOverflow(t *testing.T) {
	b := buildtest.Compatible()
	b.Motherboard.StorageConnectors = []build.Quantity{{Kind: "SATA", Count: 4}}
	b.HDDs = []build.Quantified[build.HDD]{{Part: buildtest.SATAHDD(), Count: 2}}
	b.SSDs = []build.Quantified[build.SSD]{{Part: buildtest.SATASSD(), Count: 3}}

	r, err := Verify(b)
	require.NoError(t, err)

	assert.False(t, r.Compatible)
	c := category(t, r, schema.CategoryStorageConnector)
	assert.Equal(t, schema.StatusFail, c.Status)
	require.Len(t, c.Violations, 1)
	assert.Equal(t, 5, c.Violations[0].Details["required"])
	assert.Equal(t, 4, c.Violations[0].Details["supplied"])
	assert.Equal(t, 1, r.Summary.ErrorCount)
}

func TestVerify_MissingMotherboard(t *testing.T) {
	b := buildtest.Compatible()
	b.Motherboard = nil

	r, err := Verify(b)
	require.NoError(t, err)

	assert.False(t, r.Compatible)
	require.NotNil(t, r.Error)
	assert.Equal(t, schema.CodeBuildIncomplete, r.Error.Code)
	assert.Equal(t, []string{"motherboard"}, r.Error.Missing)
	assert.Empty(t, r.Categories)
	assert.Equal(t, schema.Summary{}, r.Summary)
}

func TestVerify_MissingBoth(t *testing.T) {
	r, err := Verify(&build.Build{})
	require.NoError(t, err)

	require.NotNil(t, r.Error)
	assert.Equal(t, []string{"cpu", "motherboard"}, r.Error.Missing)
	assert.Equal(t, "build is missing cpu and motherboard", r.Error.Message)
}

func TestVerify_SkipsCategoriesWithoutTheirParts(t *testing.T) {
	r, err := Verify(buildtest.Minimal())
	require.NoError(t, err)

	assert.True(t, r.Compatible)
	skipped := map[schema.Category]bool{}
	for _, c := range r.Categories {
		if c.Status == schema.StatusSkip {
			skipped[c.Name] = true
			assert.Empty(t, c.Violations)
		}
	}
	assert.True(t, skipped[schema.CategoryPhysicalClearance])
	assert.True(t, skipped[schema.CategoryPowerBudget])
	assert.True(t, skipped[schema.CategoryGraphicsCardPowerConnector])
	assert.False(t, skipped[schema.CategorySocket])
	assert.Equal(t, len(skipped), r.Summary.CategoriesSkipped)
	assert.Equal(t, 13-len(skipped), r.Summary.CategoriesChecked)
}

func TestVerify_WarningsKeepBuildCompatible(t *testing.T) {
	b := buildtest.Compatible()
	b.RAM[0].Part.Clock = 6000
	b.PSU.Power = 400

	r, err := Verify(b)
	require.NoError(t, err)

	assert.True(t, r.Compatible)
	assert.Equal(t, schema.StatusWarn, category(t, r, schema.CategoryRAM).Status)
	assert.Equal(t, schema.StatusWarn, category(t, r, schema.CategoryPowerBudget).Status)
	assert.Equal(t, 2, r.Summary.WarningCount)
	assert.Zero(t, r.Summary.ErrorCount)
}

func TestVerify_StrictProfileBlocks(t *testing.T) {
	strict, err := profile.Get("strict")
	require.NoError(t, err)

	b := buildtest.Compatible()
	b.PSU.Power = 400

	r, err := New(WithProfile(strict), WithVersion("1.2.3")).Verify(b)
	require.NoError(t, err)

	assert.False(t, r.Compatible)
	assert.Equal(t, "strict", r.Profile)
	assert.Equal(t, "1.2.3", r.Version)
	assert.Equal(t, schema.StatusFail, category(t, r, schema.CategoryPowerBudget).Status)
}

func TestNew_NilProfileKeepsDefault(t *testing.T) {
	v := New(WithProfile(nil))
	assert.Equal(t, "default", v.Profile().Name)
}

func TestVerify_ConcurrentUse(t *testing.T) {
	v := New()
	b := buildtest.Compatible()
	b.SSDs[0].Count = 3

	want, err := v.Verify(b)
	require.NoError(t, err)
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := v.Verify(b)
			if err != nil {
				return
			}
			results[i], _ = json.Marshal(r)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.JSONEq(t, string(wantJSON), string(got), "goroutine %d", i)
	}
}

func TestProperty_Deterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("identical builds produce identical reports", prop.ForAll(
		func(hdds, ssds, fans, psuWatts, gpuLength int) bool {
			b := buildtest.Compatible()
			b.HDDs[0].Count = hdds
			b.SSDs = append(b.SSDs, build.Quantified[build.SSD]{Part: buildtest.SATASSD(), Count: ssds})
			b.Fans[0].Count = fans
			b.PSU.Power = psuWatts
			b.GraphicsCard.Length = gpuLength

			first, err := Verify(b)
			if err != nil {
				return false
			}
			second, err := Verify(b)
			if err != nil {
				return false
			}
			a, _ := json.Marshal(first)
			z, _ := json.Marshal(second)
			return string(a) == string(z)
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.IntRange(1, 8),
		gen.IntRange(0, 1200),
		gen.IntRange(200, 400),
	))

	properties.Property("compatible iff no category fails", prop.ForAll(
		func(sata, drives int) bool {
			b := buildtest.Compatible()
			b.Motherboard.StorageConnectors = []build.Quantity{{Kind: "SATA", Count: sata}}
			b.HDDs[0].Count = drives
			b.SSDs = nil

			r, err := Verify(b)
			if err != nil {
				return false
			}
			failed := false
			for _, c := range r.Categories {
				failed = failed || c.Status == schema.StatusFail
			}
			return r.Compatible == !failed && r.Compatible == (r.Summary.ErrorCount == 0)
		},
		gen.IntRange(0, 6),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t)
}
