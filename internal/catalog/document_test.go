package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildDoc = `
name: am5-air
profile: strict
selection:
  cpu: ` + cpuID + `
  motherboard: ` + boardID + `
  case: ` + caseID + `
  ram_modules:
    - id: ` + ramID + `
      count: 2
parts:
  cases:
    - id: ` + caseID + `
      name: Meshify 2
      max_cooler_height: 185
      motherboard_form_factors: [ATX, mATX]
`

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(writeFile(t, "build.yaml", buildDoc))
	require.NoError(t, err)

	assert.Equal(t, "am5-air", doc.Name)
	assert.Equal(t, "strict", doc.Profile)
	require.NotNil(t, doc.Selection.Case)
	require.Len(t, doc.Parts.Cases, 1)
	require.NotNil(t, doc.Parts.Cases[0].MaxCoolerHeight)
	assert.Equal(t, 185, *doc.Parts.Cases[0].MaxCoolerHeight)
	assert.Nil(t, doc.Parts.Cases[0].MaxPSULength)
}

func TestLoadDocument_Errors(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadDocument(writeFile(t, "empty.yaml", ""))
	assert.ErrorContains(t, err, "is empty")

	_, err = LoadDocument(writeFile(t, "bad.yaml", "selection: [1, 2\n"))
	assert.ErrorContains(t, err, "parsing build file")
}

func TestDocument_Resolve(t *testing.T) {
	base, err := Load(writeFile(t, "core.yaml", coreParts))
	require.NoError(t, err)
	doc, err := LoadDocument(writeFile(t, "build.yaml", buildDoc))
	require.NoError(t, err)

	b, err := doc.Resolve(base)
	require.NoError(t, err)

	assert.Equal(t, "am5-air", b.Name)
	require.NotNil(t, b.Case)
	assert.Equal(t, "Meshify 2", b.Case.Name)
	assert.Equal(t, 3, base.Len(), "inline parts must not leak into the shared catalog")
}

func TestDocument_ResolveWithoutCatalog(t *testing.T) {
	doc, err := LoadDocument(writeFile(t, "build.yaml", buildDoc))
	require.NoError(t, err)

	_, err = doc.Resolve(nil)
	assert.ErrorIs(t, err, ErrPartNotFound)
}

func TestDocument_InlinePartCollidesWithCatalog(t *testing.T) {
	base, err := Load(writeFile(t, "core.yaml", coreParts))
	require.NoError(t, err)
	parts, err := decodeParts([]byte(coreParts))
	require.NoError(t, err)
	doc := &Document{Parts: parts}

	_, err = doc.Resolve(base)
	assert.ErrorIs(t, err, ErrDuplicateID)
}
