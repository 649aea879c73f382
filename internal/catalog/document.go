package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
)

// Document is a build file: a named selection plus any parts not in the
// shared catalog.
type Document struct {
	Name      string    `json:"name" yaml:"name"`
	Profile   string    `json:"profile,omitempty" yaml:"profile,omitempty"`
	Selection Selection `json:"selection" yaml:"selection"`
	Parts     Parts     `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// LoadDocument reads and decodes a build file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading build file: %w", err)
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("build file %q is empty", path)
		}
		return nil, fmt.Errorf("parsing build file %q: %w", path, err)
	}
	return &doc, nil
}

// Resolve merges the document's inline parts over base and resolves its
// selection. base is not modified and may be nil.
func (d *Document) Resolve(base *Catalog) (*build.Build, error) {
	c := New()
	if base != nil {
		c = base.clone()
	}
	if err := c.Add(d.Parts); err != nil {
		return nil, fmt.Errorf("inline parts: %w", err)
	}

	b, err := c.Resolve(d.Selection)
	if err != nil {
		return nil, err
	}
	b.Name = d.Name
	return b, nil
}
