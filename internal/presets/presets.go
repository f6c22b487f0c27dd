// Package presets loads the catalog of example triangles from YAML.
package presets

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ChapterSevenSeeds/triangles/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultCatalog []byte

var (
	ErrEmptyCatalog    = errors.New("presets: catalog has no presets")
	ErrDuplicatePreset = errors.New("presets: duplicate preset name")
	ErrInvalidPreset   = errors.New("presets: invalid preset")
	ErrPresetNotFound  = errors.New("presets: preset not found")
)

// Catalog is a validated, read-only list of presets.
type Catalog struct {
	presets []models.Preset
	byName  map[string]int
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("presets: embedded catalog is broken: %v", err))
	}
	return c
}

// LoadFile parses a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presets: %w", err)
	}
	defer file.Close()

	return Load(file)
}

// Load parses and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc models.PresetCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}

	return newCatalog(doc.Presets)
}

func newCatalog(presets []models.Preset) (*Catalog, error) {
	if len(presets) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		presets: presets,
		byName:  make(map[string]int, len(presets)),
	}
	for i, p := range presets {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidPreset, i)
		}
		if _, dup := c.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePreset, p.Name)
		}
		for _, v := range []float64{p.SideA, p.SideB, p.SideC} {
			if !(v > 0) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s has side %g", ErrInvalidPreset, p.Name, v)
			}
		}
		c.byName[p.Name] = i
	}
	return c, nil
}

// All returns the presets in file order.
func (c *Catalog) All() []models.Preset {
	out := make([]models.Preset, len(c.presets))
	copy(out, c.presets)
	return out
}

// Find looks a preset up by name.
func (c *Catalog) Find(name string) (models.Preset, error) {
	i, ok := c.byName[name]
	if !ok {
		return models.Preset{}, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return c.presets[i], nil
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}
