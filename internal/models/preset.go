package models

import "github.com/ChapterSevenSeeds/triangles/internal/geometry"

// PresetCatalog is the YAML document listing example triangles.
type PresetCatalog struct {
	Presets []Preset `json:"presets" yaml:"presets"`
}

// Preset is a named example triangle shown in the form's picker.
type Preset struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	SideA       float64 `json:"sideA" yaml:"side_a"`
	SideB       float64 `json:"sideB" yaml:"side_b"`
	SideC       float64 `json:"sideC" yaml:"side_c"`
}

// Sides returns the preset's side lengths.
func (p Preset) Sides() geometry.Sides {
	return geometry.Sides{A: p.SideA, B: p.SideB, C: p.SideC}
}
