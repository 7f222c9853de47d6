// Package export converts a generated town into a serializable document and
// writes it as JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/town"
)

// Point is a serializable coordinate pair.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Patch describes one region of the town.
type Patch struct {
	Shape        []Point   `json:"shape" yaml:"shape"`
	WithinCity   bool      `json:"within_city" yaml:"within_city"`
	WithinWalls  bool      `json:"within_walls" yaml:"within_walls"`
	WardType     string    `json:"ward_type,omitempty" yaml:"ward_type,omitempty"`
	WardGeometry [][]Point `json:"ward_geometry,omitempty" yaml:"ward_geometry,omitempty"`
}

// Wall describes a curtain wall with its gates and towers.
type Wall struct {
	Shape  []Point `json:"shape" yaml:"shape"`
	Gates  []Point `json:"gates" yaml:"gates"`
	Towers []Point `json:"towers" yaml:"towers"`
}

// Citadel describes the citadel patch and its own wall.
type Citadel struct {
	Shape []Point `json:"shape" yaml:"shape"`
	Wall  *Wall   `json:"wall,omitempty" yaml:"wall,omitempty"`
}

// Document is the complete serializable town.
type Document struct {
	NPatches      int   `json:"n_patches" yaml:"n_patches"`
	Seed          int64 `json:"seed" yaml:"seed"`
	PlazaNeeded   bool  `json:"plaza_needed" yaml:"plaza_needed"`
	CitadelNeeded bool  `json:"citadel_needed" yaml:"citadel_needed"`
	WallsNeeded   bool  `json:"walls_needed" yaml:"walls_needed"`

	Center     Point   `json:"center" yaml:"center"`
	CityRadius float64 `json:"city_radius" yaml:"city_radius"`

	Gates    []Point   `json:"gates" yaml:"gates"`
	Patches  []Patch   `json:"patches" yaml:"patches"`
	Streets  [][]Point `json:"streets" yaml:"streets"`
	Roads    [][]Point `json:"roads" yaml:"roads"`
	Arteries [][]Point `json:"arteries" yaml:"arteries"`

	Wall    *Wall    `json:"wall,omitempty" yaml:"wall,omitempty"`
	Citadel *Citadel `json:"citadel,omitempty" yaml:"citadel,omitempty"`
	Plaza   []Point  `json:"plaza,omitempty" yaml:"plaza,omitempty"`
}

// FromModel converts a generated town into a document.
func FromModel(m *town.Model) *Document {
	doc := &Document{
		NPatches:      m.NPatches,
		Seed:          m.Seed(),
		PlazaNeeded:   m.PlazaNeeded,
		CitadelNeeded: m.CitadelNeeded,
		WallsNeeded:   m.WallsNeeded,
		Center:        point(m.Center),
		CityRadius:    m.CityRadius,
		Gates:         points(m.Gates),
		Streets:       polylines(m.Streets),
		Roads:         polylines(m.Roads),
		Arteries:      polylines(m.Arteries),
	}

	for _, p := range m.Patches {
		patch := Patch{
			Shape:       ringPoints(p.Shape),
			WithinCity:  p.WithinCity,
			WithinWalls: p.WithinWalls,
		}
		if p.Ward != nil {
			patch.WardType = p.Ward.Label()
			patch.WardGeometry = polylines(p.Ward.Geometry())
		}
		doc.Patches = append(doc.Patches, patch)
	}

	if m.Wall != nil {
		doc.Wall = wall(m.Wall)
	}
	if m.Citadel != nil {
		citadel := &Citadel{Shape: ringPoints(m.Citadel.Shape)}
		if castle, ok := m.Citadel.Ward.(*town.CastleWard); ok {
			citadel.Wall = wall(castle.Wall())
		}
		doc.Citadel = citadel
	}
	if m.Plaza != nil {
		doc.Plaza = ringPoints(m.Plaza.Shape)
	}
	return doc
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding town JSON: %w", err)
	}
	return nil
}

// WriteYAML writes the document as YAML.
func WriteYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding town YAML: %w", err)
	}
	return nil
}

// Write writes the document in the given format ("json" or "yaml").
func Write(w io.Writer, doc *Document, format string) error {
	switch format {
	case "", "json":
		return WriteJSON(w, doc)
	case "yaml":
		return WriteYAML(w, doc)
	default:
		return fmt.Errorf("unknown document format %q", format)
	}
}

func point(p *geom.Point) Point {
	if p == nil {
		return Point{}
	}
	return Point{X: p.X, Y: p.Y}
}

func points(pts []*geom.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = point(p)
	}
	return out
}

func ringPoints(p *geom.Polygon) []Point {
	if p == nil {
		return nil
	}
	return points(p.Vertices)
}

func polylines(polys []*geom.Polygon) [][]Point {
	out := make([][]Point, len(polys))
	for i, p := range polys {
		out[i] = ringPoints(p)
	}
	return out
}

func wall(w *town.CurtainWall) *Wall {
	return &Wall{
		Shape:  ringPoints(w.Shape),
		Gates:  points(w.Gates),
		Towers: points(w.Towers),
	}
}
