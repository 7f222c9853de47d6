// Package render draws a generated town into a PNG map.
package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/colornames"

	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/town"
)

// ColourScheme maps town features to colors.
type ColourScheme struct {
	Background  color.RGBA
	Countryside color.RGBA
	Roads       color.RGBA
	Walls       color.RGBA
	Towers      color.RGBA
	Gates       color.RGBA
	Buildings   color.RGBA
	Wards       map[string]color.RGBA
}

// DefaultScheme is a parchment-style palette.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background:  colornames.Wheat,
		Countryside: colornames.Palegoldenrod,
		Roads:       colornames.Dimgray,
		Walls:       colornames.Black,
		Towers:      colornames.Black,
		Gates:       colornames.Crimson,
		Buildings:   colornames.Saddlebrown,
		Wards: map[string]color.RGBA{
			"Craftsmen":      colornames.Navajowhite,
			"Merchant":       colornames.Hotpink,
			"Slum":           colornames.Darkkhaki,
			"Market":         colornames.Yellow,
			"Cathedral":      colornames.Gold,
			"Administration": colornames.Indigo,
			"Military":       colornames.Maroon,
			"Patriciate":     colornames.Royalblue,
			"Park":           colornames.Lightgreen,
			"Farm":           colornames.Palegreen,
			"Gate":           colornames.Burlywood,
			"Castle":         colornames.Crimson,
		},
	}
}

// Renderer draws models at a fixed scale.
type Renderer struct {
	scheme *ColourScheme
	scale  float64
}

// New creates a renderer; scale is pixels per map unit.
func New(scheme *ColourScheme, scale float64) *Renderer {
	if scheme == nil {
		scheme = DefaultScheme()
	}
	if scale <= 0 {
		scale = 4
	}
	return &Renderer{scheme: scheme, scale: scale}
}

// SavePNG renders the model and writes it to fpath.
func (r *Renderer) SavePNG(m *town.Model, fpath string) error {
	ctx, err := r.draw(m)
	if err != nil {
		return err
	}
	if err := ctx.SavePNG(fpath); err != nil {
		return fmt.Errorf("writing town map: %w", err)
	}
	return nil
}

func (r *Renderer) draw(m *town.Model) (*gg.Context, error) {
	if m == nil || m.Border == nil {
		return nil, fmt.Errorf("cannot render an empty model")
	}

	// The viewport covers the city with a countryside margin.
	radius := m.CityRadius * 1.3
	if radius <= 0 {
		radius = m.Border.Radius() * 1.3
	}
	size := int(2 * radius * r.scale)
	if size < 64 {
		size = 64
	}

	ctx := gg.NewContext(size, size)
	ctx.SetColor(r.scheme.Background)
	ctx.Clear()

	tx := func(p *geom.Point) (float64, float64) {
		return (p.X + radius) * r.scale, (p.Y + radius) * r.scale
	}

	fill := func(poly *geom.Polygon, c color.RGBA) {
		if poly.Len() < 3 {
			return
		}
		ctx.NewSubPath()
		for _, v := range poly.Vertices {
			ctx.LineTo(tx(v))
		}
		ctx.ClosePath()
		ctx.SetColor(c)
		ctx.Fill()
	}

	stroke := func(poly *geom.Polygon, c color.RGBA, width float64, closed bool) {
		if poly.Len() < 2 {
			return
		}
		ctx.NewSubPath()
		for _, v := range poly.Vertices {
			ctx.LineTo(tx(v))
		}
		if closed {
			ctx.ClosePath()
		}
		ctx.SetColor(c)
		ctx.SetLineWidth(width)
		ctx.Stroke()
	}

	// Patch fills.
	for _, p := range m.Patches {
		c := r.scheme.Countryside
		if p.Ward != nil {
			if wc, ok := r.scheme.Wards[p.Ward.Label()]; ok {
				c = wc
			}
		}
		fill(p.Shape, c)
	}

	// Arteries over the patches, buildings on top.
	for _, a := range m.Arteries {
		stroke(a, r.scheme.Roads, town.RegularStreet*r.scale, false)
	}
	for _, p := range m.Patches {
		if p.Ward == nil {
			continue
		}
		for _, b := range p.Ward.Geometry() {
			fill(b, r.scheme.Buildings)
		}
	}

	if m.Wall != nil {
		r.drawWall(ctx, m.Wall, tx)
	}
	if m.Citadel != nil {
		if castle, ok := m.Citadel.Ward.(*town.CastleWard); ok {
			r.drawWall(ctx, castle.Wall(), tx)
		}
	}
	return ctx, nil
}

func (r *Renderer) drawWall(ctx *gg.Context, w *town.CurtainWall, tx func(*geom.Point) (float64, float64)) {
	n := len(w.Shape.Vertices)
	ctx.SetColor(r.scheme.Walls)
	ctx.SetLineWidth(1.5 * r.scale)
	for i := 0; i < n; i++ {
		if !w.Segments[i] {
			continue
		}
		x0, y0 := tx(w.Shape.Vertices[i])
		x1, y1 := tx(w.Shape.Vertices[(i+1)%n])
		ctx.DrawLine(x0, y0, x1, y1)
	}
	ctx.Stroke()

	for _, t := range w.Towers {
		x, y := tx(t)
		ctx.SetColor(r.scheme.Towers)
		ctx.DrawCircle(x, y, 1.2*r.scale)
		ctx.Fill()
	}
	for _, g := range w.Gates {
		x, y := tx(g)
		ctx.SetColor(r.scheme.Gates)
		ctx.DrawCircle(x, y, 1.0*r.scale)
		ctx.Fill()
	}
}
