package town

import (
	"math"

	"github.com/townforge/townforge/pkg/geom"
)

// CommonWard is the shared implementation for ward kinds whose geometry is
// an alley subdivision of the city block.
type CommonWard struct {
	baseWard
	minSq     float64
	gridChaos float64
	sizeChaos float64
	emptyProb float64
}

func (w *CommonWard) CreateGeometry() {
	block := w.cityBlock()
	w.geometry = createAlleys(w.model.rng, block, w.minSq, w.gridChaos, w.sizeChaos, w.emptyProb, true, 0)

	if !w.model.isEnclosed(w.patch) {
		w.filterOutskirts()
	}
}

// CraftsmenWard is the workhorse ward filling most of the city.
type CraftsmenWard struct{ CommonWard }

func (w *CraftsmenWard) Label() string { return "Craftsmen" }

func newCraftsmenWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &CraftsmenWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     10 + 80*r.Float()*r.Float(),
		gridChaos: 0.5 + r.Float()*0.2,
		sizeChaos: 0.6,
		emptyProb: 0.04,
	}}
}

// SlumWard prefers the city fringe, far from the plaza.
type SlumWard struct{ CommonWard }

func (w *SlumWard) Label() string { return "Slum" }

func newSlumWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &SlumWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     10 + 30*r.Float()*r.Float(),
		gridChaos: 0.6 + r.Float()*0.4,
		sizeChaos: 0.8,
		emptyProb: 0.03,
	}}
}

func rateSlum(m *Model, p *Patch) float64 {
	center := m.Center
	if m.Plaza != nil {
		center = m.Plaza.Shape.Center()
	}
	return -p.Shape.Distance(center)
}

// MerchantWard sits as close to the center as possible.
type MerchantWard struct{ CommonWard }

func (w *MerchantWard) Label() string { return "Merchant" }

func newMerchantWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &MerchantWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     50 + 60*r.Float()*r.Float(),
		gridChaos: 0.5 + r.Float()*0.3,
		sizeChaos: 0.7,
		emptyProb: 0.15,
	}}
}

func rateMerchant(m *Model, p *Patch) float64 {
	center := m.Center
	if m.Plaza != nil {
		center = m.Plaza.Shape.Center()
	}
	return p.Shape.Distance(center)
}

// GateWard grows just inside or outside a gate.
type GateWard struct{ CommonWard }

func (w *GateWard) Label() string { return "Gate" }

func newGateWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &GateWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     10 + 50*r.Float()*r.Float(),
		gridChaos: 0.5 + r.Float()*0.3,
		sizeChaos: 0.7,
		emptyProb: 0.04,
	}}
}

// AdministrationWard overlooks the plaza when it can.
type AdministrationWard struct{ CommonWard }

func (w *AdministrationWard) Label() string { return "Administration" }

func newAdministrationWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &AdministrationWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     80 + 30*r.Float()*r.Float(),
		gridChaos: 0.1 + r.Float()*0.3,
		sizeChaos: 0.3,
		emptyProb: 0.04,
	}}
}

func rateAdministration(m *Model, p *Patch) float64 {
	if m.Plaza != nil {
		if p.Shape.Borders(m.Plaza.Shape) {
			return 0
		}
		return p.Shape.Distance(m.Plaza.Shape.Center())
	}
	return p.Shape.Distance(m.Center)
}

// PatriciateWard prefers bordering parks and avoids slums.
type PatriciateWard struct{ CommonWard }

func (w *PatriciateWard) Label() string { return "Patriciate" }

func newPatriciateWard(m *Model, p *Patch) Ward {
	r := m.rng
	return &PatriciateWard{CommonWard{
		baseWard:  baseWard{model: m, patch: p},
		minSq:     80 + 30*r.Float()*r.Float(),
		gridChaos: 0.5 + r.Float()*0.3,
		sizeChaos: 0.8,
		emptyProb: 0.2,
	}}
}

func ratePatriciate(m *Model, p *Patch) float64 {
	rate := 0.0
	for _, other := range m.Patches {
		if other.Ward == nil || !other.Shape.Borders(p.Shape) {
			continue
		}
		switch other.Ward.(type) {
		case *ParkWard:
			rate--
		case *SlumWard:
			rate++
		}
	}
	return rate
}

// MarketWard produces a single central object: a statue plinth or a
// fountain.
type MarketWard struct{ baseWard }

func (w *MarketWard) Label() string { return "Market" }

func newMarketWard(m *Model, p *Patch) Ward {
	return &MarketWard{baseWard{model: m, patch: p}}
}

func (w *MarketWard) CreateGeometry() {
	r := w.model.rng
	statue := r.Bool(0.6)
	offset := statue || r.Bool(0.3)

	var v0, v1 *geom.Point
	if statue || offset {
		length := -1.0
		w.patch.Shape.ForEdge(func(p0, p1 *geom.Point) {
			l := p0.Distance(p1)
			if l > length {
				length = l
				v0, v1 = p0, p1
			}
		})
	}

	var obj *geom.Polygon
	if statue {
		obj = geom.Rect(1+r.Float(), 1+r.Float())
		if v0 != nil && v1 != nil {
			obj.Rotate(math.Atan2(v1.Y-v0.Y, v1.X-v0.X))
		}
	} else {
		obj = geom.Circle(1 + r.Float())
	}

	if offset && v0 != nil && v1 != nil {
		gravity := geom.Interpolate(v0, v1, 0.5)
		obj.Offset(geom.Interpolate(w.patch.Shape.Centroid(), gravity, 0.2+r.Float()*0.4))
	} else {
		obj.Offset(w.patch.Shape.Centroid())
	}

	w.geometry = []*geom.Polygon{obj}
}

func rateMarket(m *Model, p *Patch) float64 {
	// One market should not touch another.
	for _, other := range m.Inner {
		if _, ok := other.Ward.(*MarketWard); ok && other.Shape.Borders(p.Shape) {
			return math.Inf(1)
		}
	}
	// A market should not be much larger than the plaza.
	if m.Plaza != nil {
		return p.Shape.Square() / m.Plaza.Shape.Square()
	}
	return p.Shape.Distance(m.Center)
}

// CathedralWard is either an onion-skin ring complex or an orthogonal one.
type CathedralWard struct{ baseWard }

func (w *CathedralWard) Label() string { return "Cathedral" }

func newCathedralWard(m *Model, p *Patch) Ward {
	return &CathedralWard{baseWard{model: m, patch: p}}
}

func (w *CathedralWard) CreateGeometry() {
	r := w.model.rng
	block := w.cityBlock()
	if r.Bool(0.4) {
		w.geometry = ring(block, 2+r.Float()*4)
	} else {
		w.geometry = createOrthoBuilding(r, block, 50, 0.8)
	}
}

func rateCathedral(m *Model, p *Patch) float64 {
	if m.Plaza != nil && p.Shape.Borders(m.Plaza.Shape) {
		return -1 / p.Shape.Square()
	}
	center := m.Center
	if m.Plaza != nil {
		center = m.Plaza.Shape.Center()
	}
	return p.Shape.Distance(center) * p.Shape.Square()
}

// MilitaryWard is laid out as regular squares; its block size scales with
// the patch instead of a fixed base.
type MilitaryWard struct{ baseWard }

func (w *MilitaryWard) Label() string { return "Military" }

func newMilitaryWard(m *Model, p *Patch) Ward {
	return &MilitaryWard{baseWard{model: m, patch: p}}
}

func (w *MilitaryWard) CreateGeometry() {
	r := w.model.rng
	block := w.cityBlock()
	w.geometry = createAlleys(r, block,
		math.Sqrt(block.Square())*(1+r.Float()),
		0.1+r.Float()*0.3,
		0.3,
		0.25,
		true, 0)
}

func rateMilitary(m *Model, p *Patch) float64 {
	if m.Citadel != nil && m.Citadel.Shape.Borders(p.Shape) {
		return 0
	}
	if m.Wall != nil && m.Wall.Borders(p) {
		return 1
	}
	if m.Citadel == nil && m.Wall == nil {
		return 0
	}
	return math.Inf(1)
}

// ParkWard fills its block with radial groves.
type ParkWard struct{ baseWard }

func (w *ParkWard) Label() string { return "Park" }

func newParkWard(m *Model, p *Patch) Ward {
	return &ParkWard{baseWard{model: m, patch: p}}
}

func (w *ParkWard) CreateGeometry() {
	block := w.cityBlock()
	if block.Compactness() >= 0.7 {
		w.geometry = radial(block, nil, Alley)
	} else {
		w.geometry = semiRadial(block, nil, Alley)
	}
}

// CastleWard fortifies the citadel patch with its own curtain wall.
type CastleWard struct {
	baseWard
	wall *CurtainWall
}

func (w *CastleWard) Label() string { return "Castle" }

// Wall returns the citadel's own curtain wall.
func (w *CastleWard) Wall() *CurtainWall { return w.wall }

func newCastleWard(m *Model, p *Patch) (*CastleWard, error) {
	// Vertices the citadel shares with the countryside stay fixed.
	var reserved []*geom.Point
	for _, v := range p.Shape.Vertices {
		for _, other := range m.patchByVertex(v) {
			if !other.WithinCity {
				reserved = append(reserved, v)
				break
			}
		}
	}
	wall, err := newCurtainWall(true, m, []*Patch{p}, reserved)
	if err != nil {
		return nil, err
	}
	return &CastleWard{
		baseWard: baseWard{model: m, patch: p},
		wall:     wall,
	}, nil
}

func (w *CastleWard) CreateGeometry() {
	r := w.model.rng
	block := w.patch.Shape.ShrinkEq(MainStreet * 2)
	w.geometry = createOrthoBuilding(r, block, math.Sqrt(block.Square())*4, 0.6)
}

// FarmWard drops a rotated farmhouse cluster somewhere inside the patch.
type FarmWard struct{ baseWard }

func (w *FarmWard) Label() string { return "Farm" }

func newFarmWard(m *Model, p *Patch) Ward {
	return &FarmWard{baseWard{model: m, patch: p}}
}

func (w *FarmWard) CreateGeometry() {
	r := w.model.rng
	housing := geom.Rect(4, 4)

	verts := w.patch.Shape.Vertices
	if len(verts) == 0 {
		w.geometry = []*geom.Polygon{housing}
		return
	}
	idx := int(r.Float()*float64(len(verts))) % len(verts)
	pos := geom.Interpolate(verts[idx], w.patch.Shape.Centroid(), 0.3+r.Float()*0.4)

	housing.Rotate(r.Float() * math.Pi)
	housing.Offset(pos)

	w.geometry = createOrthoBuilding(r, housing, 8, 0.5)
}

// newCountrysideWard is the inert ward of unused countryside patches.
func newCountrysideWard(m *Model, p *Patch) Ward {
	return &baseWard{model: m, patch: p}
}

// wardKind couples a ward constructor with its optional location rating
// (lower is better, +Inf forbidden). Kinds without a rating are placed on a
// random unassigned patch.
type wardKind struct {
	make func(m *Model, p *Patch) Ward
	rate func(m *Model, p *Patch) float64
}

var (
	kindCraftsmen      = &wardKind{make: newCraftsmenWard}
	kindMerchant       = &wardKind{make: newMerchantWard, rate: rateMerchant}
	kindSlum           = &wardKind{make: newSlumWard, rate: rateSlum}
	kindCathedral      = &wardKind{make: newCathedralWard, rate: rateCathedral}
	kindAdministration = &wardKind{make: newAdministrationWard, rate: rateAdministration}
	kindPatriciate     = &wardKind{make: newPatriciateWard, rate: ratePatriciate}
	kindMarket         = &wardKind{make: newMarketWard, rate: rateMarket}
	kindMilitary       = &wardKind{make: newMilitaryWard, rate: rateMilitary}
	kindPark           = &wardKind{make: newParkWard}
)

// wardTemplate returns the target ward mix. Craftsmen dominate, slums fill
// the rest once the template runs out.
func wardTemplate() []*wardKind {
	return []*wardKind{
		kindCraftsmen, kindCraftsmen, kindMerchant, kindCraftsmen, kindCraftsmen,
		kindCathedral, kindCraftsmen, kindCraftsmen, kindCraftsmen, kindCraftsmen,
		kindCraftsmen, kindCraftsmen, kindCraftsmen, kindCraftsmen, kindAdministration,
		kindCraftsmen, kindSlum, kindCraftsmen, kindSlum, kindPatriciate,
		kindMarket, kindSlum, kindCraftsmen, kindCraftsmen, kindCraftsmen,
		kindSlum, kindCraftsmen, kindCraftsmen, kindCraftsmen, kindMilitary,
		kindSlum, kindCraftsmen, kindPark, kindPatriciate, kindMarket,
		kindMerchant,
	}
}
