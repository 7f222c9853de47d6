package town

import (
	"github.com/townforge/townforge/pkg/geom"
	"github.com/townforge/townforge/pkg/voronoi"
)

// Patch is one Voronoi cell of the town, the atomic spatial unit. Its shape
// shares vertex instances with every neighboring patch.
type Patch struct {
	Shape *geom.Polygon
	Ward  Ward

	WithinWalls bool
	WithinCity  bool
}

// newPatch wraps an existing vertex ring without copying it.
func newPatch(shape *geom.Polygon) *Patch {
	return &Patch{Shape: shape}
}

// patchFromRegion creates a patch over the region's circumcenter instances,
// so neighboring patches share their boundary vertices.
func patchFromRegion(r *voronoi.Region) *Patch {
	pts := make([]*geom.Point, len(r.Vertices))
	for i, tr := range r.Vertices {
		pts[i] = tr.C
	}
	return newPatch(geom.NewPolygon(pts...))
}
