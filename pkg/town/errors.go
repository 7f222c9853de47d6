package town

import "errors"

// Generation failures. All of them abort the current build attempt; the
// orchestrator reseeds and retries.
var (
	// ErrBadWalledArea means no gate candidate was available on the wall.
	ErrBadWalledArea = errors.New("bad walled area shape")

	// ErrUnableToBuildStreet means pathfinding from a gate found no route.
	ErrUnableToBuildStreet = errors.New("unable to build a street")

	// ErrBadCitadelShape means the citadel patch is not compact enough to
	// carry a castle.
	ErrBadCitadelShape = errors.New("bad citadel shape")

	// ErrDegeneratePatch means junction optimization left a patch with
	// fewer than three distinct vertices.
	ErrDegeneratePatch = errors.New("degenerate patch")
)
