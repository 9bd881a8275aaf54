package chaosgame

import "math"

// viewport maps world coordinates to raster cells: positions are offset by
// center, so the world point -center lands in the middle of the raster, and
// a world distance of zoom spans half the shorter side.
type viewport struct {
	width, height int
	ratio         Real
	cx, cy        Real
	center        Vec2
}

func newViewport(width, height int, zoom Real, center Vec2) viewport {
	return viewport{
		width:  width,
		height: height,
		ratio:  Real(min(width, height)) / zoom / 2,
		cx:     Real(width) / 2,
		cy:     Real(height) / 2,
		center: center,
	}
}

// index returns the flat cell index of p, or false when p is off-raster.
func (v viewport) index(p Point) (int, bool) {
	x := math.Floor((p.X+v.center.X)*v.ratio + v.cx)
	y := math.Floor((p.Y+v.center.Y)*v.ratio + v.cy)
	if !(x >= 0 && y >= 0 && x < Real(v.width) && y < Real(v.height)) {
		return 0, false
	}
	return int(x) + int(y)*v.width, true
}
