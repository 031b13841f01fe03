package physics

import "math"

// Rect is an axis-aligned rectangle in world units, anchored at its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// CenterRect builds a Rect from its center point and size.
func CenterRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Overlaps reports whether the two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Contains reports whether (x,y) lies inside r (edges inclusive).
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.MaxX() && y >= r.Y && y <= r.MaxY()
}

// separation returns the smallest translation that moves a out of b, and the
// unit normal of the face of b it is pushed through. ok is false when the
// rectangles do not overlap.
func separation(a, b Rect) (dx, dy, nx, ny float64, ok bool) {
	if !a.Overlaps(b) {
		return 0, 0, 0, 0, false
	}
	acx, acy := a.Center()
	bcx, bcy := b.Center()

	overlapX := (a.W+b.W)/2 - abs(acx-bcx)
	overlapY := (a.H+b.H)/2 - abs(acy-bcy)

	if overlapX < overlapY {
		if acx < bcx {
			return -overlapX, 0, -1, 0, true
		}
		return overlapX, 0, 1, 0, true
	}
	if acy < bcy {
		return 0, -overlapY, 0, -1, true
	}
	return 0, overlapY, 0, 1, true
}

// sweptSeparation moves a, which travelled from prev at (vx,vy), back out of b
// across the face it entered through. The entry axis is the one prev did not
// already overlap; when prev overlapped on both or neither axis, it is the
// axis crossed most recently. A body at rest falls back to separation.
func sweptSeparation(a, prev, b Rect, vx, vy float64) (dx, dy, nx, ny float64, ok bool) {
	if !a.Overlaps(b) {
		return 0, 0, 0, 0, false
	}
	if vx == 0 && vy == 0 {
		return separation(a, b)
	}

	// Depth measured from the entry face, and the normal pushing back out.
	depthX, depthY := math.Inf(1), math.Inf(1)
	switch {
	case vx > 0:
		depthX, nx = a.MaxX()-b.X, -1
	case vx < 0:
		depthX, nx = b.MaxX()-a.X, 1
	}
	switch {
	case vy > 0:
		depthY, ny = a.MaxY()-b.Y, -1
	case vy < 0:
		depthY, ny = b.MaxY()-a.Y, 1
	}

	wasX := prev.X < b.MaxX() && b.X < prev.MaxX()
	wasY := prev.Y < b.MaxY() && b.Y < prev.MaxY()
	var useX bool
	switch {
	case vy == 0:
		useX = true
	case vx == 0:
		useX = false
	case wasY && !wasX:
		useX = true
	case wasX && !wasY:
		useX = false
	default:
		useX = depthX/abs(vx) < depthY/abs(vy)
	}

	if useX {
		return nx * depthX, 0, nx, 0, true
	}
	return 0, ny * depthY, 0, ny, true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
