// Package core provides the geometry, screen and input primitives shared by
// the simulation and the platform layers. It has no external dependencies so
// simulation code stays pure and testable.
package core

// TileSize is the edge length of one map tile in pixels.
const TileSize = 8

// Point is an integer pixel position.
type Point struct {
	X, Y int
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Offset returns the rectangle moved by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersects returns true if this rectangle overlaps with another.
// Edges are half-open: rectangles that only touch do not intersect, and an
// empty rectangle intersects nothing.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// GridPoint converts a pixel coordinate to its tile coordinate.
// Division truncates toward zero, so -1..-7 map to tile 0 and -8..-15 to -1.
func GridPoint(t int) int {
	return t / TileSize
}

// ProbeEdges samples the tile grid around r and reports whether hit returned
// true for any sample. Samples are the four corners, the left and right
// columns at +6/+12/+18 px for tall rects, and the top and bottom rows at +6
// px for rects at least 12 px wide.
func ProbeEdges(r Rect, hit func(gx, gy int) bool) bool {
	return probe(r, hit, true)
}

// ProbeSides is ProbeEdges without the horizontal midpoints.
func ProbeSides(r Rect, hit func(gx, gy int) bool) bool {
	return probe(r, hit, false)
}

func probe(r Rect, hit func(gx, gy int) bool, widthMidpoint bool) bool {
	left := GridPoint(r.X)
	right := GridPoint(r.X + r.W - 1)
	top := GridPoint(r.Y)
	bottom := GridPoint(r.Y + r.H - 1)

	if hit(left, top) || hit(right, top) || hit(left, bottom) || hit(right, bottom) {
		return true
	}

	for _, off := range [...]int{6, 12, 18} {
		if r.H < off+6 {
			break
		}
		mid := GridPoint(r.Y + off)
		if hit(left, mid) || hit(right, mid) {
			return true
		}
	}

	if widthMidpoint && r.W >= 12 {
		mid := GridPoint(r.X + 6)
		if hit(mid, top) || hit(mid, bottom) {
			return true
		}
	}
	return false
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
