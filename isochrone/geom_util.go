package isochrone

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// number of vertices approximating the buffer circle
const _BUFFER_SEGMENTS = 64

func _Cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

// Computes the convex hull of points (monotone chain).
//
// Returns the hull vertices counter-clockwise without repeating the first one,
// degenerate inputs give one or two points.
func _ConvexHull(points []orb.Point) []orb.Point {
	pts := make([]orb.Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		return pts[i][1] < pts[j][1]
	})
	unique := pts[:0]
	for i, p := range pts {
		if i == 0 || !p.Equal(pts[i-1]) {
			unique = append(unique, p)
		}
	}
	pts = unique
	if len(pts) < 3 {
		return pts
	}

	hull := make([]orb.Point, 0, 2*len(pts))
	for _, p := range pts {
		for len(hull) >= 2 && _Cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && _Cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Buffers a convex shape by dist (Minkowski sum with a circle).
//
// Returns a closed counter-clockwise ring, nil if the result has no area.
func _BufferHull(hull []orb.Point, dist float64) orb.Ring {
	if dist <= 0 {
		if len(hull) < 3 {
			return nil
		}
		return _CloseRing(hull)
	}
	points := make([]orb.Point, 0, len(hull)*_BUFFER_SEGMENTS)
	for _, p := range hull {
		for k := 0; k < _BUFFER_SEGMENTS; k++ {
			angle := 2 * math.Pi * float64(k) / _BUFFER_SEGMENTS
			points = append(points, orb.Point{p[0] + dist*math.Cos(angle), p[1] + dist*math.Sin(angle)})
		}
	}
	buffered := _ConvexHull(points)
	if len(buffered) < 3 {
		return nil
	}
	return _CloseRing(buffered)
}

// Simplifies a ring with Douglas-Peucker, keeps the input if the result is not a valid ring.
func _SimplifyRing(ring orb.Ring, tolerance float64) orb.Ring {
	if tolerance <= 0 {
		return ring
	}
	geom := simplify.DouglasPeucker(tolerance).Simplify(ring.Clone())
	simplified, ok := geom.(orb.Ring)
	if !ok || len(simplified) < 4 || !simplified.Closed() {
		return ring
	}
	return simplified
}

func _CloseRing(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	ring = append(ring, points...)
	ring = append(ring, points[0])
	return ring
}
