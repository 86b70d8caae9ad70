package isochrone

import (
	"errors"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/isomap/algorithm"
	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

var ErrNoNearestNode = errors.New("no network node close to location")

// margin in degrees keeping hulls from collapsing into zero-area shapes
const DEFAULT_BUFFER = 0.002

type IsochroneOptions struct {
	// buffer in degrees
	Buffer   float64
	Simplify bool
	// simplification tolerance in degrees
	Tolerance float64
}

func DefaultOptions() IsochroneOptions {
	return IsochroneOptions{
		Buffer: DEFAULT_BUFFER,
	}
}

type Isochrone struct {
	Minutes int
	// number of network nodes reachable within the time budget
	Points  int
	Polygon orb.Polygon
}

//**********************************************************
// isochrone builder
//**********************************************************

// Computes one walkable-area polygon per time range (minutes) around location.
//
// Ranges reaching fewer than 3 network nodes produce no polygon, the result keeps the order of ranges.
func ComputeIsochrones(g graph.IGraph, index graph.IGraphIndex, location orb.Point, ranges []int, options IsochroneOptions) (List[Isochrone], error) {
	s_node, ok := index.GetClosestNode(location)
	if !ok {
		return nil, ErrNoNearestNode
	}
	isochrones := NewList[Isochrone](len(ranges))
	if len(ranges) == 0 {
		return isochrones, nil
	}
	max_range := float64(slices.Max(ranges)) * 60
	slog.Debug(fmt.Sprintf("Start calculating shortest-path-tree from %v", location))
	dists := algorithm.CalcRangeDijkstra(g, List[Tuple[int32, float64]]{MakeTuple(s_node, 0.0)}, max_range)

	for _, minutes := range ranges {
		nodes := algorithm.NodesWithin(dists, float64(minutes)*60)
		points := make([]orb.Point, 0, nodes.Length())
		for _, node := range nodes {
			points = append(points, g.GetNodeGeom(node))
		}
		polygon, ok := BuildPolygon(points, options)
		if !ok {
			slog.Debug(fmt.Sprintf("skipping %v min isochrone at %v: %v reachable nodes", minutes, location, len(points)))
			continue
		}
		isochrones.Add(Isochrone{
			Minutes: minutes,
			Points:  len(points),
			Polygon: polygon,
		})
	}
	return isochrones, nil
}

// Builds the buffered (and optionally simplified) convex hull of points.
//
// Returns false for fewer than 3 points.
func BuildPolygon(points []orb.Point, options IsochroneOptions) (orb.Polygon, bool) {
	if len(points) < 3 {
		return nil, false
	}
	hull := _ConvexHull(points)
	ring := _BufferHull(hull, options.Buffer)
	if ring == nil {
		return nil, false
	}
	if options.Simplify {
		ring = _SimplifyRing(ring, options.Tolerance)
	}
	return orb.Polygon{ring}, true
}

//**********************************************************
// geojson output
//**********************************************************

func ToFeatureCollection(isochrones List[Isochrone]) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()
	for _, iso := range isochrones {
		feature := geojson.NewFeature(iso.Polygon)
		feature.Properties["value"] = iso.Minutes
		feature.Properties["points"] = iso.Points
		collection.Append(feature)
	}
	return collection
}
