package isochrone

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
)

func _BuildWalkGrid(t *testing.T, rows, cols int) (*graph.Graph, *graph.GraphIndex) {
	base := graph.BuildGridGraph(rows, cols, orb.Point{10.0, 50.0}, 0.001)
	weight, err := graph.BuildTimeWeighting(base, 1.33)
	require.NoError(t, err)
	return graph.BuildGraph(base, weight), graph.BuildGraphIndex(base)
}

type _EmptyIndex struct{}

func (self _EmptyIndex) GetClosestNode(point orb.Point) (int32, bool) { return -1, false }
func (self _EmptyIndex) GetNodesInBound(bound orb.Bound) List[int32] { return nil }

func TestComputeIsochrones(t *testing.T) {
	g, index := _BuildWalkGrid(t, 21, 21)
	center := orb.Point{10.0101, 50.0099}

	isochrones, err := ComputeIsochrones(g, index, center, []int{5, 10}, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, isochrones.Length())

	small := isochrones[0]
	large := isochrones[1]
	assert.Equal(t, 5, small.Minutes)
	assert.Equal(t, 10, large.Minutes)
	assert.Greater(t, large.Points, small.Points)

	for _, iso := range isochrones {
		require.Len(t, iso.Polygon, 1)
		ring := iso.Polygon[0]
		assert.True(t, ring.Closed())
		assert.Equal(t, orb.CCW, ring.Orientation())
		assert.True(t, planar.PolygonContains(iso.Polygon, center))
	}
	assert.Greater(t, math.Abs(planar.Area(large.Polygon)), math.Abs(planar.Area(small.Polygon)))

	// 300s at 1.33 m/s stays within 399m of the start
	bound := small.Polygon.Bound()
	assert.Less(t, bound.Max[1], 50.01+0.004+DEFAULT_BUFFER)
	assert.Greater(t, bound.Min[1], 50.01-0.004-DEFAULT_BUFFER)
}

func TestComputeIsochronesDeterministic(t *testing.T) {
	g, index := _BuildWalkGrid(t, 15, 15)
	center := orb.Point{10.007, 50.007}
	options := IsochroneOptions{Buffer: DEFAULT_BUFFER, Simplify: true, Tolerance: 0.0008}

	first, err := ComputeIsochrones(g, index, center, []int{5}, options)
	require.NoError(t, err)
	second, err := ComputeIsochrones(g, index, center, []int{5}, options)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeIsochronesTooFewNodes(t *testing.T) {
	g, index := _BuildWalkGrid(t, 1, 2)

	isochrones, err := ComputeIsochrones(g, index, orb.Point{10.0, 50.0}, []int{5, 10}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, isochrones.Length())
}

func TestComputeIsochronesNoNearestNode(t *testing.T) {
	g, _ := _BuildWalkGrid(t, 3, 3)

	_, err := ComputeIsochrones(g, _EmptyIndex{}, orb.Point{10.0, 50.0}, []int{5}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoNearestNode)
}

func TestConvexHull(t *testing.T) {
	points := []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0.5, 0.5}, {0, 0}, {0.5, 0}}
	hull := _ConvexHull(points)
	assert.Equal(t, []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, hull)

	line := _ConvexHull([]orb.Point{{0, 0}, {1, 1}, {2, 2}})
	assert.Equal(t, []orb.Point{{0, 0}, {2, 2}}, line)
}

func TestBufferHull(t *testing.T) {
	ring := _BufferHull([]orb.Point{{5, 5}}, 0.002)
	require.NotNil(t, ring)
	assert.True(t, ring.Closed())
	assert.Len(t, ring, _BUFFER_SEGMENTS+1)
	assert.InEpsilon(t, math.Pi*0.002*0.002, math.Abs(planar.Area(ring)), 0.01)

	// collinear points become a stadium shape
	stadium := _BufferHull(_ConvexHull([]orb.Point{{0, 0}, {0.01, 0}}), 0.002)
	require.NotNil(t, stadium)
	assert.True(t, planar.RingContains(stadium, orb.Point{0.005, 0.0019}))
	assert.False(t, planar.RingContains(stadium, orb.Point{0.005, 0.0021}))

	assert.Nil(t, _BufferHull([]orb.Point{{0, 0}, {1, 1}}, 0))
}

func TestBuildPolygonSimplify(t *testing.T) {
	points := []orb.Point{{0, 0}, {0.01, 0}, {0.01, 0.01}, {0, 0.01}}

	plain, ok := BuildPolygon(points, IsochroneOptions{Buffer: 0.002})
	require.True(t, ok)
	simplified, ok := BuildPolygon(points, IsochroneOptions{Buffer: 0.002, Simplify: true, Tolerance: 0.0008})
	require.True(t, ok)

	assert.Less(t, len(simplified[0]), len(plain[0]))
	assert.GreaterOrEqual(t, len(simplified[0]), 4)
	assert.True(t, simplified[0].Closed())

	_, ok = BuildPolygon(points[:2], DefaultOptions())
	assert.False(t, ok)
}

func TestToFeatureCollection(t *testing.T) {
	polygon := orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}
	isochrones := List[Isochrone]{
		{Minutes: 5, Points: 3, Polygon: polygon},
		{Minutes: 10, Points: 7, Polygon: polygon},
	}

	collection := ToFeatureCollection(isochrones)
	require.Len(t, collection.Features, 2)
	assert.Equal(t, 5, collection.Features[0].Properties["value"])
	assert.Equal(t, 10, collection.Features[1].Properties["value"])
	assert.Equal(t, "Polygon", collection.Features[0].Geometry.GeoJSONType())
}
