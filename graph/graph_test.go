package graph

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/ttpr0/isomap/util"
)

func TestBuildGridGraph(t *testing.T) {
	base := BuildGridGraph(3, 4, orb.Point{7.0, 49.0}, 0.001)

	assert.Equal(t, 12, base.NodeCount())
	// (rows*(cols-1) + cols*(rows-1)) undirected edges, stored in both directions
	assert.Equal(t, 2*(3*3+4*2), base.EdgeCount())
	assert.Equal(t, 2, base.GetNodeDegree(0, FORWARD))
	assert.Equal(t, 4, base.GetNodeDegree(5, BACKWARD))

	node, ok := base.GetNodeByOSMID(6)
	require.True(t, ok)
	assert.Equal(t, int32(5), node)

	bound := base.Bound()
	assert.InDelta(t, 7.0, bound.Min[0], 1e-12)
	assert.InDelta(t, 49.002, bound.Max[1], 1e-12)
}

func TestExplorerAdjacency(t *testing.T) {
	base := BuildGridGraph(2, 2, orb.Point{0, 0}, 0.001)
	weight := BuildDistanceWeighting(base)
	g := BuildGraph(base, weight)
	explorer := g.GetGraphExplorer()

	others := NewList[int32](2)
	explorer.ForAdjacentEdges(0, FORWARD, func(ref EdgeRef) {
		others.Add(ref.OtherID)
		assert.InDelta(t, 111.3, explorer.GetEdgeWeight(ref), 0.5)
		assert.Equal(t, ref.OtherID, explorer.GetOtherNode(ref, 0))
	})
	SortInt32(others)
	assert.Equal(t, List[int32]{1, 2}, others)
}

func TestTimeWeighting(t *testing.T) {
	base := BuildGridGraph(1, 2, orb.Point{0, 0}, 0.001)
	weight, err := BuildTimeWeighting(base, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, base.GetEdge(0).Length/2.0, weight.GetEdgeWeight(0), 1e-9)
	assert.Equal(t, TIME_WEIGHT, weight.Type())

	_, err = BuildTimeWeighting(base, 0)
	assert.Error(t, err)
	_, err = BuildTimeWeighting(base, -1)
	assert.Error(t, err)
}

func TestGraphIndexClosestNode(t *testing.T) {
	base := BuildGridGraph(5, 5, orb.Point{10.0, 50.0}, 0.001)
	index := BuildGraphIndex(base)

	node, ok := index.GetClosestNode(orb.Point{10.0021, 50.0029})
	require.True(t, ok)
	// row 3, column 2
	assert.Equal(t, int32(17), node)

	empty := BuildGraphIndex(BuildGraphBase(NewList[Node](0), NewList[Edge](0)))
	_, ok = empty.GetClosestNode(orb.Point{0, 0})
	assert.False(t, ok)
}

func TestGraphIndexNodesInBound(t *testing.T) {
	base := BuildGridGraph(5, 5, orb.Point{10.0, 50.0}, 0.001)
	index := BuildGraphIndex(base)

	bound := orb.Bound{Min: orb.Point{9.9995, 49.9995}, Max: orb.Point{10.0015, 50.0015}}
	nodes := index.GetNodesInBound(bound)
	assert.Equal(t, List[int32]{0, 1, 5, 6}, nodes)
}

func TestSubgraph(t *testing.T) {
	base := BuildGridGraph(2, 3, orb.Point{0, 0}, 0.001)
	sub := Subgraph(base, List[int32]{4, 0, 1})

	assert.Equal(t, 3, sub.NodeCount())
	// 0-1 and 1-4 survive in both directions
	assert.Equal(t, 4, sub.EdgeCount())
	assert.Equal(t, base.GetNode(4).Loc, sub.GetNode(2).Loc)

	removed := RemoveNodes(base, List[int32]{1})
	assert.Equal(t, 5, removed.NodeCount())
	assert.Equal(t, 2*(7-3), removed.EdgeCount())
}

func TestStoreLoadGraphBase(t *testing.T) {
	base := BuildGridGraph(3, 3, orb.Point{7.0, 49.0}, 0.001)
	file := filepath.Join(t.TempDir(), "walk.graph")

	require.NoError(t, StoreGraphBase(base, file))
	loaded, err := LoadGraphBase(file)
	require.NoError(t, err)

	assert.Equal(t, base.NodeCount(), loaded.NodeCount())
	assert.Equal(t, base.EdgeCount(), loaded.EdgeCount())
	assert.Equal(t, base.GetNode(4), loaded.GetNode(4))
	assert.Equal(t, base.GetEdge(5), loaded.GetEdge(5))
	assert.Equal(t, base.Bound(), loaded.Bound())
	node, ok := loaded.GetNodeByOSMID(9)
	require.True(t, ok)
	assert.Equal(t, int32(8), node)
}

func TestReadGraphBaseInvalid(t *testing.T) {
	_, err := ReadGraphBase(bytes.NewReader([]byte("no graph here, just text")))
	assert.Error(t, err)

	var buffer bytes.Buffer
	require.NoError(t, WriteGraphBase(BuildGridGraph(2, 2, orb.Point{0, 0}, 0.001), &buffer))
	_, err = ReadGraphBase(bytes.NewReader(buffer.Bytes()[:buffer.Len()-4]))
	assert.Error(t, err)
}
