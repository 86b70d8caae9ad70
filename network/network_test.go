package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
)

func TestOverpassProvider(t *testing.T) {
	data, err := os.ReadFile("./testdata/walk.osm")
	require.NoError(t, err)

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		query = r.PostForm.Get("data")
		w.Header().Set("Content-Type", "application/osm3s+xml")
		w.Write(data)
	}))
	defer server.Close()

	provider := NewOverpassProvider(server.URL, 5*time.Second)
	base, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.001}, 1000)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "[out:xml][timeout:5];"))
	assert.Contains(t, query, `way["highway"]`)
	assert.Equal(t, 3, base.NodeCount())
	assert.Equal(t, 4, base.EdgeCount())
}

func TestOverpassProviderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewOverpassProvider(server.URL, time.Second)
	_, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 1000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestOverpassProviderEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><osm version="0.6"></osm>`))
	}))
	defer server.Close()

	provider := NewOverpassProvider(server.URL, time.Second)
	_, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 1000)
	assert.True(t, errors.Is(err, ErrEmptyNetwork))
}

func TestBuildOverpassQuery(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{7.0, 49.0}, Max: orb.Point{7.5, 49.5}}
	query := BuildOverpassQuery(bound, 0)
	assert.Equal(t, `[out:xml][timeout:180];(way["highway"](49.0000000,7.0000000,49.5000000,7.5000000);>;);out body;`, query)
}

func TestGraphProviderExtract(t *testing.T) {
	// 20x20 grid with 0.001 degree spacing, roughly 110m x 70m cells
	base := graph.BuildGridGraph(20, 20, orb.Point{10.0, 50.0}, 0.001)
	provider := NewGraphProvider(base)

	sub, err := provider.GetWalkNetwork(context.Background(), orb.Point{10.01, 50.01}, 200)
	require.NoError(t, err)
	assert.Less(t, sub.NodeCount(), base.NodeCount())
	assert.Greater(t, sub.NodeCount(), 4)
	bound := sub.Bound()
	assert.Greater(t, bound.Min[1], 50.007)
	assert.Less(t, bound.Max[1], 50.013)

	_, err = provider.GetWalkNetwork(context.Background(), orb.Point{20.0, 20.0}, 200)
	assert.True(t, errors.Is(err, ErrEmptyNetwork))
}

func TestRetainLargestComponent(t *testing.T) {
	nodes := NewList[graph.Node](5)
	for i := 0; i < 5; i++ {
		nodes.Add(graph.Node{Loc: orb.Point{float64(i) * 0.001, 0}, OSMID: int64(i + 1)})
	}
	edges := List[graph.Edge]{
		{NodeA: 0, NodeB: 1, Length: 10},
		{NodeA: 2, NodeB: 3, Length: 10},
		{NodeA: 3, NodeB: 4, Length: 10},
	}
	base, err := RetainLargestComponent(graph.BuildGraphBase(nodes, edges))
	require.NoError(t, err)
	assert.Equal(t, 3, base.NodeCount())
	_, ok := base.GetNodeByOSMID(1)
	assert.False(t, ok)
}

type _CountingProvider struct {
	calls atomic.Int32
	fail  bool
}

func (self *_CountingProvider) GetWalkNetwork(ctx context.Context, center orb.Point, dist float64) (*graph.GraphBase, error) {
	self.calls.Add(1)
	if self.fail {
		return nil, errors.New("network unreachable")
	}
	return graph.BuildGridGraph(2, 2, center, 0.001), nil
}

func TestCachedProvider(t *testing.T) {
	inner := &_CountingProvider{}
	provider := NewCachedProvider(inner, 10, time.Minute)

	a, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 1000)
	require.NoError(t, err)
	b, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.000001, 49.0}, 1000)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err = provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 2000)
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	inner := &_CountingProvider{fail: true}
	provider := NewCachedProvider(inner, 10, 0)

	_, err := provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 1000)
	assert.Error(t, err)
	_, err = provider.GetWalkNetwork(context.Background(), orb.Point{7.0, 49.0}, 1000)
	assert.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestPBFProviderGraphFile(t *testing.T) {
	graph_file := filepath.Join(t.TempDir(), "walk.graph")
	base := graph.BuildGridGraph(10, 10, orb.Point{10.0, 50.0}, 0.001)
	require.NoError(t, graph.StoreGraphBase(base, graph_file))

	// a stored graph file makes the pbf extract unnecessary
	provider, err := NewPBFProvider(context.Background(), "missing.osm.pbf", graph_file)
	require.NoError(t, err)
	network, err := provider.GetWalkNetwork(context.Background(), orb.Point{10.005, 50.005}, 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, network.NodeCount())

	_, err = NewPBFProvider(context.Background(), "missing.osm.pbf", filepath.Join(t.TempDir(), "other.graph"))
	assert.Error(t, err)
}
