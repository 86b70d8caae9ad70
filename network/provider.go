package network

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/ttpr0/isomap/algorithm"
	"github.com/ttpr0/isomap/graph"
)

var ErrEmptyNetwork = errors.New("no walkable street network around location")

//*******************************************
// network provider interface
//*******************************************

type INetworkProvider interface {
	// Returns the walk network within the bounding box of dist meters around center.
	GetWalkNetwork(ctx context.Context, center orb.Point, dist float64) (*graph.GraphBase, error)
}

//*******************************************
// network extraction
//*******************************************

// Cuts the network to the bounding box of dist meters around center and keeps its largest component.
func ExtractWalkNetwork(base *graph.GraphBase, index graph.IGraphIndex, center orb.Point, dist float64) (*graph.GraphBase, error) {
	bound := geo.NewBoundAroundPoint(center, dist)
	nodes := index.GetNodesInBound(bound)
	if nodes.Length() == 0 {
		return nil, ErrEmptyNetwork
	}
	return RetainLargestComponent(graph.Subgraph(base, nodes))
}

func RetainLargestComponent(base *graph.GraphBase) (*graph.GraphBase, error) {
	if base.NodeCount() == 0 {
		return nil, ErrEmptyNetwork
	}
	g := graph.BuildGraph(base, graph.BuildDistanceWeighting(base))
	nodes := algorithm.LargestComponent(g)
	if nodes.Length() == base.NodeCount() {
		return base, nil
	}
	return graph.Subgraph(base, nodes), nil
}
