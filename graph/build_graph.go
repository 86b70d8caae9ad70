package graph

import (
	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

//*******************************************
// build graphs
//*******************************************

func BuildGraphBase(nodes List[Node], edges List[Edge]) *GraphBase {
	fwd_adj, bwd_adj := _BuildTopology(nodes, edges)
	osm_ids := NewDict[int64, int32](nodes.Length())
	bound := orb.Bound{}
	for i, node := range nodes {
		if node.OSMID != 0 {
			osm_ids[node.OSMID] = int32(i)
		}
		if i == 0 {
			bound = node.Loc.Bound()
		} else {
			bound = bound.Extend(node.Loc)
		}
	}
	return &GraphBase{
		nodes:   nodes,
		edges:   edges,
		fwd_adj: fwd_adj,
		bwd_adj: bwd_adj,
		osm_ids: osm_ids,
		bound:   bound,
	}
}

func BuildGraph(base *GraphBase, weight IWeighting) *Graph {
	return &Graph{
		base:   base,
		weight: weight,
	}
}

func BuildGraphIndex(base *GraphBase) *GraphIndex {
	return NewGraphIndex(base)
}

//*******************************************
// build graph components
//*******************************************

func _BuildTopology(nodes List[Node], edges List[Edge]) (List[List[int32]], List[List[int32]]) {
	fwd_adj := make(List[List[int32]], nodes.Length())
	bwd_adj := make(List[List[int32]], nodes.Length())
	for id, edge := range edges {
		fwd_adj[edge.NodeA] = append(fwd_adj[edge.NodeA], int32(id))
		bwd_adj[edge.NodeB] = append(bwd_adj[edge.NodeB], int32(id))
	}
	return fwd_adj, bwd_adj
}
