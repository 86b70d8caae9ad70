package graph

import (
	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

//*******************************************
// graph base
//*******************************************

// Immutable topology of a street network.
//
// Safe for concurrent readers, weightings and explorers are built on top of it per request.
type GraphBase struct {
	nodes   List[Node]
	edges   List[Edge]
	fwd_adj List[List[int32]]
	bwd_adj List[List[int32]]
	osm_ids Dict[int64, int32]
	bound   orb.Bound
}

func (self *GraphBase) NodeCount() int {
	return len(self.nodes)
}
func (self *GraphBase) EdgeCount() int {
	return len(self.edges)
}
func (self *GraphBase) IsNode(node int32) bool {
	return node >= 0 && node < int32(len(self.nodes))
}
func (self *GraphBase) GetNode(node int32) Node {
	return self.nodes[node]
}
func (self *GraphBase) GetEdge(edge int32) Edge {
	return self.edges[edge]
}
func (self *GraphBase) GetNodeGeom(node int32) orb.Point {
	return self.nodes[node].Loc
}

// Returns the internal id of an osm node.
func (self *GraphBase) GetNodeByOSMID(id int64) (int32, bool) {
	node, ok := self.osm_ids[id]
	return node, ok
}

func (self *GraphBase) GetNodeDegree(node int32, direction Direction) int {
	if direction == FORWARD {
		return len(self.fwd_adj[node])
	}
	return len(self.bwd_adj[node])
}

// Bounding box of all nodes.
func (self *GraphBase) Bound() orb.Bound {
	return self.bound
}
