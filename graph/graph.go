package graph

import (
	"github.com/paulmach/orb"
)

//*******************************************
// graph interfaces
//******************************************

type IGraph interface {
	GetGraphExplorer() IGraphExplorer
	NodeCount() int
	EdgeCount() int
	IsNode(node int32) bool
	GetNode(node int32) Node
	GetEdge(edge int32) Edge
	GetNodeGeom(node int32) orb.Point
}

// not thread safe, use only one instance per thread
type IGraphExplorer interface {
	// Iterates through the adjacency of a node calling the callback for every edge.
	//
	// direction tells the traversel direction (FORWARD means outgoing edges, BACKWARD ingoing edges)
	ForAdjacentEdges(node int32, direction Direction, callback func(EdgeRef))
	GetEdgeWeight(edge EdgeRef) float64
	GetOtherNode(edge EdgeRef, node int32) int32
}

//*******************************************
// base-graph
//******************************************

var _ IGraph = &Graph{}

type Graph struct {
	base   *GraphBase
	weight IWeighting
}

func (self *Graph) GetGraphExplorer() IGraphExplorer {
	return &BaseGraphExplorer{
		graph:  self,
		weight: self.weight,
	}
}
func (self *Graph) NodeCount() int {
	return self.base.NodeCount()
}
func (self *Graph) EdgeCount() int {
	return self.base.EdgeCount()
}
func (self *Graph) IsNode(node int32) bool {
	return self.base.IsNode(node)
}
func (self *Graph) GetNode(node int32) Node {
	return self.base.GetNode(node)
}
func (self *Graph) GetEdge(edge int32) Edge {
	return self.base.GetEdge(edge)
}
func (self *Graph) GetNodeGeom(node int32) orb.Point {
	return self.base.GetNodeGeom(node)
}
func (self *Graph) GetBase() *GraphBase {
	return self.base
}

//*******************************************
// base-graph explorer
//******************************************

type BaseGraphExplorer struct {
	graph  *Graph
	weight IWeighting
}

func (self *BaseGraphExplorer) ForAdjacentEdges(node int32, direction Direction, callback func(EdgeRef)) {
	base := self.graph.base
	if direction == FORWARD {
		for _, edge_id := range base.fwd_adj[node] {
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: base.edges[edge_id].NodeB,
			})
		}
	} else {
		for _, edge_id := range base.bwd_adj[node] {
			callback(EdgeRef{
				EdgeID:  edge_id,
				OtherID: base.edges[edge_id].NodeA,
			})
		}
	}
}
func (self *BaseGraphExplorer) GetEdgeWeight(edge EdgeRef) float64 {
	return self.weight.GetEdgeWeight(edge.EdgeID)
}
func (self *BaseGraphExplorer) GetOtherNode(edge EdgeRef, node int32) int32 {
	e := self.graph.GetEdge(edge.EdgeID)
	if node == e.NodeA {
		return e.NodeB
	}
	if node == e.NodeB {
		return e.NodeA
	}
	return -1
}
