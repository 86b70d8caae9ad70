package graph

import (
	. "github.com/ttpr0/isomap/util"
)

//*******************************************
// modification methods
//*******************************************

// Builds the subgraph induced by the given nodes.
//
// Edges are kept if both of their nodes are kept, node and edge order is preserved.
func Subgraph(base *GraphBase, nodes List[int32]) *GraphBase {
	mapping := make([]int32, base.NodeCount())
	for i := range mapping {
		mapping[i] = -1
	}
	keep := NewList[int32](nodes.Length())
	keep = append(keep, nodes...)
	SortInt32(keep)

	new_nodes := NewList[Node](keep.Length())
	for _, node := range keep {
		if !base.IsNode(node) || mapping[node] != -1 {
			continue
		}
		mapping[node] = int32(new_nodes.Length())
		new_nodes.Add(base.GetNode(node))
	}
	new_edges := NewList[Edge](new_nodes.Length() * 2)
	for _, edge := range base.edges {
		node_a := mapping[edge.NodeA]
		node_b := mapping[edge.NodeB]
		if node_a == -1 || node_b == -1 {
			continue
		}
		new_edges.Add(Edge{
			NodeA:  node_a,
			NodeB:  node_b,
			Length: edge.Length,
		})
	}
	return BuildGraphBase(new_nodes, new_edges)
}

// Removes the given nodes and all their adjacent edges.
func RemoveNodes(base *GraphBase, nodes List[int32]) *GraphBase {
	remove := make([]bool, base.NodeCount())
	for _, node := range nodes {
		if base.IsNode(node) {
			remove[node] = true
		}
	}
	keep := NewList[int32](base.NodeCount())
	for i := 0; i < base.NodeCount(); i++ {
		if !remove[i] {
			keep.Add(int32(i))
		}
	}
	return Subgraph(base, keep)
}
