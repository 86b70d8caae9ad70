package algorithm

import (
	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
)

// Computes weakly connected components.
//
// Returns the component id of every node, ids are numbered by their lowest node.
func ConnectedComponents(g graph.IGraph) []int32 {
	groups := make([]int32, g.NodeCount())
	for i := range groups {
		groups[i] = -1
	}
	explorer := g.GetGraphExplorer()
	queue := NewList[int32](100)
	group := int32(0)
	for i := 0; i < g.NodeCount(); i++ {
		if groups[i] != -1 {
			continue
		}
		groups[i] = group
		queue = append(queue[:0], int32(i))
		for len(queue) > 0 {
			curr := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			visit := func(ref graph.EdgeRef) {
				if groups[ref.OtherID] != -1 {
					return
				}
				groups[ref.OtherID] = group
				queue.Add(ref.OtherID)
			}
			explorer.ForAdjacentEdges(curr, graph.FORWARD, visit)
			explorer.ForAdjacentEdges(curr, graph.BACKWARD, visit)
		}
		group += 1
	}
	return groups
}

// Returns the nodes of the largest weakly connected component in ascending id order.
func LargestComponent(g graph.IGraph) List[int32] {
	nodes := NewList[int32](g.NodeCount())
	if g.NodeCount() == 0 {
		return nodes
	}
	groups := ConnectedComponents(g)
	max_group := GetMostCommon(groups)
	for i, group := range groups {
		if group == max_group {
			nodes.Add(int32(i))
		}
	}
	return nodes
}
