package algorithm

import (
	"math"

	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
)

type PQItem struct {
	item int32
	dist float64
}

// Computes the shortest distance from the closest start to every node within max_range.
//
// Unreached nodes keep +Inf, nodes at exactly max_range are reached.
func CalcRangeDijkstra(g graph.IGraph, starts List[Tuple[int32, float64]], max_range float64) []float64 {
	dists := make([]float64, g.NodeCount())
	for i := range dists {
		dists[i] = math.Inf(1)
	}
	heap := NewPriorityQueue[PQItem, float64](100)
	explorer := g.GetGraphExplorer()

	for _, item := range starts {
		start := item.A
		dist := item.B
		if !g.IsNode(start) || dist > max_range || dist >= dists[start] {
			continue
		}
		dists[start] = dist
		heap.Enqueue(PQItem{start, dist}, dist)
	}

	for {
		curr_item, ok := heap.Dequeue()
		if !ok {
			break
		}
		curr_id := curr_item.item
		curr_dist := curr_item.dist
		if dists[curr_id] < curr_dist {
			continue
		}
		explorer.ForAdjacentEdges(curr_id, graph.FORWARD, func(ref graph.EdgeRef) {
			other_id := ref.OtherID
			new_length := curr_dist + explorer.GetEdgeWeight(ref)
			if new_length > max_range {
				return
			}
			if dists[other_id] > new_length {
				dists[other_id] = new_length
				heap.Enqueue(PQItem{other_id, new_length}, new_length)
			}
		})
	}
	return dists
}

// Returns the nodes reachable from start within max_range (ego graph), in ascending id order.
func CalcEgoGraph(g graph.IGraph, start int32, max_range float64) List[int32] {
	dists := CalcRangeDijkstra(g, List[Tuple[int32, float64]]{MakeTuple(start, 0.0)}, max_range)
	return NodesWithin(dists, max_range)
}

// Returns the nodes whose distance is at most max_range, in ascending id order.
func NodesWithin(dists []float64, max_range float64) List[int32] {
	nodes := NewList[int32](100)
	for i, dist := range dists {
		if dist <= max_range {
			nodes.Add(int32(i))
		}
	}
	return nodes
}
