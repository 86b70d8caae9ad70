package graph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	. "github.com/ttpr0/isomap/util"
)

// Builds a rows x cols lattice of bidirectional edges starting at origin (south-west corner).
//
// Node ids are assigned row by row, spacing is given in degrees.
func BuildGridGraph(rows, cols int, origin orb.Point, spacing float64) *GraphBase {
	nodes := NewList[Node](rows * cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nodes.Add(Node{
				Loc:   orb.Point{origin[0] + float64(c)*spacing, origin[1] + float64(r)*spacing},
				OSMID: int64(r*cols + c + 1),
			})
		}
	}
	edges := NewList[Edge](rows * cols * 4)
	add := func(a, b int) {
		length := geo.DistanceHaversine(nodes[a].Loc, nodes[b].Loc)
		edges.Add(Edge{NodeA: int32(a), NodeB: int32(b), Length: length})
		edges.Add(Edge{NodeA: int32(b), NodeB: int32(a), Length: length})
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			id := r*cols + c
			if c+1 < cols {
				add(id, id+1)
			}
			if r+1 < rows {
				add(id, id+cols)
			}
		}
	}
	return BuildGraphBase(nodes, edges)
}
