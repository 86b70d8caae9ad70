package graph

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	. "github.com/ttpr0/isomap/util"
)

// *******************************************
// graph index interface
// *******************************************

type IGraphIndex interface {
	GetClosestNode(point orb.Point) (int32, bool)
	GetNodesInBound(bound orb.Bound) List[int32]
}

//*******************************************
// graph index
//*******************************************

const (
	_INDEX_MIN_CHILDREN = 25
	_INDEX_MAX_CHILDREN = 50
	_INDEX_TOLERANCE    = 1e-9
	// candidates taken from the tree before refining by great-circle distance
	_CLOSEST_CANDIDATES = 8
)

type _IndexItem struct {
	node int32
	loc  orb.Point
	rect *rtreego.Rect
}

func (self *_IndexItem) Bounds() *rtreego.Rect {
	return self.rect
}

var _ IGraphIndex = &GraphIndex{}

// R-Tree over the node locations (lon, lat).
type GraphIndex struct {
	tree  *rtreego.Rtree
	count int
}

func NewGraphIndex(base *GraphBase) *GraphIndex {
	tree := rtreego.NewTree(2, _INDEX_MIN_CHILDREN, _INDEX_MAX_CHILDREN)
	for i := 0; i < base.NodeCount(); i++ {
		loc := base.GetNodeGeom(int32(i))
		point := rtreego.Point{loc[0], loc[1]}
		tree.Insert(&_IndexItem{
			node: int32(i),
			loc:  loc,
			rect: point.ToRect(_INDEX_TOLERANCE),
		})
	}
	return &GraphIndex{
		tree:  tree,
		count: base.NodeCount(),
	}
}

// Returns the node closest to point by great-circle distance.
//
// Returns false if the index is empty.
func (self *GraphIndex) GetClosestNode(point orb.Point) (int32, bool) {
	if self.count == 0 {
		return -1, false
	}
	candidates := self.tree.NearestNeighbors(_CLOSEST_CANDIDATES, rtreego.Point{point[0], point[1]})
	closest := int32(-1)
	closest_dist := math.Inf(1)
	for _, candidate := range candidates {
		item, ok := candidate.(*_IndexItem)
		if !ok || item == nil {
			continue
		}
		dist := geo.DistanceHaversine(point, item.loc)
		if dist < closest_dist || (dist == closest_dist && item.node < closest) {
			closest = item.node
			closest_dist = dist
		}
	}
	if closest == -1 {
		return -1, false
	}
	return closest, true
}

// Returns all nodes inside bound in ascending id order.
func (self *GraphIndex) GetNodesInBound(bound orb.Bound) List[int32] {
	nodes := NewList[int32](100)
	if self.count == 0 {
		return nodes
	}
	lengths := []float64{
		math.Max(bound.Max[0]-bound.Min[0], _INDEX_TOLERANCE),
		math.Max(bound.Max[1]-bound.Min[1], _INDEX_TOLERANCE),
	}
	rect, err := rtreego.NewRect(rtreego.Point{bound.Min[0], bound.Min[1]}, lengths)
	if err != nil {
		return nodes
	}
	for _, result := range self.tree.SearchIntersect(rect) {
		item, ok := result.(*_IndexItem)
		if !ok || !bound.Contains(item.loc) {
			continue
		}
		nodes.Add(item.node)
	}
	SortInt32(nodes)
	return nodes
}
