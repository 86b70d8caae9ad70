package parser

import (
	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

//*******************************************
// parser structs
//*******************************************

type TempNode struct {
	Point orb.Point
	// number of way references, way endpoints count twice
	Count int32
	Found bool
}
type OSMNode struct {
	ID    int64
	Point orb.Point
}
type OSMEdge struct {
	NodeA  int
	NodeB  int
	Oneway bool
	Nodes  List[orb.Point]
}
