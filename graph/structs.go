package graph

import (
	"github.com/paulmach/orb"
)

//*******************************************
// graph structs
//*******************************************

type Node struct {
	Loc   orb.Point
	OSMID int64
}

type Edge struct {
	NodeA int32
	NodeB int32
	// length in meters
	Length float64
}

//*******************************************
// edgeref struct
//*******************************************

type EdgeRef struct {
	EdgeID  int32
	OtherID int32
}
