package parser

import (
	. "github.com/ttpr0/isomap/util"
)

// Accepts the ways pedestrians may use, all of them traversable in both directions.
type WalkingDecoder struct {
}

var excluded_walking_types = Dict[string, bool]{"abandoned": true, "bus_guideway": true, "construction": true,
	"cycleway": true, "motor": true, "no": true, "planned": true, "platform": true, "proposed": true,
	"raceway": true, "razed": true, "motorway": true, "motorway_link": true}

func (self *WalkingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if excluded_walking_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("area") == "yes" {
		return false
	}
	if _IsPrivate(tags.Get("access")) || _IsPrivate(tags.Get("service")) {
		return false
	}
	if tags.Get("foot") == "no" {
		return false
	}
	return true
}
func (self *WalkingDecoder) IsOneway(tags Dict[string, string]) bool {
	return false
}
