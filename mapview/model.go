package mapview

import (
	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

// Composed map, everything needed to render the document.
type Map struct {
	Title       string
	Center      orb.Point
	Zoom        int
	TileURL     string
	Attribution string
	Routes      List[RouteGroup]
	Stops       List[StopGroup]
	Legend      Legend
}

type Icon struct {
	URL    string
	Size   [2]int
	Anchor [2]int
}

type Marker struct {
	Location orb.Point
	Icon     Icon
	// html fragment, user supplied parts are escaped
	Popup string
}

// Overlay with the markers of one route.
type RouteGroup struct {
	Name    string
	Show    bool
	Markers List[Marker]
}

// Overlay with the isochrone polygons of one stop.
type StopGroup struct {
	Name   string
	Show   bool
	Layers List[PolygonLayer]
}

type PolygonLayer struct {
	Name        string
	Minutes     int
	Color       string
	FillOpacity float64
	Weight      int
	// geojson feature
	GeoJSON string
}

type Legend struct {
	Title   string
	Entries List[LegendEntry]
}

type LegendEntry struct {
	Label string
	Color string
}
