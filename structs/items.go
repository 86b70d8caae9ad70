package structs

import (
	"fmt"

	"github.com/paulmach/orb"
	. "github.com/ttpr0/isomap/util"
)

//*******************************************
// stop
//*******************************************

type Stop struct {
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Name       string  `json:"name"`
	StopNumber string  `json:"stop_number"`
	Address    string  `json:"address,omitempty"`
	// zero-based row of the stop within its source table
	Row int `json:"row"`
}

func (self Stop) Location() orb.Point {
	return orb.Point{self.Lon, self.Lat}
}

//*******************************************
// route
//*******************************************

type Route struct {
	Name string `json:"name"`
	// position among the registered routes (upload order)
	Index int        `json:"index"`
	Icon  string     `json:"icon"`
	Stops List[Stop] `json:"stops"`
}

//*******************************************
// warnings
//*******************************************

// Non-fatal problem found while processing an upload.
type Warning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

func NewWarning(source string, format string, args ...any) Warning {
	return Warning{
		Source:  source,
		Message: fmt.Sprintf(format, args...),
	}
}

func (self Warning) String() string {
	if self.Source == "" {
		return self.Message
	}
	return self.Source + ": " + self.Message
}
