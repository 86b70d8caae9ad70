package mapview

import (
	"encoding/json"
	"fmt"
	"html"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/ttpr0/isomap/isochrone"
	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
)

const (
	HIGHLIGHT_COLOR = "#fff700"
	DEFAULT_COLOR   = "#1f77b4"
	DEFAULT_ZOOM    = 13
	OSM_TILE_URL    = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	OSM_ATTRIBUTION = "&copy; OpenStreetMap contributors"
)

// Isochrones computed for one stop.
type StopResult struct {
	Stop Stop
	// false if no walk network could be resolved for the stop
	Resolved   bool
	Isochrones List[isochrone.Isochrone]
}

type RouteResult struct {
	Route Route
	Stops List[StopResult]
}

type ComposeOptions struct {
	Ranges         []int
	Zoom           int
	TileURL        string
	Attribution    string
	IconSize       [2]int
	IconAnchor     [2]int
	HighlightColor string
	Color          string
}

func DefaultComposeOptions(ranges []int) ComposeOptions {
	return ComposeOptions{
		Ranges:         ranges,
		Zoom:           DEFAULT_ZOOM,
		TileURL:        OSM_TILE_URL,
		Attribution:    OSM_ATTRIBUTION,
		IconSize:       [2]int{40, 40},
		IconAnchor:     [2]int{20, 40},
		HighlightColor: HIGHLIGHT_COLOR,
		Color:          DEFAULT_COLOR,
	}
}

// Maps the smallest range to the highlight color and every other range to color.
func RangeColors(ranges []int, highlight, color string) Dict[int, string] {
	colors := NewDict[int, string](len(ranges))
	if len(ranges) == 0 {
		return colors
	}
	min_range := slices.Min(ranges)
	for _, t := range ranges {
		if t == min_range {
			colors[t] = highlight
		} else {
			colors[t] = color
		}
	}
	return colors
}

//*******************************************
// compose map
//*******************************************

// Builds the layered map model from the computed routes.
//
// All overlays are hidden initially. Only resolved stops get a stop group.
func Compose(results List[RouteResult], options ComposeOptions) (*Map, error) {
	colors := RangeColors(options.Ranges, options.HighlightColor, options.Color)

	routes := NewList[RouteGroup](results.Length())
	stops := NewList[StopGroup](10)
	for _, result := range results {
		route := result.Route
		icon := Icon{URL: route.Icon, Size: options.IconSize, Anchor: options.IconAnchor}
		markers := NewList[Marker](result.Stops.Length())
		for _, stop_result := range result.Stops {
			stop := stop_result.Stop
			markers.Add(Marker{
				Location: stop.Location(),
				Icon:     icon,
				Popup:    StopPopup(stop),
			})
			if !stop_result.Resolved {
				continue
			}
			group_name := StopGroupName(stop)
			layers := NewList[PolygonLayer](stop_result.Isochrones.Length())
			for _, iso := range stop_result.Isochrones {
				feature := geojson.NewFeature(iso.Polygon)
				feature.Properties["value"] = iso.Minutes
				data, err := json.Marshal(feature)
				if err != nil {
					return nil, fmt.Errorf("failed to encode isochrone of %v: %w", group_name, err)
				}
				layers.Add(PolygonLayer{
					Name:        fmt.Sprintf("%v %v min", group_name, iso.Minutes),
					Minutes:     iso.Minutes,
					Color:       colors[iso.Minutes],
					FillOpacity: 0.4,
					Weight:      2,
					GeoJSON:     string(data),
				})
			}
			stops.Add(StopGroup{Name: group_name, Layers: layers})
		}
		routes.Add(RouteGroup{
			Name:    "🔥 " + route.Name,
			Markers: markers,
		})
	}

	return &Map{
		Title:       "Isochrone Map",
		Center:      MapCenter(results),
		Zoom:        options.Zoom,
		TileURL:     options.TileURL,
		Attribution: options.Attribution,
		Routes:      routes,
		Stops:       stops,
		Legend:      BuildLegend(options.Ranges, colors),
	}, nil
}

func StopGroupName(stop Stop) string {
	return fmt.Sprintf("Stop %v → %v", stop.StopNumber, stop.Name)
}

func StopPopup(stop Stop) string {
	popup := fmt.Sprintf("<div><b>Stop %v</b><br>%v", html.EscapeString(stop.StopNumber), html.EscapeString(stop.Name))
	if stop.Address != "" {
		popup += "<br>" + html.EscapeString(stop.Address)
	}
	return popup + "</div>"
}

// Returns the first resolved stop in route order, or the centroid of all stops if none resolved.
func MapCenter(results List[RouteResult]) orb.Point {
	count := 0
	var sum orb.Point
	for _, result := range results {
		for _, stop := range result.Stops {
			if stop.Resolved {
				return stop.Stop.Location()
			}
			sum[0] += stop.Stop.Lon
			sum[1] += stop.Stop.Lat
			count += 1
		}
	}
	if count == 0 {
		return orb.Point{}
	}
	return orb.Point{sum[0] / float64(count), sum[1] / float64(count)}
}

func BuildLegend(ranges []int, colors Dict[int, string]) Legend {
	legend := Legend{Title: "Isochrone Walk Time"}
	if len(ranges) == 0 {
		return legend
	}
	min_range := slices.Min(ranges)
	max_range := slices.Max(ranges)
	legend.Entries.Add(LegendEntry{Label: fmt.Sprintf("%v min", min_range), Color: colors[min_range]})
	if max_range != min_range {
		legend.Entries.Add(LegendEntry{Label: fmt.Sprintf("%v min", max_range), Color: colors[max_range]})
	}
	return legend
}
