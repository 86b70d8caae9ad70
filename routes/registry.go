package routes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ttpr0/isomap/ingest"
	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

var DEFAULT_ICONS = List[string]{
	"https://cdn-icons-png.flaticon.com/512/3448/3448316.png",
	"https://cdn-icons-png.flaticon.com/512/3448/3448339.png",
}

type Registry struct {
	icons List[string]
}

func NewRegistry(icons List[string]) *Registry {
	if icons.Length() == 0 {
		icons = DEFAULT_ICONS
	}
	return &Registry{
		icons: icons,
	}
}

// Turns parsed files into routes named after the file stem.
//
// A later file with the same stem replaces the stops of the earlier one but keeps its position.
// Routes without any valid stop are dropped, icons cycle over the remaining routes in order.
func (self *Registry) Register(files List[ingest.ParsedFile]) (List[Route], List[Warning]) {
	warnings := NewList[Warning](0)
	positions := NewDict[string, int](files.Length())
	routes := NewList[Route](files.Length())
	for _, file := range files {
		name := RouteName(file.Name)
		if pos, ok := positions[name]; ok {
			slog.Warn(fmt.Sprintf("route %v uploaded twice, using %v", name, file.Name))
			warnings.Add(NewWarning(file.Name, "replaces earlier upload of route %q", name))
			routes[pos].Stops = file.Stops
			continue
		}
		positions[name] = routes.Length()
		routes.Add(Route{Name: name, Stops: file.Stops})
	}

	valid := NewList[Route](routes.Length())
	for _, route := range routes {
		if route.Stops.Length() == 0 {
			warnings.Add(NewWarning(route.Name, "no valid stops, skipping route"))
			continue
		}
		route.Index = valid.Length()
		route.Icon = self.icons[route.Index%self.icons.Length()]
		valid.Add(route)
	}
	return valid, warnings
}

// Returns the file name without directory and last extension.
func RouteName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := filepath.Ext(base)
	if ext == base {
		return base
	}
	return strings.TrimSuffix(base, ext)
}
