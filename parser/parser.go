package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/ttpr0/isomap/graph"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

// Opens a fresh scanner over the same osm data, called once per parsing pass.
type ScannerFactory func() (osm.Scanner, error)

func ParseGraph(open ScannerFactory, decoder IOSMDecoder) (*graph.GraphBase, error) {
	nodes := NewList[OSMNode](10000)
	edges := NewList[OSMEdge](10000)
	index_mapping := NewDict[int64, int](10000)
	if err := _ParseOsm(open, decoder, &nodes, &edges, &index_mapping); err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("parsed osm data: edges: %v, nodes: %v", edges.Length(), nodes.Length()))
	base := _CreateGraphBase(&nodes, &edges)
	return base, nil
}

// Parses an osm xml document (e.g. an overpass response).
func ParseGraphFromXML(ctx context.Context, data []byte, decoder IOSMDecoder) (*graph.GraphBase, error) {
	open := func() (osm.Scanner, error) {
		return osmxml.New(ctx, bytes.NewReader(data)), nil
	}
	return ParseGraph(open, decoder)
}

// Parses an osm pbf extract.
func ParseGraphFromPBF(ctx context.Context, pbf_file string, decoder IOSMDecoder) (*graph.GraphBase, error) {
	file, err := os.Open(pbf_file)
	if err != nil {
		return nil, fmt.Errorf("failed to open pbf file: %w", err)
	}
	defer file.Close()

	open := func() (osm.Scanner, error) {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1)), nil
	}
	return ParseGraph(open, decoder)
}

func _ParseOsm(open ScannerFactory, decoder IOSMDecoder, nodes *List[OSMNode], edges *List[OSMEdge], index_mapping *Dict[int64, int]) error {
	osm_nodes := NewDict[int64, TempNode](1000)

	passes := []func(osm.Scanner){
		func(scanner osm.Scanner) {
			_InitWayHandler(scanner, decoder, &osm_nodes)
		},
		func(scanner osm.Scanner) {
			_NodeHandler(scanner, &osm_nodes, nodes, index_mapping)
		},
		func(scanner osm.Scanner) {
			_WayHandler(scanner, decoder, edges, &osm_nodes, index_mapping)
		},
	}
	for i, pass := range passes {
		scanner, err := open()
		if err != nil {
			return fmt.Errorf("failed to open osm scanner: %w", err)
		}
		pass(scanner)
		err = scanner.Err()
		scanner.Close()
		if err != nil {
			return fmt.Errorf("failed to scan osm data (pass %v): %w", i+1, err)
		}
	}
	return nil
}

func _CreateGraphBase(osmnodes *List[OSMNode], osmedges *List[OSMEdge]) *graph.GraphBase {
	nodes := NewList[graph.Node](osmnodes.Length())
	edges := NewList[graph.Edge](osmedges.Length() * 2)

	for _, osmedge := range *osmedges {
		length := float64(0)
		for i := 0; i < osmedge.Nodes.Length()-1; i++ {
			length += geo.DistanceHaversine(osmedge.Nodes[i], osmedge.Nodes[i+1])
		}
		edge := graph.Edge{
			NodeA:  int32(osmedge.NodeA),
			NodeB:  int32(osmedge.NodeB),
			Length: length,
		}
		edges.Add(edge)
		if !osmedge.Oneway {
			edge = graph.Edge{
				NodeA:  int32(osmedge.NodeB),
				NodeB:  int32(osmedge.NodeA),
				Length: length,
			}
			edges.Add(edge)
		}
	}

	for _, osmnode := range *osmnodes {
		nodes.Add(graph.Node{
			Loc:   osmnode.Point,
			OSMID: osmnode.ID,
		})
	}

	return graph.BuildGraphBase(nodes, edges)
}

//*******************************************
// osm handler methods
//*******************************************

func _InitWayHandler(scanner osm.Scanner, decoder IOSMDecoder, osm_nodes *Dict[int64, TempNode]) {
	if s, ok := scanner.(*osmpbf.Scanner); ok {
		s.SkipNodes = true
		s.SkipRelations = true
	}
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			nodes := object.Nodes
			l := len(nodes)
			if l < 2 {
				continue
			}
			for i := 0; i < l; i++ {
				ndref := int64(nodes[i].ID)
				node := (*osm_nodes)[ndref]
				node.Count += 1
				(*osm_nodes)[ndref] = node
			}
			// way endpoints are always graph nodes
			node_a := (*osm_nodes)[int64(nodes[0].ID)]
			node_a.Count += 1
			(*osm_nodes)[int64(nodes[0].ID)] = node_a
			node_b := (*osm_nodes)[int64(nodes[l-1].ID)]
			node_b.Count += 1
			(*osm_nodes)[int64(nodes[l-1].ID)] = node_b
		default:
			continue
		}
	}
}

func _NodeHandler(scanner osm.Scanner, osm_nodes *Dict[int64, TempNode], nodes *List[OSMNode], index_mapping *Dict[int64, int]) {
	i := 0
	c := 0

	if s, ok := scanner.(*osmpbf.Scanner); ok {
		s.SkipWays = true
		s.SkipRelations = true
	}
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Node:
			id := int64(object.ID)
			if !osm_nodes.ContainsKey(id) {
				continue
			}
			on := osm_nodes.Get(id)
			if on.Found {
				continue
			}
			c += 1
			if c%10000 == 0 {
				slog.Debug(fmt.Sprintf("%v nodes scanned", c))
			}
			on.Point[0] = object.Lon
			on.Point[1] = object.Lat
			on.Found = true
			if on.Count > 1 {
				nodes.Add(OSMNode{ID: id, Point: on.Point})
				index_mapping.Set(id, i)
				i += 1
			}
			osm_nodes.Set(id, on)
		default:
			continue
		}
	}
}

func _WayHandler(scanner osm.Scanner, decoder IOSMDecoder, edges *List[OSMEdge], osm_nodes *Dict[int64, TempNode], index_mapping *Dict[int64, int]) {
	if s, ok := scanner.(*osmpbf.Scanner); ok {
		s.SkipNodes = true
		s.SkipRelations = true
	}
	for scanner.Scan() {
		switch object := scanner.Object().(type) {
		case *osm.Way:
			tags := Dict[string, string](object.TagMap())
			if !decoder.IsValidHighway(tags) {
				continue
			}
			oneway := decoder.IsOneway(tags)

			// ways are split at every graph node, missing nodes interrupt the way
			start := int64(0)
			has_start := false
			e := OSMEdge{}
			for _, way_node := range object.Nodes {
				curr := int64(way_node.ID)
				on := osm_nodes.Get(curr)
				if !on.Found {
					has_start = false
					continue
				}
				if !has_start {
					if on.Count > 1 && index_mapping.ContainsKey(curr) {
						start = curr
						has_start = true
						e = OSMEdge{}
						e.Nodes.Add(on.Point)
					}
					continue
				}
				e.Nodes.Add(on.Point)
				if on.Count > 1 && curr != start {
					e.NodeA = index_mapping.Get(start)
					e.NodeB = index_mapping.Get(curr)
					e.Oneway = oneway
					edges.Add(e)
					start = curr
					e = OSMEdge{}
					e.Nodes.Add(on.Point)
				}
			}
		default:
			continue
		}
	}
}

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	IsOneway(tags Dict[string, string]) bool
}
