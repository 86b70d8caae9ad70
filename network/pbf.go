package network

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/paulmach/orb"
	"github.com/ttpr0/isomap/graph"
	"github.com/ttpr0/isomap/parser"
	"golang.org/x/exp/slog"
)

//*******************************************
// pbf provider
//*******************************************

var _ INetworkProvider = &PBFProvider{}

// Serves walk networks from a local osm extract loaded once.
type PBFProvider struct {
	base  *graph.GraphBase
	index *graph.GraphIndex
}

// Parses the walk network of a pbf extract.
//
// If graph_file is set the parsed graph is stored there and reused on the next start.
func NewPBFProvider(ctx context.Context, pbf_file string, graph_file string) (*PBFProvider, error) {
	if graph_file != "" {
		base, err := graph.LoadGraphBase(graph_file)
		if err == nil {
			slog.Info(fmt.Sprintf("Loaded walk network from %v: %v nodes, %v edges", graph_file, base.NodeCount(), base.EdgeCount()))
			return NewGraphProvider(base), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn(fmt.Sprintf("ignoring graph file %v: %v", graph_file, err))
		}
	}

	slog.Info("Loading walk network from " + pbf_file)
	base, err := parser.ParseGraphFromPBF(ctx, pbf_file, &parser.WalkingDecoder{})
	if err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("Loaded walk network: %v nodes, %v edges", base.NodeCount(), base.EdgeCount()))
	if graph_file != "" {
		if err := graph.StoreGraphBase(base, graph_file); err != nil {
			slog.Warn(fmt.Sprintf("failed to store graph file %v: %v", graph_file, err))
		}
	}
	return NewGraphProvider(base), nil
}

// Serves walk networks cut from an already built graph.
func NewGraphProvider(base *graph.GraphBase) *PBFProvider {
	return &PBFProvider{
		base:  base,
		index: graph.BuildGraphIndex(base),
	}
}

func (self *PBFProvider) GetWalkNetwork(ctx context.Context, center orb.Point, dist float64) (*graph.GraphBase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ExtractWalkNetwork(self.base, self.index, center, dist)
}
