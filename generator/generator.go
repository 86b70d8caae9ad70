package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/ttpr0/isomap/graph"
	"github.com/ttpr0/isomap/ingest"
	"github.com/ttpr0/isomap/isochrone"
	"github.com/ttpr0/isomap/mapview"
	"github.com/ttpr0/isomap/network"
	"github.com/ttpr0/isomap/routes"
	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

var ErrNoValidRoutes = errors.New("no valid routes uploaded")

type Options struct {
	// buffer around the hull in degrees
	Buffer float64
	// number of stops processed in parallel
	Workers int
	Map     mapview.ComposeOptions
}

func DefaultOptions() Options {
	return Options{
		Buffer:  isochrone.DEFAULT_BUFFER,
		Workers: 1,
		Map:     mapview.DefaultComposeOptions(nil),
	}
}

type Result struct {
	Routes   List[Route]
	Map      *mapview.Map
	HTML     []byte
	Warnings List[Warning]
}

type Generator struct {
	ingestor *ingest.Ingestor
	registry *routes.Registry
	provider network.INetworkProvider
	options  Options
}

func NewGenerator(ingestor *ingest.Ingestor, registry *routes.Registry, provider network.INetworkProvider, options Options) *Generator {
	if options.Workers < 1 {
		options.Workers = 1
	}
	return &Generator{
		ingestor: ingestor,
		registry: registry,
		provider: provider,
		options:  options,
	}
}

//*******************************************
// map generation
//*******************************************

type _StopJob struct {
	route int
	stop  int
}

type _StopOutcome struct {
	result   mapview.StopResult
	warnings List[Warning]
}

// Runs the whole pipeline: ingest files, register routes, compute the isochrones of every stop,
// compose and render the map.
//
// Returns ErrNoValidRoutes if no file yields a route, every other problem is reported as a warning.
func (self *Generator) Run(ctx context.Context, files List[ingest.File], settings Settings) (*Result, error) {
	settings = settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	parsed, warnings := self.ingestor.Ingest(files)
	registered, route_warnings := self.registry.Register(parsed)
	warnings = append(warnings, route_warnings...)
	if registered.Length() == 0 {
		return &Result{Warnings: warnings}, ErrNoValidRoutes
	}

	jobs := NewList[_StopJob](10)
	for r, route := range registered {
		for s := range route.Stops {
			jobs.Add(_StopJob{route: r, stop: s})
		}
	}
	slog.Info(fmt.Sprintf("generating isochrones for %v stops on %v routes", jobs.Length(), registered.Length()))

	outcomes := make([]_StopOutcome, jobs.Length())
	group, group_ctx := errgroup.WithContext(ctx)
	group.SetLimit(self.options.Workers)
	for i, job := range jobs {
		route := registered[job.route]
		stop := route.Stops[job.stop]
		group.Go(func() error {
			if err := group_ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = self._ProcessStop(group_ctx, route, stop, settings)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := NewList[mapview.RouteResult](registered.Length())
	for _, route := range registered {
		results.Add(mapview.RouteResult{Route: route, Stops: NewList[mapview.StopResult](route.Stops.Length())})
	}
	for i, job := range jobs {
		results[job.route].Stops.Add(outcomes[i].result)
		warnings = append(warnings, outcomes[i].warnings...)
	}

	compose_options := self.options.Map
	compose_options.Ranges = settings.TimeRanges
	m, err := mapview.Compose(results, compose_options)
	if err != nil {
		return nil, err
	}
	html, err := mapview.RenderBytes(m)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		slog.Warn(warning.String())
	}
	return &Result{
		Routes:   registered,
		Map:      m,
		HTML:     html,
		Warnings: warnings,
	}, nil
}

func (self *Generator) _ProcessStop(ctx context.Context, route Route, stop Stop, settings Settings) _StopOutcome {
	outcome := _StopOutcome{
		result: mapview.StopResult{Stop: stop},
	}
	isochrones, err := self.ComputeIsochrones(ctx, stop.Location(), settings)
	if err != nil {
		if errors.Is(err, isochrone.ErrNoNearestNode) {
			outcome.warnings.Add(NewWarning(route.Name, "nearest node failed for %v: %v", stop.Name, err))
		} else {
			outcome.warnings.Add(NewWarning(route.Name, "walk network failed for %v: %v", stop.Name, err))
		}
		return outcome
	}
	outcome.result.Resolved = true
	outcome.result.Isochrones = isochrones
	return outcome
}

// Computes the isochrones around a single location.
//
// Errors if the walk network cannot be fetched or no network node is close to location.
func (self *Generator) ComputeIsochrones(ctx context.Context, location orb.Point, settings Settings) (List[isochrone.Isochrone], error) {
	base, err := self.provider.GetWalkNetwork(ctx, location, settings.Dist)
	if err != nil {
		return nil, err
	}
	weight, err := graph.BuildTimeWeighting(base, settings.WalkingSpeed)
	if err != nil {
		return nil, err
	}
	g := graph.BuildGraph(base, weight)
	index := graph.BuildGraphIndex(base)
	options := isochrone.IsochroneOptions{
		Buffer:    self.options.Buffer,
		Simplify:  settings.Simplify,
		Tolerance: settings.Tolerance,
	}
	return isochrone.ComputeIsochrones(g, index, location, settings.TimeRanges, options)
}
