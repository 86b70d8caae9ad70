package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"github.com/google/uuid"
	"github.com/ttpr0/isomap/generator"
	"github.com/ttpr0/isomap/ingest"
	"github.com/ttpr0/isomap/network"
	"github.com/ttpr0/isomap/routes"
	. "github.com/ttpr0/isomap/structs"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

// Rendered map kept for viewing and download.
type MapArtifact struct {
	ID       string
	HTML     []byte
	Routes   int
	Stops    int
	Warnings List[Warning]
	Created  time.Time
}

type MapManager struct {
	config    Config
	generator *generator.Generator
	artifacts gcache.Cache
}

// Builds the network provider selected by the config.
func NewNetworkProvider(ctx context.Context, options NetworkOptions) (network.INetworkProvider, error) {
	var provider network.INetworkProvider
	switch options.Source {
	case "pbf":
		pbf, err := network.NewPBFProvider(ctx, options.PBFFile, options.GraphFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load pbf network: %w", err)
		}
		provider = pbf
	case "overpass", "":
		provider = network.NewOverpassProvider(options.OverpassURL, options.Timeout)
	default:
		return nil, fmt.Errorf("unknown network source %q", options.Source)
	}
	if options.CacheSize > 0 {
		provider = network.NewCachedProvider(provider, options.CacheSize, options.CacheExpiry)
	}
	return provider, nil
}

func NewMapManager(config Config, provider network.INetworkProvider) *MapManager {
	ingestor := ingest.NewIngestor(config.Server.FileCacheSize, config.Server.ArtifactExpiry)
	registry := routes.NewRegistry(config.Map.Icons)

	builder := gcache.New(config.Server.ArtifactCacheSize).LRU()
	if config.Server.ArtifactExpiry > 0 {
		builder = builder.Expiration(config.Server.ArtifactExpiry)
	}
	return &MapManager{
		config:    config,
		generator: generator.NewGenerator(ingestor, registry, provider, config.GeneratorOptions()),
		artifacts: builder.Build(),
	}
}

// Generates a map from the uploaded files and stores it under a new id.
//
// On ErrNoValidRoutes the returned artifact carries the collected warnings.
func (self *MapManager) Generate(ctx context.Context, files List[ingest.File], settings generator.Settings) (MapArtifact, error) {
	result, err := self.generator.Run(ctx, files, settings)
	if err != nil {
		artifact := MapArtifact{}
		if result != nil {
			artifact.Warnings = result.Warnings
		}
		return artifact, err
	}
	stops := 0
	for _, route := range result.Routes {
		stops += route.Stops.Length()
	}
	artifact := MapArtifact{
		ID:       uuid.NewString(),
		HTML:     result.HTML,
		Routes:   result.Routes.Length(),
		Stops:    stops,
		Warnings: result.Warnings,
		Created:  time.Now(),
	}
	if err := self.artifacts.Set(artifact.ID, artifact); err != nil {
		return artifact, fmt.Errorf("failed to store map: %w", err)
	}
	slog.Info(fmt.Sprintf("stored map %v (%v routes, %v stops)", artifact.ID, artifact.Routes, artifact.Stops))
	return artifact, nil
}

func (self *MapManager) GetArtifact(id string) Optional[MapArtifact] {
	value, err := self.artifacts.Get(id)
	if err != nil {
		return None[MapArtifact]()
	}
	return Some(value.(MapArtifact))
}

func (self *MapManager) GetGenerator() *generator.Generator {
	return self.generator
}

func (self *MapManager) GetConfig() Config {
	return self.config
}
