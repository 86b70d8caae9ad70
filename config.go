package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/isomap/generator"
	"github.com/ttpr0/isomap/isochrone"
	"github.com/ttpr0/isomap/mapview"
	"github.com/ttpr0/isomap/network"
	"github.com/ttpr0/isomap/routes"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// Reads the yaml config on top of the defaults, applies environment overrides and validates the result.
//
// An empty file name yields the defaults.
func ReadConfig(file string) (Config, error) {
	config := DefaultConfig()
	if file != "" {
		slog.Info("Reading config file " + file)
		data, err := os.ReadFile(file)
		if err != nil {
			return config, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if err := ApplyEnv(&config); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Overrides config values from ISOMAP_* environment variables.
func ApplyEnv(config *Config) error {
	if port := os.Getenv("ISOMAP_PORT"); port != "" {
		value, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid ISOMAP_PORT %q: %w", port, err)
		}
		config.Server.Port = value
	}
	if url := os.Getenv("ISOMAP_OVERPASS_URL"); url != "" {
		config.Network.OverpassURL = url
	}
	if level := os.Getenv("ISOMAP_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	return nil
}

var config_validate = validator.New()

func (self Config) Validate() error {
	if err := config_validate.Struct(self); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if self.Network.Source == "pbf" && self.Network.PBFFile == "" {
		return errors.New("invalid config: network source pbf requires pbf-file")
	}
	return nil
}

type Config struct {
	Server    ServerOptions    `yaml:"server"`
	Log       LogOptions       `yaml:"log"`
	Network   NetworkOptions   `yaml:"network"`
	Isochrone IsochroneOptions `yaml:"isochrone"`
	Map       MapOptions       `yaml:"map"`
}

type ServerOptions struct {
	Port int `yaml:"port" validate:"gt=0,lt=65536"`
	// upload limit in megabytes
	MaxUploadMB       int           `yaml:"max-upload-mb" validate:"gt=0"`
	FileCacheSize     int           `yaml:"file-cache-size" validate:"gte=1"`
	ArtifactCacheSize int           `yaml:"artifact-cache-size" validate:"gte=1"`
	ArtifactExpiry    time.Duration `yaml:"artifact-expiry" validate:"gte=0"`
}

type LogOptions struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

type NetworkOptions struct {
	Source      string        `yaml:"source" validate:"oneof=overpass pbf"`
	OverpassURL string        `yaml:"overpass-url" validate:"omitempty,url"`
	PBFFile     string        `yaml:"pbf-file"`
	// parsed pbf network, written on first load
	GraphFile   string        `yaml:"graph-file"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
	CacheSize   int           `yaml:"cache-size" validate:"gte=0"`
	CacheExpiry time.Duration `yaml:"cache-expiry" validate:"gte=0"`
}

type IsochroneOptions struct {
	WalkingSpeed float64 `yaml:"walking-speed" validate:"gt=0"`
	TimeRanges   []int   `yaml:"time-ranges" validate:"dive,gt=0"`
	Dist         float64 `yaml:"dist" validate:"gt=0"`
	Simplify     bool    `yaml:"simplify"`
	Tolerance    float64 `yaml:"tolerance" validate:"gte=0"`
	// degrees
	Buffer  float64 `yaml:"buffer" validate:"gte=0"`
	Workers int     `yaml:"workers" validate:"gte=1,lte=64"`
}

type MapOptions struct {
	Icons       []string `yaml:"icons" validate:"dive,required"`
	IconSize    [2]int   `yaml:"icon-size"`
	IconAnchor  [2]int   `yaml:"icon-anchor"`
	Zoom        int      `yaml:"zoom" validate:"gte=1,lte=19"`
	TileURL     string   `yaml:"tile-url" validate:"required"`
	Attribution string   `yaml:"attribution"`
	Colors      struct {
		Highlight string `yaml:"highlight" validate:"hexcolor"`
		Default   string `yaml:"default" validate:"hexcolor"`
	} `yaml:"colors"`
}

func DefaultConfig() Config {
	config := Config{
		Server: ServerOptions{
			Port:              5002,
			MaxUploadMB:       32,
			FileCacheSize:     64,
			ArtifactCacheSize: 32,
			ArtifactExpiry:    time.Hour,
		},
		Log: LogOptions{
			Level: "info",
		},
		Network: NetworkOptions{
			Source:      "overpass",
			OverpassURL: network.DEFAULT_OVERPASS_URL,
			Timeout:     3 * time.Minute,
			CacheSize:   256,
			CacheExpiry: 24 * time.Hour,
		},
		Isochrone: IsochroneOptions{
			WalkingSpeed: generator.DEFAULT_WALKING_SPEED,
			TimeRanges:   generator.DefaultSettings().TimeRanges,
			Dist:         generator.DEFAULT_DIST,
			Simplify:     false,
			Tolerance:    generator.DEFAULT_TOLERANCE,
			Buffer:       isochrone.DEFAULT_BUFFER,
			Workers:      1,
		},
		Map: MapOptions{
			Icons:       routes.DEFAULT_ICONS,
			IconSize:    [2]int{40, 40},
			IconAnchor:  [2]int{20, 40},
			Zoom:        mapview.DEFAULT_ZOOM,
			TileURL:     mapview.OSM_TILE_URL,
			Attribution: mapview.OSM_ATTRIBUTION,
		},
	}
	config.Map.Colors.Highlight = mapview.HIGHLIGHT_COLOR
	config.Map.Colors.Default = mapview.DEFAULT_COLOR
	return config
}

// Default map settings offered to users.
func (self Config) DefaultSettings() generator.Settings {
	ranges := make([]int, len(self.Isochrone.TimeRanges))
	copy(ranges, self.Isochrone.TimeRanges)
	return generator.Settings{
		WalkingSpeed: self.Isochrone.WalkingSpeed,
		TimeRanges:   ranges,
		Dist:         self.Isochrone.Dist,
		Simplify:     self.Isochrone.Simplify,
		Tolerance:    self.Isochrone.Tolerance,
	}
}

func (self Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Buffer:  self.Isochrone.Buffer,
		Workers: self.Isochrone.Workers,
		Map: mapview.ComposeOptions{
			Zoom:           self.Map.Zoom,
			TileURL:        self.Map.TileURL,
			Attribution:    self.Map.Attribution,
			IconSize:       self.Map.IconSize,
			IconAnchor:     self.Map.IconAnchor,
			HighlightColor: self.Map.Colors.Highlight,
			Color:          self.Map.Colors.Default,
		},
	}
}
