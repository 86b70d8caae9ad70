package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ttpr0/isomap/ingest"
	. "github.com/ttpr0/isomap/util"
	"golang.org/x/exp/slog"
)

var (
	config_file string
	out_file    string
	render_opts struct {
		speed     float64
		ranges    []int
		dist      float64
		simplify  bool
		tolerance float64
	}
)

var rootCmd = &cobra.Command{
	Use:           "isomap",
	Short:         "Walkable-area maps for transit stops",
	Long:          `Generates walking isochrones around the stops of uploaded routes and renders them on a Leaflet map.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the upload web application",
	RunE:  runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render a map from route files into a html document",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config_file, "config", "c", "", "Config file (default $ISOMAP_CONFIG or ./config.yaml if present)")

	renderCmd.Flags().StringVarP(&out_file, "out", "o", "isochrone_map.html", "Output html file")
	renderCmd.Flags().Float64Var(&render_opts.speed, "speed", 0, "Walking speed in m/s (default from config)")
	renderCmd.Flags().IntSliceVar(&render_opts.ranges, "range", nil, "Time ranges in minutes (default from config)")
	renderCmd.Flags().Float64Var(&render_opts.dist, "dist", 0, "Network extent around each stop in meters (default from config)")
	renderCmd.Flags().BoolVar(&render_opts.simplify, "simplify", false, "Simplify polygons")
	renderCmd.Flags().Float64Var(&render_opts.tolerance, "tolerance", -1, "Simplify tolerance in degrees (default from config)")

	rootCmd.AddCommand(serveCmd, renderCmd)
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Resolves the config file from the flag, ISOMAP_CONFIG or ./config.yaml.
func _ConfigFile() string {
	if config_file != "" {
		return config_file
	}
	if file := os.Getenv("ISOMAP_CONFIG"); file != "" {
		return file
	}
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}
	return ""
}

func _Setup(ctx context.Context) (*MapManager, error) {
	config, err := ReadConfig(_ConfigFile())
	if err != nil {
		return nil, err
	}
	if err := SetupLogging(os.Stdout, config.Log.Level); err != nil {
		return nil, err
	}
	provider, err := NewNetworkProvider(ctx, config.Network)
	if err != nil {
		return nil, err
	}
	return NewMapManager(config, provider), nil
}

func runServe(cmd *cobra.Command, args []string) error {
	manager, err := _Setup(cmd.Context())
	if err != nil {
		return err
	}
	router := NewRouter(manager)
	addr := fmt.Sprintf(":%v", manager.GetConfig().Server.Port)
	slog.Info("Listening on " + addr)
	return router.Run(addr)
}

func runRender(cmd *cobra.Command, args []string) error {
	manager, err := _Setup(cmd.Context())
	if err != nil {
		return err
	}
	settings := manager.GetConfig().DefaultSettings()
	if render_opts.speed != 0 {
		settings.WalkingSpeed = render_opts.speed
	}
	if len(render_opts.ranges) > 0 {
		settings.TimeRanges = render_opts.ranges
	}
	if render_opts.dist != 0 {
		settings.Dist = render_opts.dist
	}
	if render_opts.simplify {
		settings.Simplify = true
	}
	if render_opts.tolerance >= 0 {
		settings.Tolerance = render_opts.tolerance
	}

	files := NewList[ingest.File](len(args))
	for _, arg := range args {
		data, err := os.ReadFile(arg)
		if err != nil {
			return fmt.Errorf("failed to read %v: %w", arg, err)
		}
		files.Add(ingest.File{Name: filepath.Base(arg), Data: data})
	}

	result, err := manager.GetGenerator().Run(cmd.Context(), files, settings)
	if result != nil {
		for _, warning := range result.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", warning.String())
		}
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(out_file, result.HTML, 0644); err != nil {
		return fmt.Errorf("failed to write %v: %w", out_file, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %v (%v routes)\n", out_file, result.Routes.Length())
	return nil
}
