package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/ttpr0/isomap/graph"
	"github.com/ttpr0/isomap/parser"
	"golang.org/x/exp/slog"
)

const DEFAULT_OVERPASS_URL = "https://overpass-api.de/api/interpreter"

//*******************************************
// overpass provider
//*******************************************

var _ INetworkProvider = &OverpassProvider{}

// Fetches walk networks from an Overpass API endpoint.
type OverpassProvider struct {
	url     string
	timeout time.Duration
	client  *http.Client
	decoder parser.IOSMDecoder
}

func NewOverpassProvider(endpoint string, timeout time.Duration) *OverpassProvider {
	if endpoint == "" {
		endpoint = DEFAULT_OVERPASS_URL
	}
	return &OverpassProvider{
		url:     endpoint,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		decoder: &parser.WalkingDecoder{},
	}
}

func (self *OverpassProvider) GetWalkNetwork(ctx context.Context, center orb.Point, dist float64) (*graph.GraphBase, error) {
	bound := geo.NewBoundAroundPoint(center, dist)
	data, err := self.fetch(ctx, BuildOverpassQuery(bound, self.timeout))
	if err != nil {
		return nil, err
	}
	base, err := parser.ParseGraphFromXML(ctx, data, self.decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}
	slog.Debug(fmt.Sprintf("fetched network around %v: %v nodes, %v edges", center, base.NodeCount(), base.EdgeCount()))
	return ExtractWalkNetwork(base, graph.BuildGraphIndex(base), center, dist)
}

func (self *OverpassProvider) fetch(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{}
	form.Set("data", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, self.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := self.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", self.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, self.url)
	}
	return io.ReadAll(resp.Body)
}

// Builds a query for all highways in bound together with their nodes.
func BuildOverpassQuery(bound orb.Bound, timeout time.Duration) string {
	seconds := int(timeout.Seconds())
	if seconds <= 0 {
		seconds = 180
	}
	return fmt.Sprintf(`[out:xml][timeout:%d];(way["highway"](%.7f,%.7f,%.7f,%.7f);>;);out body;`,
		seconds, bound.Min[1], bound.Min[0], bound.Max[1], bound.Max[0])
}
