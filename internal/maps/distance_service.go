package maps

import (
	"context"
	"fmt"
	"net/http"

	"googlemaps.github.io/maps"
)

// DistanceService resolves driving distances with the Google Distance Matrix API.
type DistanceService struct {
	client   *maps.Client
	language string
}

// DistanceOptions tune the underlying client. BaseURL is only set in tests.
type DistanceOptions struct {
	Language   string
	HTTPClient *http.Client
	BaseURL    string
}

// NewDistanceService creates a DistanceService with the given API Key.
func NewDistanceService(apiKey string, opts DistanceOptions) (*DistanceService, error) {
	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, maps.WithHTTPClient(opts.HTTPClient))
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(opts.BaseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client, language: opts.Language}, nil
}

// Distance returns the driving distance in meters and its human readable
// label for a trip from origin to destination.
func (s *DistanceService) Distance(ctx context.Context, origin, destination string) (int, string, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
		Language:     s.language,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, "", fmt.Errorf("distance matrix returned no elements")
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, "", fmt.Errorf("distance matrix element status %s", el.Status)
	}
	return el.Distance.Meters, el.Distance.HumanReadable, nil
}
