// Package routing talks to an OSRM-compatible routing service. Its trip
// service solves the stop ordering; the client maps the answer back onto the
// requested stops.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"laundry/internal/core/domain/model/route"
	"laundry/internal/core/ports"
)

const (
	defaultProfile = "driving"
	defaultTimeout = 10 * time.Second
	// maxErrorBody bounds how much of a failed response ends up in the error.
	maxErrorBody = 512
)

var _ ports.RouteOptimizer = (*OSRMClient)(nil)

// Config holds the connection settings of the routing service.
type Config struct {
	BaseURL string
	Profile string
	APIKey  string
	Timeout time.Duration
}

// OSRMClient implements ports.RouteOptimizer with the OSRM trip service.
// A single call is made per Optimize; there are no retries.
type OSRMClient struct {
	baseURL string
	profile string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// NewOSRMClient creates a client. An empty BaseURL is accepted: every call
// then fails with route.ErrRoutingUnavailable.
func NewOSRMClient(cfg Config, httpClient *http.Client) *OSRMClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Profile == "" {
		cfg.Profile = defaultProfile
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &OSRMClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: cfg.Profile,
		apiKey:  cfg.APIKey,
		timeout: cfg.Timeout,
		http:    httpClient,
	}
}

type tripResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Waypoints []tripWaypoint `json:"waypoints"`
	Trips     []trip         `json:"trips"`
}

type tripWaypoint struct {
	WaypointIndex int `json:"waypoint_index"`
	TripsIndex    int `json:"trips_index"`
}

type trip struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []tripLeg `json:"legs"`
}

type tripLeg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Optimize asks for a round trip starting at req.Start and reorders req.Stops
// by the returned waypoint positions. When the route does not return to the
// start, the closing leg is left out of the totals. Every failure is a
// *route.RoutingUnavailableError.
func (c *OSRMClient) Optimize(ctx context.Context, req route.Request) (route.Plan, error) {
	if c.baseURL == "" {
		return route.Plan{}, route.NewRoutingUnavailableError(errors.New("routing base url is not configured"))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var resp tripResponse
	if err := c.get(ctx, c.tripURL(req), &resp); err != nil {
		return route.Plan{}, route.NewRoutingUnavailableError(err)
	}

	plan, err := toPlan(req, resp)
	if err != nil {
		return route.Plan{}, route.NewRoutingUnavailableError(err)
	}
	return plan, nil
}

// tripURL builds /trip/v1/{profile}/{lng,lat;...} with the start first.
func (c *OSRMClient) tripURL(req route.Request) string {
	points := make([]string, 0, len(req.Stops)+1)
	points = append(points, lngLat(req.Start.Lng(), req.Start.Lat()))
	for _, s := range req.Stops {
		points = append(points, lngLat(s.Coordinates.Lng(), s.Coordinates.Lat()))
	}

	query := url.Values{}
	query.Set("source", "first")
	query.Set("roundtrip", "true")
	query.Set("overview", "false")

	return fmt.Sprintf("%s/trip/v1/%s/%s?%s", c.baseURL, c.profile, strings.Join(points, ";"), query.Encode())
}

func (c *OSRMClient) get(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toPlan(req route.Request, resp tripResponse) (route.Plan, error) {
	if resp.Code != "Ok" {
		return route.Plan{}, fmt.Errorf("trip service answered %s: %s", resp.Code, resp.Message)
	}
	if len(resp.Trips) != 1 {
		return route.Plan{}, fmt.Errorf("trip service returned %d trips, want 1", len(resp.Trips))
	}
	if len(resp.Waypoints) != len(req.Stops)+1 {
		return route.Plan{}, fmt.Errorf("trip service returned %d waypoints for %d points", len(resp.Waypoints), len(req.Stops)+1)
	}

	n := len(req.Stops)
	ordered := make([]route.Stop, n)
	filled := make([]bool, n)
	for i, wp := range resp.Waypoints[1:] {
		pos := wp.WaypointIndex - 1
		if pos < 0 || pos >= n || filled[pos] {
			return route.Plan{}, fmt.Errorf("trip service placed stop %d at invalid position %d", i, wp.WaypointIndex)
		}
		ordered[pos] = req.Stops[i]
		ordered[pos].Sequence = pos
		filled[pos] = true
	}

	t := resp.Trips[0]
	distance, duration := t.Distance, t.Duration
	if !req.ReturnToStart && len(t.Legs) > 0 {
		last := t.Legs[len(t.Legs)-1]
		distance -= last.Distance
		duration -= last.Duration
	}

	return route.Plan{
		Stops:           ordered,
		TotalDistanceKm: distance / 1000,
		TotalDuration:   time.Duration(duration * float64(time.Second)),
		ReturnToStart:   req.ReturnToStart,
		Optimized:       true,
	}, nil
}

func lngLat(lng, lat float64) string {
	return strconv.FormatFloat(lng, 'f', 6, 64) + "," + strconv.FormatFloat(lat, 'f', 6, 64)
}
