package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
)

// User-facing messages.
const (
	msgEmptyInput         = "Please enter a city name"
	msgSearchFailed       = "Failed to search for location. Please try again."
	msgFetchFailed        = "Failed to fetch weather data. Please try again."
	msgPermissionDenied   = "Location permission denied. Please enable location access."
	msgPositionUnavail    = "Location information is unavailable."
	msgPositionTimeout    = "Location request timed out."
	msgGeolocationMissing = "Geolocation is not supported on this device"
	msgGeolocationFailed  = "Unable to get your location"
)

const inboxSize = 16

// Renderer draws a complete State. Each call replaces whatever was drawn before.
type Renderer interface {
	Render(State)
}

type searchAction struct{ query string }

type locateAction struct{}

// Controller serializes user actions and lookup completions through a single
// event loop. Lookups run on their own goroutines and post results back.
type Controller struct {
	resolver   *domain.Resolver
	forecaster domain.Forecaster
	locator    domain.Geolocator
	renderer   Renderer
	logger     *slog.Logger
	metrics    *observability.Metrics
	geoTimeout time.Duration

	inbox   chan any
	state   atomic.Pointer[State]
	running atomic.Bool

	// Owned by the event loop.
	lastRequest uint64
}

// NewController wires a controller. A zero geoTimeout disables the position
// deadline.
func NewController(
	resolver *domain.Resolver,
	forecaster domain.Forecaster,
	locator domain.Geolocator,
	renderer Renderer,
	logger *slog.Logger,
	metrics *observability.Metrics,
	geoTimeout time.Duration,
) *Controller {
	c := &Controller{
		resolver:   resolver,
		forecaster: forecaster,
		locator:    locator,
		renderer:   renderer,
		logger:     logger,
		metrics:    metrics,
		geoTimeout: geoTimeout,
		inbox:      make(chan any, inboxSize),
	}
	c.state.Store(&State{})
	return c
}

// Search requests weather for a place name. Blank input is rejected without
// a network call.
func (c *Controller) Search(query string) {
	c.inbox <- searchAction{query: query}
}

// UseCurrentLocation requests weather for the device position. It is ignored
// while a previous position request is still settling.
func (c *Controller) UseCurrentLocation() {
	c.inbox <- locateAction{}
}

// State returns a snapshot of the current view state.
func (c *Controller) State() State {
	return *c.state.Load()
}

// CheckReadiness returns nil while the event loop is running.
func (c *Controller) CheckReadiness(_ context.Context) error {
	if !c.running.Load() {
		return errors.New("controller event loop is not running")
	}
	return nil
}

// Run processes actions and completions until the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("controller started")
	c.running.Store(true)
	defer c.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("controller stopping", "reason", ctx.Err())
			return nil
		case msg := <-c.inbox:
			c.handle(ctx, msg)
		}
	}
}

func (c *Controller) handle(ctx context.Context, msg any) {
	switch m := msg.(type) {
	case searchAction:
		c.lastRequest++
		req := c.lastRequest
		query := strings.TrimSpace(m.query)
		if query == "" {
			c.metrics.Lookups.WithLabelValues(string(ActionSearch), "rejected").Inc()
			c.apply(InputRejected{Request: req, Message: msgEmptyInput})
			return
		}
		c.logger.Debug("search started", "request", req, "query", query)
		c.apply(SearchStarted{Request: req})
		go c.search(ctx, req, query)

	case locateAction:
		if c.State().Locating {
			c.logger.Debug("location request already in progress")
			return
		}
		c.lastRequest++
		req := c.lastRequest
		c.logger.Debug("locate started", "request", req)
		c.apply(LocateStarted{Request: req})
		go c.locate(ctx, req)

	case Event:
		if IsStale(c.State(), m) {
			c.metrics.StaleResults.Inc()
			c.logger.Debug("discarding stale result", "event", fmt.Sprintf("%T", m))
			return
		}
		switch e := m.(type) {
		case WeatherLoaded:
			c.metrics.Lookups.WithLabelValues(string(e.Action), "loaded").Inc()
		case LookupFailed:
			c.metrics.Lookups.WithLabelValues(string(e.Action), "error").Inc()
		}
		c.apply(m)
	}
}

// apply runs the transition, publishes the new state and renders when the
// visible content changed.
func (c *Controller) apply(ev Event) {
	prev := c.State()
	next := Transition(prev, ev)
	c.state.Store(&next)

	if prev.Phase != next.Phase || prev.Request != next.Request || prev.Message != next.Message {
		c.renderer.Render(next)
	}
}

func (c *Controller) post(ctx context.Context, ev Event) {
	select {
	case c.inbox <- ev:
	case <-ctx.Done():
	}
}

func (c *Controller) search(ctx context.Context, req uint64, query string) {
	loc, err := c.resolver.ResolveByName(ctx, query)
	if err != nil {
		c.post(ctx, LookupFailed{Request: req, Action: ActionSearch, Message: c.searchMessage(err)})
		return
	}
	c.fetch(ctx, req, ActionSearch, loc)
}

func (c *Controller) locate(ctx context.Context, req uint64) {
	pos, err := c.currentPosition(ctx)
	if err != nil {
		c.logger.Warn("geolocation failed", "request", req, "error", err)
		c.post(ctx, LocateSettled{})
		c.post(ctx, LookupFailed{Request: req, Action: ActionLocate, Message: geolocationMessage(err)})
		return
	}

	loc := c.resolver.ResolveByCoordinates(ctx, pos.Latitude, pos.Longitude)
	c.post(ctx, LocateSettled{})
	c.fetch(ctx, req, ActionLocate, loc)
}

func (c *Controller) fetch(ctx context.Context, req uint64, action Action, loc domain.Location) {
	snap, err := c.forecaster.FetchWeather(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		c.logger.Error("weather fetch failed",
			"request", req,
			"location", loc.DisplayName,
			"error", err,
		)
		c.post(ctx, LookupFailed{Request: req, Action: action, Message: msgFetchFailed})
		return
	}
	c.post(ctx, WeatherLoaded{Request: req, Action: action, Location: loc, Snapshot: snap})
}

// currentPosition asks the locator for a fix, giving up after geoTimeout.
func (c *Controller) currentPosition(ctx context.Context) (domain.Coordinates, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type fix struct {
		pos domain.Coordinates
		err error
	}
	done := make(chan fix, 1)
	go func() {
		pos, err := c.locator.CurrentPosition(ctx)
		done <- fix{pos: pos, err: err}
	}()

	var deadline <-chan time.Time
	if c.geoTimeout > 0 {
		deadline = clock.After(c.geoTimeout)
	}

	select {
	case f := <-done:
		c.metrics.GeolocationRequests.WithLabelValues(geolocationOutcome(f.err)).Inc()
		return f.pos, f.err
	case <-deadline:
		c.metrics.GeolocationRequests.WithLabelValues("timeout").Inc()
		return domain.Coordinates{}, domain.ErrGeolocationTimeout
	case <-ctx.Done():
		return domain.Coordinates{}, ctx.Err()
	}
}

func (c *Controller) searchMessage(err error) string {
	var notFound *domain.LocationNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Sprintf(`No location found for "%s". Please try another search.`, notFound.Name)
	}
	c.logger.Error("location search failed", "error", err)
	return msgSearchFailed
}

func geolocationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrGeolocationPermissionDenied):
		return msgPermissionDenied
	case errors.Is(err, domain.ErrGeolocationUnavailable):
		return msgPositionUnavail
	case errors.Is(err, domain.ErrGeolocationTimeout):
		return msgPositionTimeout
	case errors.Is(err, domain.ErrGeolocationUnsupported):
		return msgGeolocationMissing
	default:
		return msgGeolocationFailed
	}
}

func geolocationOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrGeolocationPermissionDenied):
		return "denied"
	case errors.Is(err, domain.ErrGeolocationUnavailable):
		return "unavailable"
	case errors.Is(err, domain.ErrGeolocationTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrGeolocationUnsupported):
		return "unsupported"
	default:
		return "error"
	}
}
