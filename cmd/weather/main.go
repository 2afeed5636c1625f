package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpadapter "github.com/couchcryptid/weather-lookup/internal/adapter/http"
	"github.com/couchcryptid/weather-lookup/internal/adapter/geolocation"
	"github.com/couchcryptid/weather-lookup/internal/adapter/openmeteo"
	"github.com/couchcryptid/weather-lookup/internal/config"
	"github.com/couchcryptid/weather-lookup/internal/domain"
	"github.com/couchcryptid/weather-lookup/internal/observability"
	"github.com/couchcryptid/weather-lookup/internal/view"
)

const (
	cmdHere = "/here"
	cmdQuit = "/quit"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)
	city := fs.String("city", "", "look up the weather for a place name and exit")
	here := fs.Bool("here", false, "look up the weather for the current location and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *city != "" && *here {
		fmt.Fprintln(stderr, "-city and -here cannot be combined")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	geocoder := openmeteo.NewGeocodingClient(cfg.GeocodingURL, cfg.GeocodingLanguage, cfg.HTTPTimeout, metrics, logger)
	forecaster := openmeteo.NewForecastClient(cfg.ForecastURL, cfg.HTTPTimeout, metrics, logger)
	resolver := domain.NewResolver(geocoder, logger)

	renderer := newSettleNotifier(view.NewTextRenderer(stdout))
	ctrl := view.NewController(resolver, forecaster, newLocator(cfg, logger), renderer, logger, metrics, cfg.GeolocationTimeout)

	ctx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := ctrl.Run(ctx); err != nil {
			logger.Error("controller error", "error", err)
		}
	}()
	defer func() {
		cancel()
		<-loopDone
	}()

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, ctrl, reg, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer stop()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	switch {
	case *city != "":
		ctrl.Search(*city)
		return exitCode(renderer.wait(ctx))
	case *here:
		ctrl.UseCurrentLocation()
		return exitCode(renderer.wait(ctx))
	default:
		return repl(ctx, ctrl, renderer, stdin, stdout)
	}
}

func newLocator(cfg *config.Config, logger *slog.Logger) domain.Geolocator {
	switch cfg.GeolocationProvider {
	case config.ProviderStatic:
		return geolocation.NewStatic(cfg.DeviceLatitude, cfg.DeviceLongitude)
	case config.ProviderIP:
		return geolocation.NewIPLocator(cfg.GeolocationURL, cfg.HTTPTimeout, logger)
	default:
		return geolocation.Disabled{}
	}
}

// repl reads one command per line until /quit, EOF or cancellation.
func repl(ctx context.Context, ctrl *view.Controller, renderer *settleNotifier, stdin io.Reader, stdout io.Writer) int {
	fmt.Fprintln(stdout, "Enter a city name, /here for your current location, or /quit to exit.")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(stdout, "> ")
		var line string
		select {
		case <-ctx.Done():
			return 0
		case l, ok := <-lines:
			if !ok {
				return 0
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case cmdQuit:
			return 0
		case cmdHere:
			ctrl.UseCurrentLocation()
		default:
			ctrl.Search(line)
		}
		if _, ok := renderer.wait(ctx); !ok {
			return 0
		}
	}
}

func exitCode(s view.State, ok bool) int {
	if !ok || s.Phase == view.PhaseError {
		return 1
	}
	return 0
}

// settleNotifier forwards renders and reports each state that ends a lookup.
type settleNotifier struct {
	next    view.Renderer
	settled chan view.State
}

func newSettleNotifier(next view.Renderer) *settleNotifier {
	return &settleNotifier{next: next, settled: make(chan view.State, 1)}
}

func (n *settleNotifier) Render(s view.State) {
	n.next.Render(s)
	if s.Phase != view.PhaseLoaded && s.Phase != view.PhaseError {
		return
	}
	select {
	case n.settled <- s:
	default:
	}
}

// wait blocks until the current lookup settles. ok is false on cancellation.
func (n *settleNotifier) wait(ctx context.Context) (view.State, bool) {
	select {
	case s := <-n.settled:
		return s, true
	case <-ctx.Done():
		return view.State{}, false
	}
}
