// Package metrics exposes the lifecycle of a homebrew Application to Prometheus. A Collector is fed through the
// Application's hook, so the driver itself stays free of instrumentation.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/effxhq/go-homebrew"
)

const namespace = "homebrew"

// Collector counts lifecycle transitions.
type Collector struct {
	transitions *prometheus.CounterVec
	frames      prometheus.Counter
	failures    prometheus.Counter
	state       prometheus.Gauge
}

// New creates a Collector and registers it with registerer.
func New(registerer prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_transitions_total",
			Help:      "Lifecycle transitions by phase.",
		}, []string{"phase"}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "console_frames_total",
			Help:      "Console redraws performed by the run loop.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lifecycle_failures_total",
			Help:      "Lifecycle transitions caused by an error.",
		}),
		state: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lifecycle_state",
			Help:      "Current lifecycle state (1 uninitialized, 2 running, 3 draining, 4 terminated).",
		}),
	}

	for _, collector := range []prometheus.Collector{c.transitions, c.frames, c.failures, c.state} {
		if err := registerer.Register(collector); err != nil {
			return nil, err
		}
	}
	c.state.Set(float64(homebrew.StateUninitialized))
	return c, nil
}

// Hook returns the homebrew.Hook that feeds this Collector.
func (c *Collector) Hook() homebrew.Hook {
	return c.Observe
}

func (c *Collector) Observe(phase string, err error) {
	if err != nil {
		c.failures.Inc()
	}

	if phase == "frame" {
		c.frames.Inc()
		return
	}
	c.transitions.WithLabelValues(phase).Inc()

	switch phase {
	case "running":
		c.state.Set(float64(homebrew.StateRunning))
	case "draining":
		c.state.Set(float64(homebrew.StateDraining))
	case "terminated":
		c.state.Set(float64(homebrew.StateTerminated))
	}
}

// Serve exposes gatherer on address under /metrics until ctx is cancelled.
func Serve(ctx context.Context, address string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownContext, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownContext); err != nil {
			logger.Warn("stopping metrics server", "error", err)
		}
	}()

	logger.Info("serving metrics", "address", address)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
