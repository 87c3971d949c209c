// Package metrics exports flip proposal counters in the Prometheus text
// format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ising/pkg/ising"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts proposals per outcome. It satisfies the lattice
// FlipObserver contract.
type Collector struct {
	registry  *prometheus.Registry
	proposals *prometheus.CounterVec
	ticks     prometheus.Counter
}

// NewCollector builds a Collector backed by its own registry, labelled with
// the sim name.
func NewCollector(sim string) *Collector {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"sim": sim}
	c := &Collector{
		registry: reg,
		proposals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ising",
			Name:        "flip_proposals_total",
			Help:        "Single-site flip proposals by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ising",
			Name:        "ticks_total",
			Help:        "Host ticks advanced.",
			ConstLabels: labels,
		}),
	}
	reg.MustRegister(c.proposals, c.ticks)
	return c
}

// ObserveStep records one proposal.
func (c *Collector) ObserveStep(_ ising.Site, flipped bool) {
	if flipped {
		c.proposals.WithLabelValues("accepted").Inc()
		return
	}
	c.proposals.WithLabelValues("rejected").Inc()
}

// ObserveTick records one host tick.
func (c *Collector) ObserveTick() { c.ticks.Inc() }

// Registry exposes the underlying registry for tests and custom handlers.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
