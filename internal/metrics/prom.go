package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exposes analysis timings, dataset size and HTTP traffic.
type Collector struct {
	analysis *prometheus.HistogramVec
	records  prometheus.Gauge
	vehicles prometheus.Gauge
	requests *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewCollector registers the fleet metrics on the default Prometheus registry.
func NewCollector() (*Collector, error) {
	return NewCollectorWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewCollectorWithRegistry registers metrics on reg and serves them from
// gatherer. Collectors already present on reg are reused.
func NewCollectorWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	analysis := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleet_analysis_duration_seconds",
		Help:    "Time spent computing one analysis view",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"analysis"})
	records := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_dataset_records",
		Help: "Number of monthly records in the loaded dataset",
	})
	vehicles := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleet_dataset_vehicles",
		Help: "Number of distinct vehicles in the loaded dataset",
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleet_http_requests_total",
		Help: "HTTP requests served, by route and status code",
	}, []string{"route", "code"})

	var err error
	if analysis, err = register(reg, analysis); err != nil {
		return nil, err
	}
	if records, err = register(reg, records); err != nil {
		return nil, err
	}
	if vehicles, err = register(reg, vehicles); err != nil {
		return nil, err
	}
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	return &Collector{
		analysis: analysis,
		records:  records,
		vehicles: vehicles,
		requests: requests,
		gatherer: gatherer,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveAnalysis records how long one analysis took.
func (c *Collector) ObserveAnalysis(name string, d time.Duration) {
	if c == nil {
		return
	}
	c.analysis.WithLabelValues(name).Observe(d.Seconds())
}

// SetDataset publishes the size of the loaded dataset.
func (c *Collector) SetDataset(records, vehicles int) {
	if c == nil {
		return
	}
	c.records.Set(float64(records))
	c.vehicles.Set(float64(vehicles))
}

// ObserveRequest counts one served HTTP request.
func (c *Collector) ObserveRequest(route string, status int) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
