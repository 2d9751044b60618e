// Package metrics records send outcomes with Prometheus.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "teleping"
	Subsystem = "sender"
)

// Recorder holds the sender's collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	SendsTotal      *prometheus.CounterVec
	SendDuration    *prometheus.HistogramVec
	ThrottleWait    prometheus.Histogram
	BreakerRejected prometheus.Counter
	BreakerOpen     prometheus.Gauge
}

// New registers the collectors on reg. Clients sharing a registerer share
// the collectors already registered there.
func New(reg prometheus.Registerer) (*Recorder, error) {
	var (
		r   Recorder
		err error
	)

	r.SendsTotal, err = register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "sends_total",
			Help:      "Total number of send attempts by outcome",
		},
		[]string{"result"},
	))
	if err != nil {
		return nil, err
	}

	r.SendDuration, err = register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "send_duration_seconds",
			Help:      "Send duration in seconds, throttle wait included",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	))
	if err != nil {
		return nil, err
	}

	r.ThrottleWait, err = register(reg, prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the rate limit slot",
			Buckets:   []float64{0, .05, .1, .25, .5, .75, 1, 2},
		},
	))
	if err != nil {
		return nil, err
	}

	r.BreakerRejected, err = register(reg, prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "breaker_rejected_total",
			Help:      "Sends refused by the open circuit breaker",
		},
	))
	if err != nil {
		return nil, err
	}

	r.BreakerOpen, err = register(reg, prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: Subsystem,
			Name:      "breaker_open",
			Help:      "1 while the circuit breaker is open, 0 otherwise",
		},
	))
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// register adds c to reg, or returns the equivalent collector that is
// already there.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, err
}

// ObserveSend records one finished send.
func (r *Recorder) ObserveSend(result string, d time.Duration) {
	if r == nil {
		return
	}
	r.SendsTotal.WithLabelValues(result).Inc()
	r.SendDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveThrottle records time spent in the throttle.
func (r *Recorder) ObserveThrottle(d time.Duration) {
	if r == nil {
		return
	}
	r.ThrottleWait.Observe(d.Seconds())
}

// IncBreakerRejected counts a send refused by the breaker.
func (r *Recorder) IncBreakerRejected() {
	if r == nil {
		return
	}
	r.BreakerRejected.Inc()
}

// SetBreakerOpen records the breaker state.
func (r *Recorder) SetBreakerOpen(open bool) {
	if r == nil {
		return
	}
	if open {
		r.BreakerOpen.Set(1)
		return
	}
	r.BreakerOpen.Set(0)
}
