// Package metrics exports estimator telemetry to Prometheus.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/northridge/backend/internal/model"
)

// Observer records business events from the service layer.
type Observer interface {
	RecordEstimate(pt model.ProjectType, total int64)
	RecordOutsideArea(zip string)
	RecordLead(status string)
}

// Lead statuses reported to RecordLead.
const (
	LeadForwarded = "forwarded"
	LeadFailed    = "failed"
	LeadRejected  = "rejected"
)

const defaultNamespace = "estimator"

// PrometheusObserver is an Observer backed by Prometheus collectors.
type PrometheusObserver struct {
	estimates    *prometheus.CounterVec
	estimateSize *prometheus.HistogramVec
	outsideArea  prometheus.Counter
	leads        *prometheus.CounterVec
}

// NewPrometheusObserver creates the estimator collectors and registers them
// with reg (prometheus.DefaultRegisterer when nil). Collectors that are
// already registered are reused.
func NewPrometheusObserver(namespace string, reg prometheus.Registerer) (*PrometheusObserver, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Estimates computed, by project type.",
		}, []string{"project_type"}),
		estimateSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_dollars",
			Help:      "Distribution of estimate totals in dollars.",
			Buckets:   prometheus.ExponentialBuckets(1000, 4, 8),
		}, []string{"project_type"}),
		outsideArea: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outside_area_total",
			Help:      "Zip codes submitted that fall outside the service area.",
		}),
		leads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leads_total",
			Help:      "Lead submissions, by outcome.",
		}, []string{"status"}),
	}

	var err error
	if o.estimates, err = register(reg, o.estimates); err != nil {
		return nil, err
	}
	if o.estimateSize, err = register(reg, o.estimateSize); err != nil {
		return nil, err
	}
	if o.outsideArea, err = register(reg, o.outsideArea); err != nil {
		return nil, err
	}
	if o.leads, err = register(reg, o.leads); err != nil {
		return nil, err
	}
	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register estimator metric: %w", err)
	}
	return c, nil
}

// RecordEstimate counts a computed estimate and observes its total.
func (o *PrometheusObserver) RecordEstimate(pt model.ProjectType, total int64) {
	if o == nil {
		return
	}
	o.estimates.WithLabelValues(string(pt)).Inc()
	o.estimateSize.WithLabelValues(string(pt)).Observe(float64(total))
}

// RecordOutsideArea counts a zip with no market tier. The zip itself is not
// used as a label.
func (o *PrometheusObserver) RecordOutsideArea(string) {
	if o == nil {
		return
	}
	o.outsideArea.Inc()
}

// RecordLead counts a lead submission outcome.
func (o *PrometheusObserver) RecordLead(status string) {
	if o == nil {
		return
	}
	o.leads.WithLabelValues(status).Inc()
}

// Nop is an Observer that discards everything.
type Nop struct{}

func (Nop) RecordEstimate(model.ProjectType, int64) {}

func (Nop) RecordOutsideArea(string) {}

func (Nop) RecordLead(string) {}
