// Package metrics exports SM-2 review activity and deck health to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/sky-flux/sm2"
)

const namespace = "sm2"

// Recorder exports review outcomes and deck statistics.
// A nil *Recorder ignores all observations.
type Recorder struct {
	reviews   *prometheus.CounterVec
	intervals prometheus.Histogram
	ease      prometheus.Histogram
	items     *prometheus.GaugeVec
	due       prometheus.Gauge
}

// NewRecorder creates a Recorder and registers its collectors with reg.
// A nil reg registers with prometheus.DefaultRegisterer. Collectors that are
// already registered are reused.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		reviews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_total",
			Help:      "Reviews scheduled, by answer quality and outcome.",
		}, []string{"quality", "outcome"}),
		intervals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "review_interval_days",
			Help:      "Interval in days assigned by each review.",
			Buckets:   []float64{1, 2, 3, 6, 10, 21, 45, 90, 180, 365, 730},
		}),
		ease: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "review_ease_factor",
			Help:      "Ease factor after each review.",
			Buckets:   prometheus.LinearBuckets(sm2.MinimumEaseFactor, 0.2, 10),
		}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_items",
			Help:      "Items in the deck by learning stage.",
		}, []string{"stage"}),
		due: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_due_items",
			Help:      "Items selectable for review at the last summary.",
		}),
	}

	var err error
	if r.reviews, err = register(reg, r.reviews); err != nil {
		return nil, err
	}
	if r.intervals, err = register(reg, r.intervals); err != nil {
		return nil, err
	}
	if r.ease, err = register(reg, r.ease); err != nil {
		return nil, err
	}
	if r.items, err = register(reg, r.items); err != nil {
		return nil, err
	}
	if r.due, err = register(reg, r.due); err != nil {
		return nil, err
	}
	return r, nil
}

// register adds c to reg, returning the existing collector when an equal
// one is already registered.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register sm2 metric: %w", err)
	}
	return c, nil
}

// ObserveReview records one scheduled review. It satisfies simulator.Observer.
func (r *Recorder) ObserveReview(q sm2.Quality, next sm2.UpdatedReviewState) {
	if r == nil {
		return
	}
	outcome := "lapse"
	if q.Passed() {
		outcome = "recall"
	}
	r.reviews.WithLabelValues(q.String(), outcome).Inc()
	r.intervals.Observe(float64(next.IntervalDays))
	r.ease.Observe(next.EaseFactor)
}

// ObserveStats sets the deck gauges from a summary.
func (r *Recorder) ObserveStats(st sm2.Stats) {
	if r == nil {
		return
	}
	r.items.WithLabelValues(sm2.Unreviewed.String()).Set(float64(st.Unreviewed))
	r.items.WithLabelValues(sm2.Young.String()).Set(float64(st.Young))
	r.items.WithLabelValues(sm2.Mature.String()).Set(float64(st.Mature))
	r.items.WithLabelValues(sm2.Mastered.String()).Set(float64(st.Mastered))
	r.due.Set(float64(st.Due))
}

// WriteText gathers g and writes every metric family in the Prometheus
// text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
