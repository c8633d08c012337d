package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutations, coupon outcomes and snapshot I/O.
type CartMetrics struct {
	mutations        *prometheus.CounterVec
	couponOutcomes   *prometheus.CounterVec
	snapshotDuration *prometheus.HistogramVec
	snapshotFailures *prometheus.CounterVec
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"operation"})
	couponOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_coupon_apply_total",
		Help: "Coupon apply attempts, by outcome.",
	}, []string{"outcome"})
	snapshotDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_snapshot_duration_seconds",
		Help:    "Duration of snapshot reads and writes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	snapshotFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_snapshot_failures_total",
		Help: "Snapshot reads or writes that failed, by op.",
	}, []string{"op"})
	reg.MustRegister(mutations, couponOutcomes, snapshotDuration, snapshotFailures)
	return &CartMetrics{
		mutations:        mutations,
		couponOutcomes:   couponOutcomes,
		snapshotDuration: snapshotDuration,
		snapshotFailures: snapshotFailures,
	}
}

// IncMutation counts one applied cart operation.
func (c *CartMetrics) IncMutation(operation string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCouponOutcome counts one coupon apply attempt ("applied" or a rejection reason).
func (c *CartMetrics) IncCouponOutcome(outcome string) {
	if c == nil || c.couponOutcomes == nil {
		return
	}
	c.couponOutcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveSnapshot records the duration of a snapshot read ("load") or write ("save").
func (c *CartMetrics) ObserveSnapshot(op string, duration time.Duration) {
	if c == nil || c.snapshotDuration == nil {
		return
	}
	c.snapshotDuration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

// IncSnapshotFailure counts a failed snapshot read or write.
func (c *CartMetrics) IncSnapshotFailure(op string) {
	if c == nil || c.snapshotFailures == nil {
		return
	}
	c.snapshotFailures.WithLabelValues(normalizeLabel(op)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
