package shardtail

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	records     prometheus.Counter
	events      prometheus.Counter
	emptyPolls  prometheus.Counter
	checkpoints prometheus.Counter
	renewals    prometheus.Counter
}

// newMetrics builds the worker's counters, labeled with its stream and
// shard. A nil registerer leaves them unregistered, which is what library
// users that do not scrape get.
func newMetrics(reg prometheus.Registerer, stream, shardID string) *metrics {
	labels := prometheus.Labels{"stream": stream, "shard": shardID}
	f := promauto.With(reg)
	return &metrics{
		records: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "shardtail",
			Name:        "records_total",
			Help:        "Records fetched from the shard.",
			ConstLabels: labels,
		}),
		events: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "shardtail",
			Name:        "events_total",
			Help:        "Events decoded and emitted downstream.",
			ConstLabels: labels,
		}),
		emptyPolls: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "shardtail",
			Name:        "empty_polls_total",
			Help:        "Polls that returned no records.",
			ConstLabels: labels,
		}),
		checkpoints: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "shardtail",
			Name:        "checkpoints_total",
			Help:        "Checkpoint writes.",
			ConstLabels: labels,
		}),
		renewals: f.NewCounter(prometheus.CounterOpts{
			Namespace:   "shardtail",
			Name:        "iterator_renewals_total",
			Help:        "Iterator renewals after expiry.",
			ConstLabels: labels,
		}),
	}
}
