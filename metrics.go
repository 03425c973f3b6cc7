package ladder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("crosswarped.ladder")

var (
	// pathQueries counts Path calls by result: found, not_found, not_ready, invalid.
	pathQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ladder_path_queries_total",
		Help: "Total ladder path queries by result",
	}, []string{"result"})

	pathDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ladder_path_duration_seconds",
		Help:    "Ladder path query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	})

	pathVisited = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ladder_path_visited_words",
		Help:    "Number of words discovered per path query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	randomPairAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ladder_random_pair_attempts",
		Help:    "Sampled pairs tried before a connected common word pair was found",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
	})

	lexiconWords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ladder_lexicon_words",
		Help: "Number of words in the loaded lexicon",
	})
)
