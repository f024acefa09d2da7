package octray

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every octray collector; the CLI serves it over HTTP.
var Registry = prometheus.NewRegistry()

var (
	raysTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "octray",
		Name:      "rays_total",
		Help:      "Rays cast against the scene tree, by query kind.",
	}, []string{"query"})
	hitsTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "octray",
		Name:      "hits_total",
		Help:      "Rays that hit at least one leaf, by query kind.",
	}, []string{"query"})
	occlusionTotal = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "octray",
		Name:      "occlusion_tests_total",
		Help:      "Shadow rays cast, by result.",
	}, []string{"result"})
	descentsTotal = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Namespace: "octray",
		Name:      "descents_total",
		Help:      "Candidate boxes the streaming iterator descended into.",
	})
	hitDistance = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "octray",
		Name:      "hit_distance",
		Help:      "Entry distance of the first hit along a ray.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func instrumentRay(query string, hit bool, dist Real) {
	raysTotal.WithLabelValues(query).Inc()
	if !hit {
		return
	}
	hitsTotal.WithLabelValues(query).Inc()
	hitDistance.Observe(dist)
}

func instrumentOcclusion(blocked bool) {
	result := "clear"
	if blocked {
		result = "blocked"
	}
	occlusionTotal.WithLabelValues(result).Inc()
}

func instrumentDescents(n int) {
	descentsTotal.Add(float64(n))
}
