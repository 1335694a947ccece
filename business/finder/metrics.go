package finder

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FinderSessionsStartedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "finder_sessions_started_total",
			Help: "Count of finder sessions started or restarted.",
		},
	)

	FinderSessionsAbandonedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "finder_sessions_abandoned_total",
			Help: "Count of finder sessions dropped by the player.",
		},
	)

	FinderChoicesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_choices_total",
			Help: "Count of finder decisions by round and pairing strategy.",
		},
		[]string{"round", "strategy"},
	)

	FinderSessionsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finder_sessions_completed_total",
			Help: "Count of finder sessions that reached ranking, by end reason.",
		},
		[]string{"end_reason"},
	)
)

func init() {
	prometheus.MustRegister(
		FinderSessionsStartedTotal,
		FinderSessionsAbandonedTotal,
		FinderChoicesTotal,
		FinderSessionsCompletedTotal,
	)
}
