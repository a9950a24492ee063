package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RLRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_requests_total",
			Help: "Total requests seen by the rate limiter",
		},
		[]string{"endpoint"},
	)
	RLBlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Total requests blocked by the rate limiter",
		},
		[]string{"endpoint"},
	)
	CoinsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coins_granted_total",
			Help: "Coins credited to users, by reward type",
		},
		[]string{"type"},
	)
	CoinsSpent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coins_spent_total",
			Help: "Coins debited from users",
		},
	)
	RewardRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_rejections_total",
			Help: "Reward operations rejected by validation, by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(RLRequests)
	prometheus.MustRegister(RLBlocked)
	prometheus.MustRegister(CoinsGranted)
	prometheus.MustRegister(CoinsSpent)
	prometheus.MustRegister(RewardRejections)
}
