package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	WagersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWagersPlaced,
			Help: HelpTextWagersPlaced,
		},
	)

	PointsStaked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsStaked,
			Help: HelpTextPointsStaked,
		},
	)

	RewardsClaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRewardsClaimed,
			Help: HelpTextRewardsClaimed,
		},
	)

	MarketsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMarketsClosed,
			Help: HelpTextMarketsClosed,
		},
	)

	MarketsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMarketsResolved,
			Help: HelpTextMarketsResolved,
		},
	)

	PointsPaidOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsPaidOut,
			Help: HelpTextPointsPaidOut,
		},
	)

	OracleFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameOracleFailures,
			Help: HelpTextOracleFailures,
		},
		[]string{LabelKind},
	)
)
