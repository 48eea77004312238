package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	MetricNameWagersPlaced    = "wagers_placed_total"
	MetricNamePointsStaked    = "points_staked_total"
	MetricNameRewardsClaimed  = "daily_rewards_claimed_total"
	MetricNameMarketsClosed   = "markets_closed_total"
	MetricNameMarketsResolved = "markets_resolved_total"
	MetricNamePointsPaidOut   = "settlement_points_paid_total"
	MetricNameOracleFailures  = "oracle_failures_total"
)

// Metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextWagersPlaced    = "Total number of wagers placed"
	HelpTextPointsStaked    = "Total points staked across all wagers"
	HelpTextRewardsClaimed  = "Total number of daily rewards claimed"
	HelpTextMarketsClosed   = "Total number of markets moved to CLOSED"
	HelpTextMarketsResolved = "Total number of markets resolved"
	HelpTextPointsPaidOut   = "Total points paid out by settlement"
	HelpTextOracleFailures  = "Total number of oracle call failures by kind"
)

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelKind   = "kind"
)

// HTTPLatencyBuckets covers fast local handlers through slow oracle calls
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
