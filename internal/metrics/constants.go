package metrics

// Metric Names
const (
	// HTTP metrics
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"

	// Business metrics
	MetricNameAccountsCreated  = "accounts_created_total"
	MetricNameItemsCollected   = "items_collected_total"
	MetricNameCollectsRejected = "collects_rejected_total"
	MetricNameListingsCreated  = "listings_created_total"
	MetricNameListingsSold     = "listings_sold_total"
	MetricNameListingsClosed   = "listings_closed_total"
	MetricNameMoneyTraded      = "money_traded_total"
	MetricNameFriendRequests   = "friend_requests_total"
)

// Help Texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextAccountsCreated  = "Total number of accounts created"
	HelpTextItemsCollected   = "Total number of items collected, by rarity"
	HelpTextCollectsRejected = "Total number of collects rejected by the cooldown gate"
	HelpTextListingsCreated  = "Total number of marketplace listings created"
	HelpTextListingsSold     = "Total number of marketplace listings sold"
	HelpTextListingsClosed   = "Total number of listings closed without a sale, by reason"
	HelpTextMoneyTraded      = "Total money moved through completed sales"
	HelpTextFriendRequests   = "Total number of friend requests, by outcome"
)

// Metric Label Names
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelRarity  = "rarity"
	LabelReason  = "reason"
	LabelOutcome = "outcome"
)

// Histogram Buckets

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
