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
	AccountsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountsCreated,
			Help: HelpTextAccountsCreated,
		},
	)

	ItemsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCollected,
			Help: HelpTextItemsCollected,
		},
		[]string{LabelRarity},
	)

	CollectsRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCollectsRejected,
			Help: HelpTextCollectsRejected,
		},
	)

	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
	)

	ListingsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
	)

	// ListingsClosed counts cancellations and expiries via the reason label.
	ListingsClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameListingsClosed,
			Help: HelpTextListingsClosed,
		},
		[]string{LabelReason},
	)

	MoneyTraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyTraded,
			Help: HelpTextMoneyTraded,
		},
	)

	FriendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFriendRequests,
			Help: HelpTextFriendRequests,
		},
		[]string{LabelOutcome},
	)
)
