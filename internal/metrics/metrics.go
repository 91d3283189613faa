package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	Registry *prometheus.Registry

	BookingsCreated   prometheus.Counter
	BookingsCancelled *prometheus.CounterVec
	SearchCache       *prometheus.CounterVec
	requests          *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		}),
		BookingsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings deleted, by who cancelled them.",
		}, []string{"by"}),
		SearchCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "search_cache_lookups_total",
			Help:      "Search cache lookups by result.",
		}, []string{"result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rental",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.Registry.MustRegister(
		m.BookingsCreated,
		m.BookingsCancelled,
		m.SearchCache,
		m.requests,
		prometheus.NewGoCollector(),
	)
	return m
}

// Middleware records request latency labelled by the matched route pattern.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
