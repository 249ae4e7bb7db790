package api

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazyhaar/yomikata/pkg/lookup"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func mustRegister(reg prometheus.Registerer, cs ...prometheus.Collector) {
	for _, c := range cs {
		err := reg.Register(c)
		are := prometheus.AlreadyRegisteredError{}
		if errors.As(err, &are) {
			continue
		}
		if err != nil {
			panic(err)
		}
	}
}

func newMetrics(reg prometheus.Registerer, svc *lookup.Service) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "yomikata_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "yomikata_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
	mustRegister(reg, m.requests, m.duration,
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "yomikata_lookup_cache_hits_total",
			Help: "lookups answered from the cache",
		}, func() float64 { return float64(svc.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "yomikata_lookup_cache_misses_total",
			Help: "lookups computed",
		}, func() float64 { return float64(svc.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "yomikata_rules",
			Help: "rules in the current deinflection table",
		}, func() float64 { return float64(svc.Table().RuleCount()) }),
	)
	return m
}

func (m *metrics) instrument(route string, h http.Handler) http.Handler {
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(m.duration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), h))
}
