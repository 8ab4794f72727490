// Package metrics собирает счётчики клиента: запросы к backend, работу контроллера карты
// и сообщения моста. Реестр отдельный, чтобы тесты могли создавать независимые экземпляры.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "heritage_explorer"

type Metrics struct {
	registry *prometheus.Registry

	APIRequests *prometheus.CounterVec
	APIDuration *prometheus.HistogramVec

	MapFetches       *prometheus.CounterVec
	MapFetchDropped  prometheus.Counter
	MapStaleResponse prometheus.Counter

	BridgeMessages *prometheus.CounterVec
	BridgeClients  prometheus.Gauge

	FavoriteReverts prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Requests sent to the heritage backend",
		}, []string{"endpoint", "outcome"}),
		APIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Latency of backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		MapFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_fetches_total",
			Help:      "Map data fetches by kind and outcome",
		}, []string{"kind", "outcome"}),
		MapFetchDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_fetches_dropped_total",
			Help:      "Detail fetches dropped because one was already in flight",
		}),
		MapStaleResponse: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_stale_responses_total",
			Help:      "Responses discarded because a newer generation superseded them",
		}),
		BridgeMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bridge_messages_total",
			Help:      "Bridge messages by direction, kind and outcome",
		}, []string{"direction", "kind", "outcome"}),
		BridgeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bridge_subscribers",
			Help:      "Connected map surfaces",
		}),
		FavoriteReverts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_reverts_total",
			Help:      "Optimistic favorite toggles reverted after a backend failure",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.APIRequests,
		m.APIDuration,
		m.MapFetches,
		m.MapFetchDropped,
		m.MapStaleResponse,
		m.BridgeMessages,
		m.BridgeClients,
		m.FavoriteReverts,
	)

	return m
}

// Registry возвращает реестр для promhttp
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
