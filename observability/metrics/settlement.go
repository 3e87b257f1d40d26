package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"cerachain/core/events"
	"cerachain/native/settlement"
)

// SettlementMetrics tracks the settlement event stream for operators.
type SettlementMetrics struct {
	eventsTotal *prometheus.CounterVec
	paused      prometheus.Gauge
}

var (
	settlementOnce     sync.Once
	settlementRegistry *SettlementMetrics
)

// Settlement returns the process-wide settlement metrics registry.
func Settlement() *SettlementMetrics {
	settlementOnce.Do(func() {
		settlementRegistry = &SettlementMetrics{
			eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "settlement_events_total",
				Help: "Count of settlement engine events by type.",
			}, []string{"event"}),
			paused: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "settlement_paused",
				Help: "Whether the settlement module kill switch is engaged.",
			}),
		}
		prometheus.MustRegister(
			settlementRegistry.eventsTotal,
			settlementRegistry.paused,
		)
	})
	return settlementRegistry
}

// ObserveEvent records one emitted event by type and keeps the paused gauge in
// step with the pause/unpause events.
func (m *SettlementMetrics) ObserveEvent(eventType string) {
	if m == nil || eventType == "" {
		return
	}
	m.eventsTotal.WithLabelValues(eventType).Inc()
	switch eventType {
	case settlement.EventTypePaused:
		m.paused.Set(1)
	case settlement.EventTypeUnpaused:
		m.paused.Set(0)
	}
}

// SettlementObserver adapts the metrics registry to the events.Emitter
// interface so it can be fanned in next to the audit journal.
type SettlementObserver struct {
	metrics *SettlementMetrics
}

// NewSettlementObserver returns an emitter feeding the shared registry.
func NewSettlementObserver() *SettlementObserver {
	return &SettlementObserver{metrics: Settlement()}
}

// Emit implements events.Emitter.
func (o *SettlementObserver) Emit(evt events.Event) {
	if o == nil || evt == nil {
		return
	}
	o.metrics.ObserveEvent(evt.EventType())
}
