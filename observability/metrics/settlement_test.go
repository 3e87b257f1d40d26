package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"cerachain/native/settlement"
)

func TestSettlementRegistryIsSingleton(t *testing.T) {
	if Settlement() != Settlement() {
		t.Fatal("expected a single shared registry")
	}
}

func TestObserveEventTracksPausedGauge(t *testing.T) {
	m := Settlement()

	m.ObserveEvent(settlement.EventTypePaused)
	if got := testutil.ToFloat64(m.paused); got != 1 {
		t.Fatalf("expected paused gauge 1, got %v", got)
	}
	m.ObserveEvent(settlement.EventTypeUnpaused)
	if got := testutil.ToFloat64(m.paused); got != 0 {
		t.Fatalf("expected paused gauge 0, got %v", got)
	}
}

func TestObserverCountsEvents(t *testing.T) {
	m := Settlement()
	observer := NewSettlementObserver()

	before := testutil.ToFloat64(m.eventsTotal.WithLabelValues(settlement.EventTypeDeposit))
	observer.Emit(eventStub(settlement.EventTypeDeposit))
	after := testutil.ToFloat64(m.eventsTotal.WithLabelValues(settlement.EventTypeDeposit))
	if after != before+1 {
		t.Fatalf("expected counter to advance by 1, got %v -> %v", before, after)
	}
}

type eventStub string

func (s eventStub) EventType() string { return string(s) }
