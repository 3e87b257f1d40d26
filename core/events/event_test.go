package events

import "testing"

type countingEmitter struct {
	seen []string
}

func (c *countingEmitter) Emit(evt Event) {
	c.seen = append(c.seen, evt.EventType())
}

type staticEvent string

func (s staticEvent) EventType() string { return string(s) }

func TestMultiEmitterFansOut(t *testing.T) {
	first := &countingEmitter{}
	second := &countingEmitter{}
	multi := MultiEmitter{first, nil, second}

	multi.Emit(staticEvent("settlement.deposit"))

	if len(first.seen) != 1 || first.seen[0] != "settlement.deposit" {
		t.Fatalf("first emitter missed event: %v", first.seen)
	}
	if len(second.seen) != 1 {
		t.Fatalf("second emitter missed event: %v", second.seen)
	}
}

func TestNoopEmitterDiscards(t *testing.T) {
	NoopEmitter{}.Emit(staticEvent("anything"))
}
