package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cerachain/core/types"
)

type stubEvent struct {
	evt *types.Event
}

func (s stubEvent) EventType() string {
	if s.evt == nil {
		return ""
	}
	return s.evt.Type
}

func (s stubEvent) Event() *types.Event { return s.evt }

func newTestLog(t *testing.T) *Log {
	t.Helper()
	log, err := NewLog(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	log.SetNowFunc(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	})
	return log
}

func TestLogAppendAssignsSequences(t *testing.T) {
	log := newTestLog(t)

	require.NoError(t, log.Append(&types.Event{Type: "settlement.deposit", Attributes: map[string]string{"gross": "1000"}}))
	require.NoError(t, log.Append(&types.Event{Type: "settlement.requested", Attributes: map[string]string{"amount": "400"}}))

	records, err := log.Records(0, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, uint64(1), records[0].Sequence)
	require.Equal(t, uint64(2), records[1].Sequence)
	require.Equal(t, "settlement.deposit", records[0].Type)
	require.Equal(t, "1000", records[0].Attributes["gross"])
	require.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), records[0].RecordedAt)
}

func TestLogRecordsCursorAndLimit(t *testing.T) {
	log := newTestLog(t)
	for _, eventType := range []string{"a", "b", "c", "d"} {
		require.NoError(t, log.Append(&types.Event{Type: eventType}))
	}

	records, err := log.Records(3, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "c", records[0].Type)

	records, err = log.Records(0, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "a", records[0].Type)
	require.Equal(t, "b", records[1].Type)
}

func TestLogEmitPersistsPayloads(t *testing.T) {
	log := newTestLog(t)

	log.Emit(stubEvent{evt: &types.Event{
		Type:       "settlement.executed",
		Attributes: map[string]string{"amount": "20500"},
	}})

	records, err := log.Records(0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "settlement.executed", records[0].Type)
	require.Equal(t, "20500", records[0].Attributes["amount"])
}

func TestLogAppendRejectsNilEvent(t *testing.T) {
	log := newTestLog(t)
	require.Error(t, log.Append(nil))
}

func TestLogSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")
	log, err := NewLog(path)
	require.NoError(t, err)
	require.NoError(t, log.Append(&types.Event{Type: "settlement.paused"}))
	require.NoError(t, log.Close())

	reopened, err := NewLog(path)
	require.NoError(t, err)
	defer reopened.Close()
	records, err := reopened.Records(0, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "settlement.paused", records[0].Type)
}
