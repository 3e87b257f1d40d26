package audit

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	bolt "go.etcd.io/bbolt"

	"cerachain/core/events"
	"cerachain/core/types"
)

var bucketEvents = []byte("events")

// Record is a single journal entry. The sequence is assigned on append and is
// strictly increasing, giving reconciliation jobs a stable cursor.
type Record struct {
	Sequence   uint64            `json:"sequence"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes,omitempty"`
	RecordedAt time.Time         `json:"recordedAt"`
}

// eventPayload is implemented by emitted events that carry a full payload in
// addition to their type.
type eventPayload interface {
	Event() *types.Event
}

// Log persists the settlement event stream to an append-only bbolt journal.
// It implements events.Emitter so it can be attached directly to the engine;
// persistence failures are logged and never interrupt a state transition.
type Log struct {
	db     *bolt.DB
	logger *slog.Logger
	nowFn  func() time.Time
}

// NewLog opens (or creates) the journal at the supplied path.
func NewLog(path string) (*Log, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEvents)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Log{
		db:     db,
		logger: slog.Default(),
		nowFn:  time.Now,
	}, nil
}

// SetLogger overrides the logger used for dropped-write warnings. Passing nil
// restores the process default.
func (l *Log) SetLogger(logger *slog.Logger) {
	if logger == nil {
		l.logger = slog.Default()
		return
	}
	l.logger = logger
}

// SetNowFunc overrides the timestamp source. Primarily intended for tests.
func (l *Log) SetNowFunc(now func() time.Time) {
	if now == nil {
		l.nowFn = time.Now
		return
	}
	l.nowFn = now
}

// Close flushes and closes the underlying journal file.
func (l *Log) Close() error {
	if l == nil || l.db == nil {
		return nil
	}
	return l.db.Close()
}

// Emit implements events.Emitter. Append errors are logged rather than
// returned because the emitting state transition has already committed.
func (l *Log) Emit(evt events.Event) {
	if l == nil || evt == nil {
		return
	}
	payload := &types.Event{Type: evt.EventType()}
	if carrier, ok := evt.(eventPayload); ok {
		if full := carrier.Event(); full != nil {
			payload = full
		}
	}
	if err := l.Append(payload); err != nil {
		l.logger.Warn("audit journal append failed",
			"event", payload.Type,
			"error", err,
		)
	}
}

// Append writes the event to the journal and returns any persistence error.
func (l *Log) Append(evt *types.Event) error {
	if l == nil || l.db == nil {
		return fmt.Errorf("audit: journal not open")
	}
	if evt == nil {
		return fmt.Errorf("audit: nil event")
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return fmt.Errorf("audit: events bucket missing")
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		record := Record{
			Sequence:   seq,
			Type:       evt.Type,
			Attributes: evt.Attributes,
			RecordedAt: l.nowFn().UTC(),
		}
		encoded, err := json.Marshal(record)
		if err != nil {
			return err
		}
		var key [8]byte
		binary.BigEndian.PutUint64(key[:], seq)
		return bucket.Put(key[:], encoded)
	})
}

// Records reads up to limit entries with sequence >= from, in order. A limit
// of zero or less reads to the end of the journal.
func (l *Log) Records(from uint64, limit int) ([]Record, error) {
	if l == nil || l.db == nil {
		return nil, fmt.Errorf("audit: journal not open")
	}
	var records []Record
	err := l.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketEvents)
		if bucket == nil {
			return nil
		}
		var start [8]byte
		binary.BigEndian.PutUint64(start[:], from)
		cursor := bucket.Cursor()
		for key, value := cursor.Seek(start[:]); key != nil; key, value = cursor.Next() {
			var record Record
			if err := json.Unmarshal(value, &record); err != nil {
				return fmt.Errorf("audit: decode record %x: %w", key, err)
			}
			records = append(records, record)
			if limit > 0 && len(records) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
