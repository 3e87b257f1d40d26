package state

import (
	"testing"

	"cerachain/storage"
)

func TestManagerKVRoundTrip(t *testing.T) {
	manager := NewManager(storage.NewMemDB())

	type sample struct {
		Name  string
		Count uint64
	}
	if err := manager.KVPut([]byte("sample"), sample{Name: "abc", Count: 7}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var decoded sample
	ok, err := manager.KVGet([]byte("sample"), &decoded)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if decoded.Name != "abc" || decoded.Count != 7 {
		t.Fatalf("unexpected decoded value: %+v", decoded)
	}
}

func TestManagerKVMissingKey(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	var out uint64
	ok, err := manager.KVGet([]byte("missing"), &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected missing key")
	}
}

func TestManagerKVDelete(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	if err := manager.KVPut([]byte("ephemeral"), uint64(1)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := manager.KVDelete([]byte("ephemeral")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err := manager.KVGet([]byte("ephemeral"), nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected key to be deleted")
	}
}

func TestManagerKVRejectsEmptyKey(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	if err := manager.KVPut(nil, uint64(1)); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := manager.KVGet(nil, nil); err == nil {
		t.Fatal("expected error for empty key")
	}
}
