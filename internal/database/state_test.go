package database

import (
	"errors"
	"testing"
)

func TestStateTransitions(t *testing.T) {
	state := NewState("mongo")
	if state.Ready() {
		t.Fatalf("new state should not be ready")
	}
	if state.Status() != "disconnected" {
		t.Fatalf("unexpected status: %s", state.Status())
	}

	state.MarkReady()
	if !state.Ready() || state.Status() != "connected" {
		t.Fatalf("expected ready state")
	}

	cause := errors.New("server selection timeout")
	state.MarkDown(cause)
	if state.Ready() {
		t.Fatalf("expected state to be down")
	}
	if !errors.Is(state.LastError(), cause) {
		t.Fatalf("expected last error to be kept, got %v", state.LastError())
	}

	state.MarkReady()
	if state.LastError() != nil {
		t.Fatalf("mark ready should clear last error")
	}
}

func TestNilStateIsNotReady(t *testing.T) {
	var state *State
	if state.Ready() {
		t.Fatalf("nil state must not be ready")
	}
	state.MarkReady()
	if state.Driver() != "" {
		t.Fatalf("nil state driver should be empty")
	}
}

func TestOpenGormSQLiteMigrates(t *testing.T) {
	db, err := OpenGorm("sqlite", "file::memory:", PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	for _, table := range []string{"admins", "products", "orders", "messages"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table %s to exist", table)
		}
	}
	if _, err := OpenGorm("mysql", "", PoolConfig{}, false); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}
