package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestStore_RecordSuccess(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.Checked || snap.Reachable {
		t.Fatalf("zero snapshot = %#v, want unchecked", snap)
	}

	before := time.Now()
	s.Record(15*time.Millisecond, nil)

	snap := s.Snapshot()
	if !snap.Checked || !snap.Reachable || snap.Latency != 15*time.Millisecond {
		t.Fatalf("snapshot = %#v, want reachable with latency", snap)
	}
	if snap.LastChecked.Before(before) {
		t.Fatalf("LastChecked = %v, want >= %v", snap.LastChecked, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
}

func TestStore_SnapshotClonesError(t *testing.T) {
	var s Store
	origErr := errors.New("boom")
	s.Record(0, origErr)

	snap := s.Snapshot()
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("cloned error should wrap the original")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store
	s.Record(time.Millisecond, nil)

	s.Record(0, errors.New("fail 1"))
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: %#v, want online", snap)
	}
	if !snap.Reachable {
		t.Fatal("Reachable = false after a single failure, want true")
	}

	s.Record(0, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() || snap.Reachable {
		t.Fatalf("after 2 failures: %#v, want offline", snap)
	}

	s.Record(0, errors.New("fail 3"))
	if snap = s.Snapshot(); snap.ConsecutiveFailures != 3 || !snap.IsOffline() {
		t.Fatalf("after 3 failures: %#v, want offline", snap)
	}

	s.Record(time.Millisecond, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || !snap.Reachable {
		t.Fatalf("after success: %#v, want online", snap)
	}
}
