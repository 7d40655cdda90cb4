package main

import (
	"testing"
)

func TestScopeSnapshotOldestFirst(t *testing.T) {
	sc := NewScope(4)
	for i := 1; i <= 6; i++ {
		sc.TryPush(Smp(i))
	}
	got := sc.Snapshot(nil)
	want := []Smp{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", got, want)
		}
	}
}

func TestScopeSnapshotReusesBuffer(t *testing.T) {
	sc := NewScope(4)
	dst := make([]Smp, 0, 16)
	got := sc.Snapshot(dst)
	if len(got) != 4 || &got[0] != &dst[:1][0] {
		t.Errorf("snapshot did not reuse dst")
	}
}

func TestScopeDropsWhenBusy(t *testing.T) {
	sc := NewScope(4)
	sc.mu.Lock()
	ok := sc.TryPush(1)
	sc.mu.Unlock()
	if ok || sc.Dropped() != 1 {
		t.Errorf("TryPush ok=%v dropped=%d", ok, sc.Dropped())
	}
	if !sc.TryPush(2) {
		t.Errorf("TryPush failed on a free scope")
	}
}

func TestNewScopeDefaultSize(t *testing.T) {
	if sc := NewScope(0); sc.Size() != PreviewSize {
		t.Errorf("size = %d", sc.Size())
	}
}
