package core

import (
	"sync"
	"testing"
)

func TestSessionManager_GetOrCreate(t *testing.T) {
	m := NewSessionManager()

	a := m.GetOrCreate("AAAAAA")
	if b := m.GetOrCreate("AAAAAA"); b != a {
		t.Fatal("same code returned a different session")
	}
	if c := m.GetOrCreate("BBBBBB"); c == a {
		t.Fatal("different codes share a session")
	}
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
}

func TestSessionManager_GetOrCreate_Concurrent(t *testing.T) {
	m := NewSessionManager()
	out := make([]*GroupSession, 16)

	var wg sync.WaitGroup
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i] = m.GetOrCreate("AAAAAA")
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(out); i++ {
		if out[i] != out[0] {
			t.Fatal("concurrent GetOrCreate produced distinct sessions")
		}
	}
}

func TestSessionManager_Evict(t *testing.T) {
	m := NewSessionManager()
	a := m.GetOrCreate("AAAAAA")
	a.MarkMatched("r1")

	m.Evict("AAAAAA")
	if _, ok := m.Get("AAAAAA"); ok {
		t.Fatal("evicted session still present")
	}
	// A session re-created for the same code starts clean.
	if _, matched := m.GetOrCreate("AAAAAA").Matched(); matched {
		t.Fatal("fresh session inherited matched state")
	}
}

func TestGroupSession_MatchLatch(t *testing.T) {
	s := NewGroupSession("AAAAAA")

	if !s.MarkMatched("r1") {
		t.Fatal("first MarkMatched rejected")
	}
	if s.MarkMatched("r2") {
		t.Fatal("second MarkMatched accepted")
	}
	if id, ok := s.Matched(); !ok || id != "r1" {
		t.Fatalf("Matched = (%q, %v), want (r1, true)", id, ok)
	}

	s.ClearRound()
	if _, ok := s.Matched(); ok {
		t.Fatal("ClearRound kept the matched pair")
	}
	if !s.MarkMatched("r2") {
		t.Fatal("MarkMatched rejected after ClearRound")
	}
}

func TestGroupSession_AllReadyLatch(t *testing.T) {
	s := NewGroupSession("AAAAAA")
	if s.AllReadyAnnounced() {
		t.Fatal("fresh session reports announced")
	}
	s.MarkAllReady()
	if !s.AllReadyAnnounced() {
		t.Fatal("latch did not hold")
	}
	s.ClearRound()
	if s.AllReadyAnnounced() {
		t.Fatal("ClearRound kept the all-ready latch")
	}
}
