package state

import (
	"testing"
	"time"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore(Account{})
	if s.Get().SignedIn() {
		t.Fatal("zero account should not be signed in")
	}
	s.Set(Account{ID: "u1", Name: "Ada Lovelace", SignedInAt: time.Now()})
	got := s.Get()
	if !got.SignedIn() {
		t.Fatal("account should be signed in after Set")
	}
	if got.FirstName() != "Ada" {
		t.Errorf("first name = %q, want Ada", got.FirstName())
	}
}

func TestStoreUpdate(t *testing.T) {
	s := NewStore(Practice{Stage: StageIdle})
	s.Update(func(p Practice) Practice {
		p.Stage = StageRecording
		p.Topic = "Icebreaker"
		return p
	})
	got := s.Get()
	if got.Stage != StageRecording {
		t.Errorf("stage = %q, want recording", got.Stage)
	}
	if got.Topic != "Icebreaker" {
		t.Errorf("topic = %q, want Icebreaker", got.Topic)
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore(0)
	var seen []int
	cancel := s.Subscribe(func(v int) { seen = append(seen, v) })

	s.Set(1)
	s.Update(func(v int) int { return v + 1 })
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Fatalf("seen = %v, want [1 2]", seen)
	}

	cancel()
	s.Set(99)
	if len(seen) != 2 {
		t.Fatalf("subscriber fired after cancel: %v", seen)
	}
}

func TestStoreMultipleSubscribers(t *testing.T) {
	s := NewStore("")
	a, b := 0, 0
	s.Subscribe(func(string) { a++ })
	cancelB := s.Subscribe(func(string) { b++ })
	s.Set("x")
	if a != 1 || b != 1 {
		t.Fatalf("a=%d b=%d, want both 1", a, b)
	}
	cancelB()
	s.Set("y")
	if a != 2 || b != 1 {
		t.Fatalf("a=%d b=%d after cancel, want 2 and 1", a, b)
	}
}
