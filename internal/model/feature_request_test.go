package model

import "testing"

func TestPriorityValid(t *testing.T) {
	for _, p := range Priorities() {
		if !p.Valid() {
			t.Errorf("priority %q reported invalid", p)
		}
	}

	for _, p := range []Priority{"", "urgent", "LOW", "critical"} {
		if p.Valid() {
			t.Errorf("priority %q reported valid", p)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("status %q reported invalid", s)
		}
	}

	for _, s := range []Status{"", "done", "OPEN", "in-review"} {
		if s.Valid() {
			t.Errorf("status %q reported valid", s)
		}
	}
}

func TestStatusesComplete(t *testing.T) {
	if got := len(Statuses()); got != 6 {
		t.Fatalf("expected 6 status values, got %d", got)
	}
	if got := len(Priorities()); got != 3 {
		t.Fatalf("expected 3 priority values, got %d", got)
	}
}
