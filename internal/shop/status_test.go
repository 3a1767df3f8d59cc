package shop

import "testing"

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusDelivered, StatusShipped, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.ok {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestCanCancel(t *testing.T) {
	if !CanCancel(StatusConfirmed) {
		t.Error("confirmed order must be cancellable")
	}
	for _, st := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		if CanCancel(st) {
			t.Errorf("%s order must not be cancellable", st)
		}
	}
}
