package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from string
		to   string
		ok   bool
	}{
		{OrderPending, OrderCompleted, true},
		{OrderPending, OrderCancelled, true},
		{OrderPending, OrderPending, false},
		{OrderCompleted, OrderCancelled, false},
		{OrderCompleted, OrderPending, false},
		{OrderCancelled, OrderCompleted, false},
	}

	for _, tc := range cases {
		order := Order{Status: tc.from}
		if got := order.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestOrderValidate(t *testing.T) {
	order := Order{BoothID: uuid.New(), ProductID: uuid.New(), Quantity: 3, Status: OrderPending}
	if err := order.Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	order.Quantity = 0
	if err := order.Validate(); err == nil {
		t.Error("zero quantity accepted")
	}
}

func TestMessageVisibility(t *testing.T) {
	boothA := uuid.New()
	boothB := uuid.New()

	broadcast := Message{FromUserID: uuid.New(), Message: "till alla"}
	if !broadcast.VisibleTo(boothA) || !broadcast.VisibleTo(boothB) {
		t.Error("broadcast should be visible to every booth")
	}

	targeted := Message{FromUserID: uuid.New(), ToBoothID: &boothA, Message: "bara A"}
	if !targeted.VisibleTo(boothA) {
		t.Error("targeted message should be visible to its booth")
	}
	if targeted.VisibleTo(boothB) {
		t.Error("targeted message leaked to another booth")
	}
}
