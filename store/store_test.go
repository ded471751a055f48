package store

import (
	"errors"
	"testing"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"

	"github.com/google/uuid"
)

func TestEnsureProfileIsIdempotent(t *testing.T) {
	st := NewFake()
	id := uuid.New()

	first := &models.Profile{ID: id, FullName: "Anna Svensson", Role: models.RoleBoothStaff}
	if err := st.EnsureProfile(first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	second := &models.Profile{ID: id, FullName: "Someone Else", Role: models.RoleAdmin}
	if err := st.EnsureProfile(second); err != nil {
		t.Fatalf("second insert should not fail: %v", err)
	}

	if st.ProfileCount() != 1 {
		t.Fatalf("profile count = %d, want exactly 1", st.ProfileCount())
	}
	profile, err := st.GetProfile(id)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.FullName != "Anna Svensson" {
		t.Errorf("second insert overwrote the row: %s", profile.FullName)
	}
}

func TestOrderStatusGuard(t *testing.T) {
	st := NewFake()
	booth := &models.Booth{BoothNumber: "7", BoothName: "Glögg"}
	if err := st.CreateBooth(booth); err != nil {
		t.Fatal(err)
	}

	order := &models.Order{BoothID: booth.ID, ProductID: uuid.New(), Quantity: 3, CreatedBy: uuid.New()}
	if err := st.CreateOrder(order); err != nil {
		t.Fatal(err)
	}

	if err := st.UpdateOrderStatus(order.ID, models.OrderCompleted); err != nil {
		t.Fatalf("pending -> completed: %v", err)
	}
	err := st.UpdateOrderStatus(order.ID, models.OrderCancelled)
	if err == nil {
		t.Fatal("completed -> cancelled should be rejected")
	}
	if !errors.Is(err, apperr.ErrInvalid) {
		t.Errorf("got %v, want an invalid-transition error", err)
	}
}

func TestDeleteBoothCascades(t *testing.T) {
	st := NewFake()
	booth := &models.Booth{BoothNumber: "7", BoothName: "Glögg"}
	if err := st.CreateBooth(booth); err != nil {
		t.Fatal(err)
	}
	product := &models.Product{BoothID: booth.ID, Name: "Glögg mugg", Price: 45}
	if err := st.CreateProduct(product); err != nil {
		t.Fatal(err)
	}
	boothID := booth.ID
	message := &models.Message{FromUserID: uuid.New(), ToBoothID: &boothID, Message: "hej"}
	if err := st.CreateMessage(message); err != nil {
		t.Fatal(err)
	}

	if err := st.DeleteBooth(booth.ID); err != nil {
		t.Fatal(err)
	}

	products, err := st.ListProducts(booth.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 0 {
		t.Errorf("%d products survived booth deletion", len(products))
	}
	messages, err := st.ListMessagesForBooth(booth.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Errorf("%d targeted messages survived booth deletion", len(messages))
	}
}

func TestMutationsPublishEvents(t *testing.T) {
	st := NewFake()

	var events []Event
	st.Feed().Subscribe(TableBooths, Filter{}, func(e Event) { events = append(events, e) })

	booth := &models.Booth{BoothNumber: "3", BoothName: "Pepparkakor"}
	if err := st.CreateBooth(booth); err != nil {
		t.Fatal(err)
	}
	staffID := uuid.New()
	if err := st.AssignStaff(booth.ID, &staffID); err != nil {
		t.Fatal(err)
	}
	if err := st.DeleteBooth(booth.ID); err != nil {
		t.Fatal(err)
	}

	want := []Action{ActionInsert, ActionUpdate, ActionDelete}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, action := range want {
		if events[i].Action != action {
			t.Errorf("event %d action = %s, want %s", i, events[i].Action, action)
		}
		if events[i].BoothID != booth.ID {
			t.Errorf("event %d booth = %s, want %s", i, events[i].BoothID, booth.ID)
		}
	}
}

func TestListMessagesAppliesVisibility(t *testing.T) {
	st := NewFake()
	boothA := uuid.New()
	boothB := uuid.New()

	if err := st.CreateMessage(&models.Message{FromUserID: uuid.New(), Message: "till alla"}); err != nil {
		t.Fatal(err)
	}
	if err := st.CreateMessage(&models.Message{FromUserID: uuid.New(), ToBoothID: &boothA, Message: "bara A"}); err != nil {
		t.Fatal(err)
	}

	forA, err := st.ListMessagesForBooth(boothA)
	if err != nil {
		t.Fatal(err)
	}
	if len(forA) != 2 {
		t.Errorf("booth A sees %d messages, want 2", len(forA))
	}

	forB, err := st.ListMessagesForBooth(boothB)
	if err != nil {
		t.Fatal(err)
	}
	if len(forB) != 1 {
		t.Errorf("booth B sees %d messages, want 1", len(forB))
	}
}
