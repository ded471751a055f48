package views

import (
	"testing"

	"boothmarket-backend/models"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

func TestDetailViewMissingBooth(t *testing.T) {
	st := store.NewFake()

	view := NewBoothDetailView(st, uuid.New())
	defer view.Close()

	waitFor(t, "detail initial load", func() bool { return !view.Loading() })
	if !view.Missing() {
		t.Fatal("detail view for a deleted booth should render not-found")
	}
}

func TestDetailViewFollowsChanges(t *testing.T) {
	st := store.NewFake()
	admin := uuid.New()

	booth := newBooth("7", "Glögg")
	if err := st.CreateBooth(booth); err != nil {
		t.Fatal(err)
	}

	view := NewBoothDetailView(st, booth.ID)
	defer view.Close()
	waitFor(t, "detail initial load", func() bool { return !view.Loading() })
	if view.Missing() {
		t.Fatal("booth exists, view should not be missing")
	}

	product, err := view.CreateProduct("Glögg mugg", 45)
	if err != nil {
		t.Fatal(err)
	}
	if len(view.Products()) != 1 {
		t.Fatalf("products = %d, want 1", len(view.Products()))
	}

	if err := view.SendMessage(admin, "Fyll på"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "message to arrive", func() bool { return len(view.Messages()) == 1 })

	if err := st.CreateOrder(&models.Order{BoothID: booth.ID, ProductID: product.ID, Quantity: 2, CreatedBy: admin}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "order to arrive", func() bool { return len(view.Orders()) == 1 })

	if err := view.ResolveOrder(view.Orders()[0].ID, models.OrderCancelled); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "order resolution", func() bool {
		orders := view.Orders()
		return len(orders) == 1 && orders[0].Status == models.OrderCancelled
	})

	// Deleting the booth flips the view to its not-found terminal state.
	if err := st.DeleteBooth(booth.ID); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "missing state", func() bool { return view.Missing() })
}
