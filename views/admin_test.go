package views

import (
	"errors"
	"testing"

	"boothmarket-backend/apperr"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

func TestAdminViewBadgeScenario(t *testing.T) {
	st := store.NewFake()
	admin := NewAdminView(st)
	defer admin.Close()
	waitFor(t, "admin initial load", func() bool { return !admin.Loading() })

	booth, err := admin.CreateBooth("7", "Glögg", "Varm glögg och mugg")
	if err != nil {
		t.Fatal(err)
	}
	booths := admin.Booths()
	if len(booths) != 1 || booths[0].BoothName != "Glögg" {
		t.Fatalf("booths after create = %+v", booths)
	}

	staffID := uuid.New()
	if err := admin.AssignStaff(booth.ID, &staffID); err != nil {
		t.Fatal(err)
	}

	staff := NewBoothStaffView(st, staffID)
	defer staff.Close()
	waitFor(t, "staff initial load", func() bool { return !staff.Loading() })
	if staff.Unassigned() {
		t.Fatal("staff should see booth #7")
	}
	if n := len(staff.Products()); n != 0 {
		t.Fatalf("new booth has %d products, want the empty state", n)
	}

	// Admin adds a product; the change feed pushes it into the staff view.
	product, err := admin.CreateProduct(booth.ID, "Glögg mugg", 45)
	if err != nil {
		t.Fatal(err)
	}
	waitFor(t, "product reaches staff view", func() bool { return len(staff.Products()) == 1 })

	// Staff marks it out of stock: admin badge shows 1.
	if err := staff.ToggleOutOfStock(product.ID); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "badge after stock toggle", func() bool { return admin.Badges()[booth.ID] == 1 })

	// Staff raises a restock order: badge shows 2.
	if _, err := staff.CreateOrder(product.ID, 3, "tre lådor"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "badge after order", func() bool { return admin.Badges()[booth.ID] == 2 })

	// Admin completes the order: badge back to 1.
	pending := admin.PendingOrders()
	if len(pending) != 1 {
		t.Fatalf("pending orders = %d, want 1", len(pending))
	}
	if err := admin.ResolveOrder(pending[0].ID, "completed"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "badge after completion", func() bool { return admin.Badges()[booth.ID] == 1 })
}

func TestAdminLoadingResolvesDespitePartialFailure(t *testing.T) {
	st := store.NewFake()
	if err := st.CreateBooth(newBooth("2", "Karamell")); err != nil {
		t.Fatal(err)
	}
	st.FailWith("ListAllOrders", errors.New("store down"))

	admin := NewAdminView(st)
	defer admin.Close()

	// Loading must resolve even though one slice failed, and the failed
	// slice stays empty without blocking the others.
	waitFor(t, "loading to resolve", func() bool { return !admin.Loading() })
	if len(admin.Booths()) != 1 {
		t.Errorf("booths = %d, want 1", len(admin.Booths()))
	}
	if len(admin.PendingOrders()) != 0 {
		t.Errorf("orders slice should be empty after load failure")
	}
}

func TestAdminCloseGuardsInFlightReloads(t *testing.T) {
	st := store.NewFake()
	admin := NewAdminView(st)
	waitFor(t, "admin initial load", func() bool { return !admin.Loading() })

	admin.Close()

	// Mutations after close must not reach the view: subscriptions are
	// gone and the liveness guard rejects a reload completing late.
	if err := st.CreateBooth(newBooth("2", "Karamell")); err != nil {
		t.Fatal(err)
	}
	admin.reloadBooths() // simulate an in-flight reload resolving after unmount
	if len(admin.Booths()) != 0 {
		t.Error("closed view accepted a state update")
	}
}

func TestDestructiveActionsNeedConfirmation(t *testing.T) {
	st := store.NewFake()
	admin := NewAdminView(st)
	defer admin.Close()
	waitFor(t, "admin initial load", func() bool { return !admin.Loading() })

	booth, err := admin.CreateBooth("1", "Ljusstöperi", "")
	if err != nil {
		t.Fatal(err)
	}

	err = admin.DeleteBooth(booth.ID, false)
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("declined delete returned %v, want ErrNotConfirmed", err)
	}
	if _, err := st.GetBooth(booth.ID); err != nil {
		t.Fatal("declined confirmation must perform no store access")
	}

	if err := admin.DeleteBooth(booth.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := st.GetBooth(booth.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Error("confirmed delete should remove the booth")
	}
}
