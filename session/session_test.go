package session

import (
	"errors"
	"testing"
	"time"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"
	"boothmarket-backend/store"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSignUpProfileFallbackIsIdempotent(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	account, token, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna Svensson", "", models.RoleBoothStaff)
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("sign-up should issue a token")
	}

	// Simulate the store-side trigger also inserting the profile: the
	// second insert must leave exactly one row.
	err = st.EnsureProfile(&models.Profile{ID: account.ID, FullName: "Trigger Copy", Role: models.RoleBoothStaff})
	if err != nil {
		t.Fatal(err)
	}
	if st.ProfileCount() != 1 {
		t.Fatalf("profile count = %d, want 1", st.ProfileCount())
	}
	profile, err := st.GetProfile(account.ID)
	if err != nil {
		t.Fatal(err)
	}
	if profile.FullName != "Anna Svensson" {
		t.Errorf("profile full name = %q, want the original insert", profile.FullName)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	if _, _, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna", "", models.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	_, _, err := mgr.SignIn("anna@example.com", "fel-lösenord")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("got %v, want an auth error", err)
	}
	_, _, err = mgr.SignIn("ingen@example.com", "hemligt123")
	if !errors.Is(err, apperr.ErrAuth) {
		t.Fatalf("got %v, want an auth error for unknown email", err)
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	account, token, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna", "", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	id, role, err := mgr.Resolve(token)
	if err != nil {
		t.Fatal(err)
	}
	if id != account.ID || role != models.RoleAdmin {
		t.Fatalf("resolved %s/%s, want %s/%s", id, role, account.ID, models.RoleAdmin)
	}

	if err := mgr.SignOut(token); err != nil {
		t.Fatal(err)
	}
	if _, _, err := mgr.Resolve(token); !errors.Is(err, apperr.ErrAuth) {
		t.Errorf("revoked token resolved: %v", err)
	}
}

func TestContextLoadsProfileAndClears(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	account, token, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna Svensson", "", models.RoleBoothStaff)
	if err != nil {
		t.Fatal(err)
	}

	ctx := NewContext(mgr, account.ID)
	defer ctx.Close()

	waitFor(t, "context load", func() bool { return !ctx.Loading() })
	if ctx.Profile() == nil || ctx.Profile().FullName != "Anna Svensson" {
		t.Fatalf("profile = %+v, want Anna Svensson", ctx.Profile())
	}

	// Sign-out clears the context through the auth-state feed.
	if err := mgr.SignOut(token); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "context to clear", func() bool { return ctx.Profile() == nil && ctx.Account() == nil })
}

func TestContextProfileErrorResolvesToNil(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	account, _, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna", "", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	st.FailWith("GetProfile", errors.New("store down"))

	ctx := NewContext(mgr, account.ID)
	defer ctx.Close()

	// The profile fetch fails, but loading must still resolve with a nil
	// profile rather than hang.
	waitFor(t, "context load despite profile error", func() bool { return !ctx.Loading() })
	if ctx.Profile() != nil {
		t.Error("failed profile fetch should resolve to nil")
	}
	if ctx.Account() == nil {
		t.Error("account should still be loaded")
	}
}

func TestClosedContextIgnoresLateUpdates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	st := store.NewFake()
	mgr := NewManager(st)

	account, _, err := mgr.SignUp("anna@example.com", "hemligt123", "Anna", "", models.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	ctx := NewContext(mgr, account.ID)
	waitFor(t, "context load", func() bool { return !ctx.Loading() && ctx.Profile() != nil })
	ctx.Close()

	// An in-flight load resolving after close must not overwrite state:
	// this one would null the profile if the liveness guard were missing.
	st.FailWith("GetProfile", errors.New("store down"))
	ctx.loadProfile(account.ID)
	if ctx.Profile() == nil {
		t.Error("closed context accepted a state update")
	}
}
