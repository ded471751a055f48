package views

import (
	"sync"

	"boothmarket-backend/session"
	"boothmarket-backend/store"

	"github.com/google/uuid"
)

// Registry hands out the long-lived views the HTTP layer serves snapshots
// from: one admin projection, one staff projection per signed-in staff
// account, one detail projection per booth being inspected. Staff views are
// closed when their account signs out.
type Registry struct {
	store store.Store

	mu     sync.Mutex
	admin  *AdminView
	staff  map[uuid.UUID]*BoothStaffView
	detail map[uuid.UUID]*BoothDetailView
}

func NewRegistry(st store.Store, sessions *session.Manager) *Registry {
	r := &Registry{
		store:  st,
		staff:  make(map[uuid.UUID]*BoothStaffView),
		detail: make(map[uuid.UUID]*BoothDetailView),
	}
	sessions.OnAuthChange(func(c session.Change) {
		if c.SignedIn {
			return
		}
		r.mu.Lock()
		view := r.staff[c.AccountID]
		delete(r.staff, c.AccountID)
		r.mu.Unlock()
		if view != nil {
			view.Close()
		}
	})
	return r
}

func (r *Registry) Admin() *AdminView {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admin == nil {
		r.admin = NewAdminView(r.store)
	}
	return r.admin
}

func (r *Registry) Staff(accountID uuid.UUID) *BoothStaffView {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.staff[accountID]
	if !ok {
		view = NewBoothStaffView(r.store, accountID)
		r.staff[accountID] = view
	}
	return view
}

func (r *Registry) Detail(boothID uuid.UUID) *BoothDetailView {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.detail[boothID]
	if !ok {
		view = NewBoothDetailView(r.store, boothID)
		r.detail[boothID] = view
	}
	return view
}

// CloseAll tears down every view, for shutdown and tests.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	admin := r.admin
	r.admin = nil
	staff := r.staff
	r.staff = make(map[uuid.UUID]*BoothStaffView)
	detail := r.detail
	r.detail = make(map[uuid.UUID]*BoothDetailView)
	r.mu.Unlock()

	if admin != nil {
		admin.Close()
	}
	for _, v := range staff {
		v.Close()
	}
	for _, v := range detail {
		v.Close()
	}
}
