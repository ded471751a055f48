// Package session owns the authenticated identity: sign-up/in/out, token
// resolution, and a per-identity context that keeps the derived profile
// loaded while the session lives.
package session

import (
	"log"
	"strings"
	"sync"

	"boothmarket-backend/apperr"
	"boothmarket-backend/models"
	"boothmarket-backend/store"
	"boothmarket-backend/utils"

	"github.com/google/uuid"
)

// Change describes an auth-state transition delivered to subscribers.
type Change struct {
	AccountID uuid.UUID
	SignedIn  bool
}

// Manager performs the auth operations against an injected Store and fans
// auth-state changes out to subscribers (session contexts, cleanup hooks).
type Manager struct {
	store store.Store

	mu      sync.Mutex
	revoked map[string]struct{}
	nextSub int
	subs    map[int]func(Change)
}

func NewManager(st store.Store) *Manager {
	return &Manager{
		store:   st,
		revoked: make(map[string]struct{}),
		subs:    make(map[int]func(Change)),
	}
}

// OnAuthChange registers a subscriber and returns its unsubscribe func.
func (m *Manager) OnAuthChange(fn func(Change)) (unsub func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(c Change) {
	m.mu.Lock()
	subs := make([]func(Change), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		fn(c)
	}
}

// SignUp creates the account and always performs the fallback profile
// insert. The insert is idempotent, so this is correct whether or not the
// store also creates profiles via a trigger. A profile insert failure is
// logged, not fatal: the account exists and can complete its profile later.
func (m *Manager) SignUp(email, password, fullName, phone, role string) (*models.Account, string, error) {
	if !utils.ValidateEmail(email) {
		return nil, "", apperr.Auth("a valid email is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, "", apperr.Auth("a password is required")
	}
	if phone != "" && !utils.ValidatePhone(phone) {
		return nil, "", apperr.Auth("invalid phone number format")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, "", apperr.Auth("a full name is required")
	}
	if role != models.RoleAdmin && role != models.RoleBoothStaff {
		return nil, "", apperr.Auth("role must be admin or booth_staff")
	}

	account := &models.Account{Email: strings.TrimSpace(email), Password: password}
	if err := m.store.CreateAccount(account); err != nil {
		return nil, "", err
	}

	profile := &models.Profile{ID: account.ID, FullName: fullName, Phone: phone, Role: role}
	if err := m.store.EnsureProfile(profile); err != nil {
		log.Printf("Profile creation error for %s: %v", account.ID, err)
	}

	token, err := utils.GenerateToken(account.ID.String(), role)
	if err != nil {
		return nil, "", apperr.Auth("failed to generate token")
	}
	m.notify(Change{AccountID: account.ID, SignedIn: true})
	return account, token, nil
}

// SignIn checks credentials and issues a token.
func (m *Manager) SignIn(email, password string) (*models.Account, string, error) {
	account, err := m.store.GetAccountByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, "", apperr.Auth("invalid credentials")
	}
	if !utils.CheckPasswordHash(password, account.Password) {
		return nil, "", apperr.Auth("invalid credentials")
	}

	role := ""
	if profile, err := m.store.GetProfile(account.ID); err == nil {
		role = profile.Role
	}

	token, err := utils.GenerateToken(account.ID.String(), role)
	if err != nil {
		return nil, "", apperr.Auth("failed to generate token")
	}
	m.notify(Change{AccountID: account.ID, SignedIn: true})
	return account, token, nil
}

// SignOut revokes the token and notifies subscribers. Tokens are stateless
// JWTs; the revocation set lives in memory and empties on restart, which
// only forces a re-login.
func (m *Manager) SignOut(token string) error {
	accountID, _, err := utils.ParseToken(token)
	if err != nil {
		return apperr.Auth("invalid token")
	}
	m.mu.Lock()
	m.revoked[token] = struct{}{}
	m.mu.Unlock()

	id, err := uuid.Parse(accountID)
	if err != nil {
		return apperr.Auth("invalid token subject")
	}
	m.notify(Change{AccountID: id, SignedIn: false})
	return nil
}

// Resolve validates a token and returns the account id and role it carries.
func (m *Manager) Resolve(token string) (uuid.UUID, string, error) {
	m.mu.Lock()
	_, revoked := m.revoked[token]
	m.mu.Unlock()
	if revoked {
		return uuid.Nil, "", apperr.Auth("token revoked")
	}
	sub, role, err := utils.ParseToken(token)
	if err != nil {
		return uuid.Nil, "", apperr.Auth("invalid token")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", apperr.Auth("invalid token subject")
	}
	return id, role, nil
}

// Store exposes the injected store to the context type.
func (m *Manager) Store() store.Store { return m.store }
