package session

import (
	"log"
	"sync"

	"boothmarket-backend/models"

	"github.com/google/uuid"
)

// Context is the per-identity session provider: it holds the account and
// its derived profile, tracks a loading flag until both are resolved, and
// follows auth-state changes for its lifetime. Every async update checks
// the liveness flag so a closed context is never written to.
type Context struct {
	manager *Manager

	mu      sync.Mutex
	closed  bool
	loading bool
	account *models.Account
	profile *models.Profile

	unsub func()
}

// NewContext opens a session context for the account. The profile load runs
// in the background; Loading() reports true until it completes. A profile
// fetch error resolves to a nil profile, never a hang.
func NewContext(m *Manager, accountID uuid.UUID) *Context {
	ctx := &Context{manager: m, loading: true}

	ctx.unsub = m.OnAuthChange(func(c Change) {
		if c.AccountID != accountID {
			return
		}
		if c.SignedIn {
			go ctx.loadProfile(accountID)
			return
		}
		ctx.mu.Lock()
		if !ctx.closed {
			ctx.account = nil
			ctx.profile = nil
			ctx.loading = false
		}
		ctx.mu.Unlock()
	})

	go func() {
		account, err := m.Store().GetAccount(accountID)
		if err != nil {
			log.Printf("Error loading account %s: %v", accountID, err)
			ctx.mu.Lock()
			if !ctx.closed {
				ctx.loading = false
			}
			ctx.mu.Unlock()
			return
		}
		ctx.mu.Lock()
		if ctx.closed {
			ctx.mu.Unlock()
			return
		}
		ctx.account = account
		ctx.mu.Unlock()
		ctx.loadProfile(accountID)
	}()

	return ctx
}

func (c *Context) loadProfile(accountID uuid.UUID) {
	profile, err := c.manager.Store().GetProfile(accountID)
	if err != nil {
		log.Printf("Error loading profile %s: %v", accountID, err)
		profile = nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.profile = profile
	c.loading = false
}

func (c *Context) Account() *models.Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.account
}

func (c *Context) Profile() *models.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

func (c *Context) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Close unsubscribes from auth changes and flips the liveness flag; any
// in-flight load becomes a no-op.
func (c *Context) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	if c.unsub != nil {
		c.unsub()
	}
}
