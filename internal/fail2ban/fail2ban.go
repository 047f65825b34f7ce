package fail2ban

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// clientState tracks authentication failures for one client address
type clientState struct {
	failures int
	banned   bool
	banTime  time.Time
}

// Fail2Ban bans client addresses after repeated authentication failures.
// The table is a bounded LRU so a flood of distinct addresses cannot grow memory.
type Fail2Ban struct {
	mu          sync.Mutex
	maxAttempts int
	banDuration time.Duration // 0 means permanent ban
	clients     *lru.Cache[string, *clientState]
	now         func() time.Time
}

// New creates a Fail2Ban. maxAttempts of 0 disables banning entirely.
func New(maxAttempts int, banDuration time.Duration, cacheSize int) (*Fail2Ban, error) {
	if cacheSize <= 0 {
		cacheSize = 10000
	}

	clients, err := lru.New[string, *clientState](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("fail2ban: failed to create client table: %w", err)
	}

	return &Fail2Ban{
		maxAttempts: maxAttempts,
		banDuration: banDuration,
		clients:     clients,
		now:         time.Now,
	}, nil
}

// Enabled reports whether failures are tracked at all
func (f *Fail2Ban) Enabled() bool {
	return f != nil && f.maxAttempts > 0
}

// RecordFailure counts one authentication failure and reports whether
// this failure banned the client.
func (f *Fail2Ban) RecordFailure(client string) bool {
	if !f.Enabled() {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.clients.Get(client)
	if !ok {
		state = &clientState{}
		f.clients.Add(client, state)
	}

	if state.banned {
		return false
	}

	state.failures++
	if state.failures >= f.maxAttempts {
		state.banned = true
		state.banTime = f.now()
		return true
	}
	return false
}

// RecordSuccess clears the failure counter of a client that authenticated
func (f *Fail2Ban) RecordSuccess(client string) {
	if !f.Enabled() {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if state, ok := f.clients.Peek(client); ok && !state.banned {
		f.clients.Remove(client)
	}
}

func (f *Fail2Ban) IsBanned(client string) bool {
	if !f.Enabled() {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	state, ok := f.clients.Peek(client)
	if !ok || !state.banned {
		return false
	}

	// Permanent ban (banDuration = 0)
	if f.banDuration == 0 {
		return true
	}

	if f.now().Sub(state.banTime) >= f.banDuration {
		f.clients.Remove(client)
		return false
	}
	return true
}

func (f *Fail2Ban) GetFailureCount(client string) int {
	if !f.Enabled() {
		return 0
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if state, ok := f.clients.Peek(client); ok {
		return state.failures
	}
	return 0
}

func (f *Fail2Ban) Unban(client string) {
	if !f.Enabled() {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients.Remove(client)
}

// BannedClients lists clients whose ban is still active
func (f *Fail2Ban) BannedClients() []string {
	if !f.Enabled() {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var banned []string
	now := f.now()
	for _, client := range f.clients.Keys() {
		state, ok := f.clients.Peek(client)
		if !ok || !state.banned {
			continue
		}
		if f.banDuration > 0 && now.Sub(state.banTime) >= f.banDuration {
			continue
		}
		banned = append(banned, client)
	}
	return banned
}
