// internal/domain/session/container.go
package session

import "sync"

// State is a snapshot of the container: current identity (nil when signed
// out) and the derived admin flag.
type State struct {
	Identity *Identity
	Role     Role
}

// Listener receives every auth-state change for the container's lifetime.
type Listener func(State)

// Container tracks the current identity and the allow-list-derived role.
// It is single-writer by construction (only the owning auth flow mutates it);
// the mutex exists so read-side handlers can snapshot safely.
type Container struct {
	mu          sync.RWMutex
	adminEmails []string
	current     *Identity
	role        Role
	listeners   []Listener
}

// NewContainer creates a signed-out container bound to the admin allow-list.
func NewContainer(adminEmails []string) *Container {
	emails := make([]string, len(adminEmails))
	copy(emails, adminEmails)
	return &Container{
		adminEmails: emails,
		role:        RoleShopper,
	}
}

// Set establishes the current identity and re-derives the role.
func (c *Container) Set(id Identity) {
	c.mu.Lock()
	cp := id
	c.current = &cp
	c.role = ResolveRole(id.Email, c.adminEmails)
	state := c.stateLocked()
	listeners := c.listeners
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Clear drops the current identity (sign-out).
func (c *Container) Clear() {
	c.mu.Lock()
	c.current = nil
	c.role = RoleShopper
	state := c.stateLocked()
	listeners := c.listeners
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
}

// Current returns the identity snapshot, or nil when signed out.
func (c *Container) Current() *Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	cp := *c.current
	return &cp
}

// IsAdmin reports whether the current identity is on the allow-list.
func (c *Container) IsAdmin() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.role == RoleAdmin
}

// Subscribe registers a listener for auth-state changes. Listeners stay
// registered for the life of the process; there is no unsubscribe, matching
// the provider's app-lifetime notification stream.
func (c *Container) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Container) stateLocked() State {
	s := State{Role: c.role}
	if c.current != nil {
		cp := *c.current
		s.Identity = &cp
	}
	return s
}
