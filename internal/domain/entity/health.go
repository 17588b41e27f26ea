package entity

// Health tracks hit points and tells observers when they run out.
type Health struct {
	Current int
	Max     int

	dead      bool
	observers []func()
}

// NewHealth creates a full health pool.
func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}

// OnDeath registers fn to run once when health reaches zero.
func (h *Health) OnDeath(fn func()) {
	if fn == nil {
		return
	}
	h.observers = append(h.observers, fn)
}

// Damage subtracts amount and returns true if this call killed the owner.
// Damage to a dead owner is ignored.
func (h *Health) Damage(amount int) bool {
	if h.dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current > 0 {
		return false
	}
	h.Current = 0
	h.dead = true
	for _, fn := range h.observers {
		fn()
	}
	return true
}

// Heal adds hit points up to Max. Dead owners stay dead.
func (h *Health) Heal(amount int) {
	if h.dead || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

// IsDead returns true once health has run out
func (h *Health) IsDead() bool {
	return h.dead
}

// Revive restores full health and re-arms the death notification.
func (h *Health) Revive() {
	h.Current = h.Max
	h.dead = false
}
