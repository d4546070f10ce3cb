package models

import "time"

// LifecycleState collapses the is_active flag and the soft-delete timestamp
// into one state, so "deleted but still active" cannot be observed.
type LifecycleState string

const (
	StateActive   LifecycleState = "active"
	StateInactive LifecycleState = "inactive"
	StateDeleted  LifecycleState = "deleted"
)

func lifecycleState(isActive bool, deletedAt *time.Time) LifecycleState {
	if deletedAt != nil {
		return StateDeleted
	}
	if !isActive {
		return StateInactive
	}
	return StateActive
}

func (p *Product) State() LifecycleState {
	return lifecycleState(p.IsActive, p.DeletedAt)
}

// SoftDelete marks the product deleted and deactivates it in the same step.
func (p *Product) SoftDelete(now time.Time) {
	p.DeletedAt = &now
	p.IsActive = false
}

func (p *Pack) State() LifecycleState {
	return lifecycleState(p.IsActive, p.DeletedAt)
}

func (p *Pack) SoftDelete(now time.Time) {
	p.DeletedAt = &now
	p.IsActive = false
}

func (s *Salon) State() LifecycleState {
	return lifecycleState(s.IsActive, s.DeletedAt)
}

func (s *Salon) SoftDelete(now time.Time) {
	s.DeletedAt = &now
	s.IsActive = false
}
