package models

import (
	"testing"
	"time"
)

func TestProductState(t *testing.T) {
	now := time.Now()

	p := Product{IsActive: true}
	if got := p.State(); got != StateActive {
		t.Errorf("active product state = %q, want %q", got, StateActive)
	}

	p.IsActive = false
	if got := p.State(); got != StateInactive {
		t.Errorf("inactive product state = %q, want %q", got, StateInactive)
	}

	p.SoftDelete(now)
	if got := p.State(); got != StateDeleted {
		t.Errorf("deleted product state = %q, want %q", got, StateDeleted)
	}
	if p.IsActive {
		t.Error("soft delete must clear is_active")
	}
}

// A deleted row is deleted no matter what the active flag says.
func TestDeletedWinsOverActive(t *testing.T) {
	now := time.Now()
	p := Pack{IsActive: true, DeletedAt: &now}
	if got := p.State(); got != StateDeleted {
		t.Errorf("state = %q, want %q", got, StateDeleted)
	}
}

func TestSalonState(t *testing.T) {
	s := Salon{IsActive: true}
	if got := s.State(); got != StateActive {
		t.Errorf("salon state = %q, want %q", got, StateActive)
	}
	s.SoftDelete(time.Now())
	if got := s.State(); got != StateDeleted {
		t.Errorf("salon state after delete = %q, want %q", got, StateDeleted)
	}
}
