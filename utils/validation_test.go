package utils

import "testing"

func TestValidatePhone(t *testing.T) {
	valid := []string{"+14155552671", "+91 98765 43210", "(415) 555-2671", "9876543210"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = false, want true", p)
		}
	}

	invalid := []string{"", "abc", "+0123456", "7"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = true, want false", p)
		}
	}
}
