package config

import "testing"

func TestValidLayoutPattern(t *testing.T) {
	for key := range LayoutPatterns {
		if !ValidLayoutPattern(key) {
			t.Errorf("ValidLayoutPattern(%q) = false", key)
		}
	}
	if ValidLayoutPattern("brutalist") {
		t.Error("unknown layout accepted")
	}
}

func TestValidThemePalette(t *testing.T) {
	if len(ThemePalettes) != 8 {
		t.Fatalf("expected 8 palettes, got %d", len(ThemePalettes))
	}
	for key := range ThemePalettes {
		if !ValidThemePalette(key) {
			t.Errorf("ValidThemePalette(%q) = false", key)
		}
	}
	if ValidThemePalette("neon") {
		t.Error("unknown palette accepted")
	}
}
