package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Bella's Salon & Spa!!", "bella-s-salon-spa"},
		{"Simple", "simple"},
		{"  spaced   out  ", "spaced-out"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
		{"salon--de--paris", "salon-de-paris"},
	}
	for _, c := range cases {
		if got := Slugify(c.name); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestSlugSetClaim(t *testing.T) {
	set := NewSlugSet()

	first := set.Claim("Bella's Salon & Spa!!")
	if first != "bella-s-salon-spa" {
		t.Fatalf("first claim = %q, want bella-s-salon-spa", first)
	}

	second := set.Claim("Bella's Salon & Spa!!")
	if second != "bella-s-salon-spa-1" {
		t.Fatalf("second claim = %q, want bella-s-salon-spa-1", second)
	}

	third := set.Claim("Bella's Salon & Spa!!")
	if third != "bella-s-salon-spa-2" {
		t.Fatalf("third claim = %q, want bella-s-salon-spa-2", third)
	}
}

func TestSlugSetReserve(t *testing.T) {
	set := NewSlugSet()
	set.Reserve("glow-studio")

	if got := set.Claim("Glow Studio"); got != "glow-studio-1" {
		t.Errorf("claim after reserve = %q, want glow-studio-1", got)
	}
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"glow-studio": true, "glow-studio-1": true}
	got := UniqueSlug("Glow Studio", func(s string) bool { return taken[s] })
	if got != "glow-studio-2" {
		t.Errorf("UniqueSlug = %q, want glow-studio-2", got)
	}
}
