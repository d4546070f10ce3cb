package config

// Static catalogs for the salon web-client customization. These never change
// at runtime; salons pick one key from each.

type LayoutPattern struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

type ThemePalette struct {
	Name        string `json:"name"`
	Primary     string `json:"primary"`
	PrimaryDark string `json:"primaryDark"`
	Accent      string `json:"accent"`
	Background  string `json:"background"`
	Text        string `json:"text"`
	Category    string `json:"category"`
}

var LayoutPatterns = map[string]LayoutPattern{
	"classic": {
		Name:        "Classic",
		Description: "Traditional vertical layout with sidebar navigation",
		Features:    []string{"Sidebar with logo and navigation", "Main content area with service cards", "Footer with contact info"},
	},
	"modern": {
		Name:        "Modern",
		Description: "Clean horizontal layout with top navigation bar",
		Features:    []string{"Fixed header with logo and menu", "Hero section with call-to-action", "Grid-based service display"},
	},
	"minimal": {
		Name:        "Minimal",
		Description: "Simplified single-page layout with minimal elements",
		Features:    []string{"Centered logo and title", "Simple service list", "One-click booking focus"},
	},
	"compact": {
		Name:        "Compact",
		Description: "Dense layout for quick browsing and booking",
		Features:    []string{"Compact service cards", "Inline booking forms", "Sticky navigation bar"},
	},
	"elegant": {
		Name:        "Elegant",
		Description: "Luxurious layout with animations and transitions",
		Features:    []string{"Full-width imagery", "Smooth scroll transitions", "Serif typography"},
	},
}

var ThemePalettes = map[string]ThemePalette{
	"ocean":     {Name: "Ocean Breeze", Primary: "#0891b2", PrimaryDark: "#0e7490", Accent: "#06b6d4", Background: "#f0fdfa", Text: "#134e4a", Category: "Cool"},
	"sunset":    {Name: "Sunset Glow", Primary: "#f97316", PrimaryDark: "#ea580c", Accent: "#fbbf24", Background: "#fff7ed", Text: "#7c2d12", Category: "Warm"},
	"lavender":  {Name: "Lavender Dream", Primary: "#a855f7", PrimaryDark: "#9333ea", Accent: "#d946ef", Background: "#faf5ff", Text: "#581c87", Category: "Vibrant"},
	"forest":    {Name: "Forest Green", Primary: "#16a34a", PrimaryDark: "#15803d", Accent: "#4ade80", Background: "#f0fdf4", Text: "#14532d", Category: "Natural"},
	"rose":      {Name: "Rose Garden", Primary: "#e11d48", PrimaryDark: "#be123c", Accent: "#fb7185", Background: "#fff1f2", Text: "#881337", Category: "Warm"},
	"midnight":  {Name: "Midnight Blue", Primary: "#1e40af", PrimaryDark: "#1e3a8a", Accent: "#60a5fa", Background: "#eff6ff", Text: "#172554", Category: "Cool"},
	"champagne": {Name: "Champagne Gold", Primary: "#ca8a04", PrimaryDark: "#a16207", Accent: "#facc15", Background: "#fefce8", Text: "#713f12", Category: "Elegant"},
	"coral":     {Name: "Coral Reef", Primary: "#f43f5e", PrimaryDark: "#e11d48", Accent: "#fda4af", Background: "#fff1f2", Text: "#9f1239", Category: "Vibrant"},
}

func ValidLayoutPattern(key string) bool {
	_, ok := LayoutPatterns[key]
	return ok
}

func ValidThemePalette(key string) bool {
	_, ok := ThemePalettes[key]
	return ok
}
