package domain

// Theme is a colour palette. Colours are hex strings.
type Theme struct {
	ID         string
	Name       string
	Background string
	Primary    string
	Secondary  string
	UI         string
	IsDark     bool
}

// Themes is the built-in palette registry. The first entry is the fallback.
var Themes = []Theme{
	{ID: "strikt-noir", Name: "Strikt Noir", Background: "#222222", Primary: "#E57373", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "obsidian-pulse", Name: "Obsidian Pulse", Background: "#222222", Primary: "#D32F2F", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "carbon-zen", Name: "Carbon Zen", Background: "#222222", Primary: "#66BB6A", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "slate-discipline", Name: "Slate Discipline", Background: "#222222", Primary: "#EF5350", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "midnight-signal", Name: "Midnight Signal", Background: "#222222", Primary: "#4FC3F7", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "graphite-focus", Name: "Graphite Focus", Background: "#222222", Primary: "#FFB74D", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "void-rhythm", Name: "Void Rhythm", Background: "#222222", Primary: "#9575CD", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "iron-tempo", Name: "Iron Tempo", Background: "#222222", Primary: "#FDD835", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "nightframe", Name: "Nightframe", Background: "#222222", Primary: "#4DB6AC", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},
	{ID: "monolith-redline", Name: "Monolith Redline", Background: "#222222", Primary: "#F06292", Secondary: "#E0E0E0", UI: "#303030", IsDark: true},

	{ID: "ivory-focus", Name: "Ivory Focus", Background: "#F2F2F2", Primary: "#E57373", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "pearl-discipline", Name: "Pearl Discipline", Background: "#F2F2F2", Primary: "#EF5350", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "cloudline", Name: "Cloudline", Background: "#F2F2F2", Primary: "#64B5F6", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "alpine-signal", Name: "Alpine Signal", Background: "#F2F2F2", Primary: "#4FC3F7", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "sandstone", Name: "Sandstone", Background: "#F2F2F2", Primary: "#FFB74D", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "frostline", Name: "Frostline", Background: "#F2F2F2", Primary: "#4DB6AC", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "aurora-plain", Name: "Aurora Plain", Background: "#F2F2F2", Primary: "#9575CD", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "solar-crisp", Name: "Solar Crisp", Background: "#F2F2F2", Primary: "#FBC02D", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "mistframe", Name: "Mistframe", Background: "#F2F2F2", Primary: "#81C784", Secondary: "#333333", UI: "#EAEAEA"},
	{ID: "porcelain-redline", Name: "Porcelain Redline", Background: "#F2F2F2", Primary: "#F06292", Secondary: "#333333", UI: "#EAEAEA"},
}

// LookupTheme finds a theme by id.
func LookupTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// ResolveTheme returns the theme for id, or the first theme when unknown.
func ResolveTheme(id string) Theme {
	if t, ok := LookupTheme(id); ok {
		return t
	}
	return Themes[0]
}
