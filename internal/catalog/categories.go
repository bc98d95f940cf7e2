package catalog

import (
	"sort"
	"strings"
)

// categoryGenres maps site category slugs to upstream genre names.
// Read-only after init, safe for concurrent access. Several slugs share a
// genre on purpose (e.g. puzzle and arcade both approximate "Casual");
// the table is a product artifact, not derived data.
var categoryGenres = map[string]string{
	"action":       "Action",
	"adventure":    "Adventure",
	"rpg":          "RPG",
	"strategy":     "Strategy",
	"simulation":   "Simulation",
	"sports":       "Sports",
	"racing":       "Racing",
	"indie":        "Indie",
	"casual":       "Casual",
	"puzzle":       "Casual",
	"arcade":       "Casual",
	"multiplayer":  "Massively Multiplayer",
	"free":         "Free to Play",
	"early-access": "Early Access",
}

// GenreForCategory resolves a category slug to its upstream genre name.
func GenreForCategory(category string) (string, bool) {
	g, ok := categoryGenres[strings.ToLower(strings.TrimSpace(category))]
	return g, ok
}

// Categories lists the known category slugs in sorted order.
func Categories() []string {
	out := make([]string, 0, len(categoryGenres))
	for c := range categoryGenres {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
