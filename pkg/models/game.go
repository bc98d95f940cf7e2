package models

// Game is the normalized, internal form of a game entry used by the
// catalog layer and returned to clients.
//
// All upstream shapes are mapped into this structure first; every field
// has a usable default so a Game is structurally valid even when the
// upstream record was mostly empty. ID is the only field that signals
// "invalid": a zero ID means the record should be filtered out.
type Game struct {
	ID          int          `json:"id"`          // upstream-assigned app id; 0 = invalid
	Name        string       `json:"name"`        // display name
	Image       string       `json:"image"`       // header/cover image URL
	Rating      *float64     `json:"rating"`      // 0..5, nil when unknown
	ReviewCount int          `json:"reviewCount"` // total review count (>= 0)
	Price       string       `json:"price"`       // display string, e.g. "Free to Play" or "$19.99"
	Tags        []string     `json:"tags"`        // ordered genre/tag names, may be empty
	ReleaseDate string       `json:"releaseDate"` // ISO-ish date string, may be empty
	Description string       `json:"description"` // short description, may be empty
	Screenshots []Screenshot `json:"screenshots"`
	Movies      []Movie      `json:"movies"`
	Developers  []string     `json:"developers"`
	Publishers  []string     `json:"publishers"`
}

// Screenshot is a single media still attached to a game.
type Screenshot struct {
	ID        int    `json:"id"`
	Path      string `json:"path"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Movie is a single trailer/video attached to a game.
type Movie struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
	WebM      string `json:"webm,omitempty"`
	MP4       string `json:"mp4,omitempty"`
}
