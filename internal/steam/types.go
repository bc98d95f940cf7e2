package steam

// AppRecord is the raw-ish union of the shapes the upstream endpoints
// return for a single game. List endpoints produce light records (mostly
// nil optionals); appdetails produces rich ones. Normalization into the
// canonical Game shape happens in the catalog formatter, not here.
type AppRecord struct {
	AppID            int
	Name             string
	HeaderImage      string
	ShortDescription string
	IsFree           bool
	PriceCents       *int   // final price in cents, nil = unknown
	Currency         string // e.g. "USD", empty = unknown
	Positive         *int   // positive review count, nil = unknown
	Negative         *int   // negative review count, nil = unknown
	ReviewCount      int
	Genres           []string
	Tags             []string
	ReleaseDate      string
	ComingSoon       bool
	Screenshots      []ScreenshotRecord
	Movies           []MovieRecord
	Developers       []string
	Publishers       []string
}

type ScreenshotRecord struct {
	ID        int
	Path      string
	Thumbnail string
}

type MovieRecord struct {
	ID        int
	Name      string
	Thumbnail string
	WebM      string
	MP4       string
}

// ReviewSummary is the query_summary block of the appreviews endpoint.
type ReviewSummary struct {
	NumReviews      int    `json:"num_reviews"`
	ReviewScore     int    `json:"review_score"`
	ReviewScoreDesc string `json:"review_score_desc"`
	TotalPositive   int    `json:"total_positive"`
	TotalNegative   int    `json:"total_negative"`
	TotalReviews    int    `json:"total_reviews"`
}
