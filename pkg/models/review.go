package models

// Review is an upstream user review, already mapped out of the raw
// appreviews payload. Reviews are read-only here: they are never stored,
// and their identifiers are derived from content at read time.
type Review struct {
	ID               string       `json:"id"` // derived rv_<gameId>_<12hex> identifier
	RecommendationID string       `json:"recommendationId"`
	Author           ReviewAuthor `json:"author"`
	Language         string       `json:"language,omitempty"`
	Text             string       `json:"text"`
	VotedUp          bool         `json:"votedUp"`
	VotesUp          int          `json:"votesUp"`
	TimestampCreated int64        `json:"timestampCreated"` // unix seconds
	TimestampUpdated int64        `json:"timestampUpdated,omitempty"`
	PlaytimeForever  int          `json:"playtimeForever,omitempty"` // minutes
}

// ReviewAuthor identifies the reviewer as reported by the upstream.
type ReviewAuthor struct {
	SteamID       string `json:"steamId"`
	NumGamesOwned int    `json:"numGamesOwned,omitempty"`
	NumReviews    int    `json:"numReviews,omitempty"`
}

// ReviewBreakdown is the optional review-summary enrichment attached to a
// game detail response. A failure to fetch it degrades only this field.
type ReviewBreakdown struct {
	TotalReviews       int     `json:"totalReviews"`
	PositiveReviews    int     `json:"positiveReviews"`
	NegativeReviews    int     `json:"negativeReviews"`
	PositivePercentage float64 `json:"positivePercentage"`
	NegativePercentage float64 `json:"negativePercentage"`
	ReviewScore        int     `json:"reviewScore"`
	ReviewScoreDesc    string  `json:"reviewScoreDesc"`
}
