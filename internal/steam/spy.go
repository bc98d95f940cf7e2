package steam

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// spyRecord is one entry of a SteamSpy response. Price is a string of
// cents; developer/publisher are comma-joined lists.
type spyRecord struct {
	AppID     int    `json:"appid"`
	Name      string `json:"name"`
	Developer string `json:"developer"`
	Publisher string `json:"publisher"`
	Positive  int    `json:"positive"`
	Negative  int    `json:"negative"`
	Price     string `json:"price"`
}

func (c *Client) spyList(ctx context.Context, request string, extra url.Values, limit int) ([]AppRecord, error) {
	u := c.SpyBase + "/api.php?request=" + request
	for k, vs := range extra {
		for _, v := range vs {
			u += "&" + k + "=" + url.QueryEscape(v)
		}
	}

	var raw map[string]spyRecord
	if err := c.getJSONRetry(ctx, u, &raw); err != nil {
		return nil, fmt.Errorf("steamspy %s: %w", request, err)
	}

	recs := make([]AppRecord, 0, len(raw))
	for _, sr := range raw {
		if sr.AppID == 0 {
			continue
		}
		rec := AppRecord{
			AppID:       sr.AppID,
			Name:        sr.Name,
			HeaderImage: headerImageURL(sr.AppID),
			Developers:  splitNames(sr.Developer),
			Publishers:  splitNames(sr.Publisher),
		}
		pos, neg := sr.Positive, sr.Negative
		rec.Positive = &pos
		rec.Negative = &neg
		rec.ReviewCount = pos + neg
		if cents, err := strconv.Atoi(sr.Price); err == nil {
			rec.PriceCents = &cents
			rec.Currency = "USD"
			rec.IsFree = cents == 0
		}
		recs = append(recs, rec)
	}

	// map iteration order is random; rank by review volume for stability
	sort.Slice(recs, func(i, j int) bool { return recs[i].ReviewCount > recs[j].ReviewCount })

	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// Trending returns the most-played games of the last two weeks.
func (c *Client) Trending(ctx context.Context, limit int) ([]AppRecord, error) {
	return c.spyList(ctx, "top100in2weeks", nil, limit)
}

// TopRated returns the all-time top list.
func (c *Client) TopRated(ctx context.Context, limit int) ([]AppRecord, error) {
	return c.spyList(ctx, "top100forever", nil, limit)
}

// ByGenre returns games tagged with the given upstream genre name.
func (c *Client) ByGenre(ctx context.Context, genre string, limit int) ([]AppRecord, error) {
	recs, err := c.spyList(ctx, "genre", url.Values{"genre": {genre}}, limit)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].Genres = []string{genre}
	}
	return recs, nil
}

func splitNames(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
