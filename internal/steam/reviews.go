package steam

import (
	"context"
	"fmt"
	"strconv"

	"gamehub/pkg/models"
)

// reviewsResponse is the shape of /appreviews/<id>?json=1.
type reviewsResponse struct {
	Success      int           `json:"success"`
	QuerySummary ReviewSummary `json:"query_summary"`
	Reviews      []struct {
		RecommendationID string `json:"recommendationid"`
		Author           struct {
			SteamID         string `json:"steamid"`
			NumGamesOwned   int    `json:"num_games_owned"`
			NumReviews      int    `json:"num_reviews"`
			PlaytimeForever int    `json:"playtime_forever"`
		} `json:"author"`
		Language         string `json:"language"`
		Review           string `json:"review"`
		TimestampCreated int64  `json:"timestamp_created"`
		TimestampUpdated int64  `json:"timestamp_updated"`
		VotedUp          bool   `json:"voted_up"`
		VotesUp          int    `json:"votes_up"`
	} `json:"reviews"`
}

func (c *Client) appReviews(ctx context.Context, appID, perPage int) (*reviewsResponse, error) {
	u := c.StoreBase + "/appreviews/" + strconv.Itoa(appID) +
		"?json=1&language=all&purchase_type=all&num_per_page=" + strconv.Itoa(perPage)

	var rr reviewsResponse
	if err := c.getJSONRetry(ctx, u, &rr); err != nil {
		return nil, fmt.Errorf("appreviews %d: %w", appID, err)
	}
	if rr.Success != 1 {
		return nil, fmt.Errorf("appreviews %d: %w", appID, ErrNotFound)
	}
	return &rr, nil
}

// ReviewSummary fetches only the aggregate counts for an app.
func (c *Client) ReviewSummary(ctx context.Context, appID int) (*ReviewSummary, error) {
	rr, err := c.appReviews(ctx, appID, 0)
	if err != nil {
		return nil, err
	}
	sum := rr.QuerySummary
	return &sum, nil
}

// Reviews fetches up to limit individual reviews for an app. Identifiers
// are assigned later by the catalog layer.
func (c *Client) Reviews(ctx context.Context, appID, limit int) ([]models.Review, error) {
	rr, err := c.appReviews(ctx, appID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]models.Review, 0, len(rr.Reviews))
	for _, r := range rr.Reviews {
		if len(out) >= limit {
			break
		}
		out = append(out, models.Review{
			RecommendationID: r.RecommendationID,
			Author: models.ReviewAuthor{
				SteamID:       r.Author.SteamID,
				NumGamesOwned: r.Author.NumGamesOwned,
				NumReviews:    r.Author.NumReviews,
			},
			Language:         r.Language,
			Text:             r.Review,
			VotedUp:          r.VotedUp,
			VotesUp:          r.VotesUp,
			TimestampCreated: r.TimestampCreated,
			TimestampUpdated: r.TimestampUpdated,
			PlaytimeForever:  r.Author.PlaytimeForever,
		})
	}
	return out, nil
}
