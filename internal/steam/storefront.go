package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// featuredResponse is the shape of /api/featuredcategories.
type featuredResponse struct {
	TopSellers  featuredSection `json:"top_sellers"`
	NewReleases featuredSection `json:"new_releases"`
	Specials    featuredSection `json:"specials"`
}

type featuredSection struct {
	Items []featuredItem `json:"items"`
}

type featuredItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	HeaderImage string `json:"header_image"`
	LargeImage  string `json:"large_capsule_image"`
	FinalPrice  int    `json:"final_price"` // cents
	Discounted  bool   `json:"discounted"`
	Currency    string `json:"currency"`
}

// searchResponse is the shape of /api/storesearch.
type searchResponse struct {
	Total int `json:"total"`
	Items []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		TinyImage string `json:"tiny_image"`
		Price     *struct {
			Currency string `json:"currency"`
			Final    int    `json:"final"`
		} `json:"price"`
	} `json:"items"`
}

// detailsResponse is the shape of /api/appdetails, keyed by app id.
type detailsResponse map[string]struct {
	Success bool        `json:"success"`
	Data    detailsData `json:"data"`
}

type detailsData struct {
	SteamAppID       int    `json:"steam_appid"`
	Name             string `json:"name"`
	HeaderImage      string `json:"header_image"`
	IsFree           bool   `json:"is_free"`
	ShortDescription string `json:"short_description"`
	PriceOverview    *struct {
		Currency string `json:"currency"`
		Final    int    `json:"final"`
	} `json:"price_overview"`
	Genres []struct {
		Description string `json:"description"`
	} `json:"genres"`
	Categories []struct {
		Description string `json:"description"`
	} `json:"categories"`
	ReleaseDate *struct {
		ComingSoon bool   `json:"coming_soon"`
		Date       string `json:"date"`
	} `json:"release_date"`
	Recommendations *struct {
		Total int `json:"total"`
	} `json:"recommendations"`
	Screenshots []struct {
		ID            int    `json:"id"`
		PathFull      string `json:"path_full"`
		PathThumbnail string `json:"path_thumbnail"`
	} `json:"screenshots"`
	Movies []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		Thumbnail string `json:"thumbnail"`
		WebM      *struct {
			Max string `json:"max"`
		} `json:"webm"`
		MP4 *struct {
			Max string `json:"max"`
		} `json:"mp4"`
	} `json:"movies"`
	Developers []string `json:"developers"`
	Publishers []string `json:"publishers"`
}

func (c *Client) featured(ctx context.Context, pick func(featuredResponse) featuredSection, limit int) ([]AppRecord, error) {
	var fr featuredResponse
	u := c.StoreBase + "/api/featuredcategories?cc=us&l=en"
	if err := c.getJSONRetry(ctx, u, &fr); err != nil {
		return nil, fmt.Errorf("featuredcategories: %w", err)
	}

	section := pick(fr)
	out := make([]AppRecord, 0, limit)
	for _, it := range section.Items {
		if len(out) >= limit {
			break
		}
		img := it.HeaderImage
		if img == "" {
			img = it.LargeImage
		}
		if img == "" {
			img = headerImageURL(it.ID)
		}
		price := it.FinalPrice
		out = append(out, AppRecord{
			AppID:       it.ID,
			Name:        it.Name,
			HeaderImage: img,
			PriceCents:  &price,
			Currency:    it.Currency,
			IsFree:      it.FinalPrice == 0,
		})
	}
	return out, nil
}

// Popular returns the storefront's current top sellers.
func (c *Client) Popular(ctx context.Context, limit int) ([]AppRecord, error) {
	return c.featured(ctx, func(fr featuredResponse) featuredSection { return fr.TopSellers }, limit)
}

// NewReleases returns the storefront's new release list.
func (c *Client) NewReleases(ctx context.Context, limit int) ([]AppRecord, error) {
	return c.featured(ctx, func(fr featuredResponse) featuredSection { return fr.NewReleases }, limit)
}

// Search queries the storefront search endpoint.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]AppRecord, error) {
	u := c.StoreBase + "/api/storesearch/?cc=us&l=en&term=" + url.QueryEscape(query)

	var sr searchResponse
	if err := c.getJSONRetry(ctx, u, &sr); err != nil {
		return nil, fmt.Errorf("storesearch: %w", err)
	}

	out := make([]AppRecord, 0, limit)
	for _, it := range sr.Items {
		if len(out) >= limit {
			break
		}
		rec := AppRecord{
			AppID:       it.ID,
			Name:        it.Name,
			HeaderImage: headerImageURL(it.ID),
		}
		if it.TinyImage != "" {
			rec.HeaderImage = it.TinyImage
		}
		if it.Price != nil {
			p := it.Price.Final
			rec.PriceCents = &p
			rec.Currency = it.Price.Currency
		} else {
			rec.IsFree = true
		}
		out = append(out, rec)
	}
	return out, nil
}

// AppDetails fetches the full record for one app. Returns ErrNotFound when
// the storefront reports no entry for the id.
func (c *Client) AppDetails(ctx context.Context, appID int) (*AppRecord, error) {
	u := c.StoreBase + "/api/appdetails?cc=us&l=en&appids=" + strconv.Itoa(appID)

	var dr detailsResponse
	if err := c.getJSONRetry(ctx, u, &dr); err != nil {
		return nil, fmt.Errorf("appdetails %d: %w", appID, err)
	}

	entry, ok := dr[strconv.Itoa(appID)]
	if !ok || !entry.Success {
		return nil, fmt.Errorf("appdetails %d: %w", appID, ErrNotFound)
	}

	rec := fromDetails(entry.Data)
	if rec.AppID == 0 {
		rec.AppID = appID
	}
	return &rec, nil
}

// Related finds games sharing the first genre of the given app. The app
// itself is excluded from the result.
func (c *Client) Related(ctx context.Context, appID, limit int) ([]AppRecord, error) {
	detail, err := c.AppDetails(ctx, appID)
	if err != nil {
		return nil, err
	}
	if len(detail.Genres) == 0 {
		return []AppRecord{}, nil
	}

	// over-fetch so the excluded app doesn't shrink the result
	same, err := c.ByGenre(ctx, detail.Genres[0], limit+1)
	if err != nil {
		return nil, err
	}

	out := make([]AppRecord, 0, limit)
	for _, rec := range same {
		if rec.AppID == appID {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, rec)
	}
	return out, nil
}

func fromDetails(d detailsData) AppRecord {
	rec := AppRecord{
		AppID:            d.SteamAppID,
		Name:             d.Name,
		HeaderImage:      d.HeaderImage,
		ShortDescription: d.ShortDescription,
		IsFree:           d.IsFree,
		Developers:       d.Developers,
		Publishers:       d.Publishers,
	}

	if d.PriceOverview != nil {
		p := d.PriceOverview.Final
		rec.PriceCents = &p
		rec.Currency = d.PriceOverview.Currency
	}

	for _, g := range d.Genres {
		if g.Description != "" {
			rec.Genres = append(rec.Genres, g.Description)
		}
	}
	for _, cat := range d.Categories {
		if cat.Description != "" {
			rec.Tags = append(rec.Tags, cat.Description)
		}
	}

	if d.ReleaseDate != nil {
		rec.ReleaseDate = d.ReleaseDate.Date
		rec.ComingSoon = d.ReleaseDate.ComingSoon
	}
	if d.Recommendations != nil {
		rec.ReviewCount = d.Recommendations.Total
	}

	for _, s := range d.Screenshots {
		rec.Screenshots = append(rec.Screenshots, ScreenshotRecord{
			ID:        s.ID,
			Path:      s.PathFull,
			Thumbnail: s.PathThumbnail,
		})
	}
	for _, m := range d.Movies {
		mv := MovieRecord{ID: m.ID, Name: m.Name, Thumbnail: m.Thumbnail}
		if m.WebM != nil {
			mv.WebM = m.WebM.Max
		}
		if m.MP4 != nil {
			mv.MP4 = m.MP4.Max
		}
		rec.Movies = append(rec.Movies, mv)
	}

	return rec
}
