package catalog

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamehub/internal/reviews"
	"gamehub/internal/steam"
	"gamehub/pkg/models"
)

type Handler struct {
	Store  Store
	Logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{Store: store, Logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/popular", h.popular)
	rg.GET("/trending", h.trending)
	rg.GET("/top-rated", h.topRated)
	rg.GET("/new-releases", h.newReleases)
	rg.GET("/category/:category", h.byCategory)
	rg.GET("/search", h.search)
	rg.GET("/:id", h.detail)
	rg.GET("/:id/related", h.related)
	rg.GET("/:id/reviews", h.listReviews)
}

// fetchList is the fetch signature shared by all list views.
type fetchList func(ctx context.Context, limit int) ([]steam.AppRecord, error)

// listView drives one list endpoint through its states: fetch upstream,
// format, and on any failure degrade through synthetic data down to the
// minimal record. The response is never a server error; the worst outcome
// is success=true with fallback=true.
func (h *Handler) listView(c *gin.Context, kind Kind, maxLimit int, fetch fetchList) {
	h.listViewTagged(c, kind, maxLimit, fetch, func(*models.Envelope) {})
}

func (h *Handler) popular(c *gin.Context) {
	h.listView(c, KindPopular, 20, h.Store.Popular)
}

func (h *Handler) trending(c *gin.Context) {
	h.listView(c, KindTrending, 20, h.Store.Trending)
}

func (h *Handler) topRated(c *gin.Context) {
	h.listView(c, KindTopRated, 20, h.Store.TopRated)
}

func (h *Handler) newReleases(c *gin.Context) {
	h.listView(c, KindNewReleases, 20, h.Store.NewReleases)
}

func (h *Handler) byCategory(c *gin.Context) {
	category := strings.TrimSpace(c.Param("category"))

	genre, ok := GenreForCategory(category)
	if !ok {
		c.JSON(http.StatusBadRequest, models.Envelope{
			Success: false,
			Data:    []models.Game{},
			Count:   models.IntPtr(0),
			Error:   "Invalid category: " + category,
		})
		return
	}

	h.listViewTagged(c, KindCategory, 50, func(ctx context.Context, limit int) ([]steam.AppRecord, error) {
		return h.Store.ByGenre(ctx, genre, limit)
	}, func(env *models.Envelope) {
		env.Category = category
	})
}

func (h *Handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, models.Envelope{
			Success: false,
			Data:    []models.Game{},
			Error:   "Search query is required",
		})
		return
	}

	h.listViewTagged(c, KindSearch, 20, func(ctx context.Context, limit int) ([]steam.AppRecord, error) {
		return h.Store.Search(ctx, query, limit)
	}, func(env *models.Envelope) {
		env.Query = query
	})
}

func (h *Handler) related(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	h.listViewTagged(c, KindRelated, 20, func(ctx context.Context, limit int) ([]steam.AppRecord, error) {
		return h.Store.Related(ctx, id, limit)
	}, func(env *models.Envelope) {
		env.Algorithm = "shared-genre"
	})
}

// listViewTagged is listView plus an envelope decorator for the
// category/query/algorithm tags.
func (h *Handler) listViewTagged(c *gin.Context, kind Kind, maxLimit int, fetch fetchList, tag func(*models.Envelope)) {
	limit := clampLimit(c.Query("limit"), 20, maxLimit)

	// over-fetch so records that fail formatting can be filtered out
	recs, err := fetch(c.Request.Context(), limit*2)
	games := formatValid(recs, limit)

	var env models.Envelope
	if err != nil || len(games) == 0 {
		if err == nil {
			err = errors.New("no formattable upstream records")
		}
		h.Logger.Warn("upstream fetch failed, serving fallback",
			zap.String("view", string(kind)),
			zap.Error(err))

		fb, tier := Degrade(kind, limit)
		env = models.Envelope{
			Success:  true,
			Data:     fb,
			Count:    models.IntPtr(len(fb)),
			Fallback: true,
			Message:  fallbackMessage(tier),
			Source:   string(kind),
		}
	} else {
		env = models.Envelope{
			Success: true,
			Data:    games,
			Count:   models.IntPtr(len(games)),
			Source:  string(kind),
		}
	}

	tag(&env)
	c.JSON(http.StatusOK, env)
}

// gameDetail is the detail payload: the game plus the optional
// review-summary enrichment.
type gameDetail struct {
	models.Game
	ReviewBreakdown *models.ReviewBreakdown `json:"reviewBreakdown,omitempty"`
}

// detail differs from the list views: there is no sensible synthetic
// substitute for a specific requested entity, so malformed and missing ids
// are reported as such. The review summary is fetched concurrently and its
// failure degrades only the reviewBreakdown field.
func (h *Handler) detail(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}

	type summaryResult struct {
		sum *steam.ReviewSummary
		err error
	}
	sumCh := make(chan summaryResult, 1)
	go func() {
		sum, err := h.Store.ReviewSummary(c.Request.Context(), id)
		sumCh <- summaryResult{sum, err}
	}()

	rec, err := h.Store.AppDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, steam.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Envelope{
				Success: false,
				Data:    nil,
				Error:   "Game not found",
			})
			return
		}
		h.Logger.Error("game detail fetch failed",
			zap.Int("id", id),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.Envelope{
			Success: false,
			Data:    nil,
			Error:   "Upstream catalog temporarily unavailable",
		})
		return
	}

	game := FormatGame(*rec)
	if game.ID == 0 {
		c.JSON(http.StatusNotFound, models.Envelope{
			Success: false,
			Data:    nil,
			Error:   "Game not found",
		})
		return
	}

	detail := gameDetail{Game: game}
	if sr := <-sumCh; sr.err == nil && sr.sum != nil {
		detail.ReviewBreakdown = breakdownOf(sr.sum)
	} else if sr.err != nil {
		// enrichment only; the primary payload stands
		h.Logger.Warn("review summary unavailable",
			zap.Int("id", id),
			zap.Error(sr.err))
	}

	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Data:    detail,
	})
}

func (h *Handler) listReviews(c *gin.Context) {
	id, ok := parseGameID(c)
	if !ok {
		return
	}
	limit := clampLimit(c.Query("limit"), 20, 50)

	revs, err := h.Store.Reviews(c.Request.Context(), id, limit)
	if err != nil {
		if errors.Is(err, steam.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.Envelope{
				Success: false,
				Data:    nil,
				Error:   "Game not found",
			})
			return
		}
		h.Logger.Error("review fetch failed",
			zap.Int("id", id),
			zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, models.Envelope{
			Success: false,
			Data:    nil,
			Error:   "Upstream catalog temporarily unavailable",
		})
		return
	}

	for i := range revs {
		revs[i].ID = reviews.Generate(revs[i], id)
	}

	c.JSON(http.StatusOK, models.Envelope{
		Success: true,
		Data:    revs,
		Count:   models.IntPtr(len(revs)),
	})
}

func breakdownOf(sum *steam.ReviewSummary) *models.ReviewBreakdown {
	bd := &models.ReviewBreakdown{
		TotalReviews:    sum.TotalReviews,
		PositiveReviews: sum.TotalPositive,
		NegativeReviews: sum.TotalNegative,
		ReviewScore:     sum.ReviewScore,
		ReviewScoreDesc: sum.ReviewScoreDesc,
	}
	if sum.TotalReviews > 0 {
		bd.PositivePercentage = roundPct(float64(sum.TotalPositive) / float64(sum.TotalReviews) * 100)
		bd.NegativePercentage = roundPct(float64(sum.TotalNegative) / float64(sum.TotalReviews) * 100)
	}
	return bd
}

func roundPct(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func fallbackMessage(tier Tier) string {
	if tier == TierMinimal {
		return "Catalog data is temporarily unavailable"
	}
	return "Showing placeholder data while the catalog recovers"
}

// formatValid formats upstream records, drops the structurally invalid
// ones (id 0), and truncates to limit.
func formatValid(recs []steam.AppRecord, limit int) []models.Game {
	games := make([]models.Game, 0, limit)
	for _, rec := range recs {
		g := FormatGame(rec)
		if g.ID == 0 {
			continue
		}
		games = append(games, g)
		if len(games) >= limit {
			break
		}
	}
	return games
}

// parseGameID validates the :id path param, writing the 400 envelope
// itself when the id is not a positive integer.
func parseGameID(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.Envelope{
			Success: false,
			Data:    nil,
			Error:   "Invalid game id",
		})
		return 0, false
	}
	return id, true
}

func clampLimit(raw string, def, max int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return min(def, max)
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return min(def, max)
	}
	if n > max {
		return max
	}
	return n
}
