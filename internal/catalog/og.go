package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamehub/internal/steam"
)

// OGImage serves the share-card image for a game: a redirect to the
// game's primary image when one exists, otherwise a plain-text
// placeholder so link unfurlers always get a bounded response.
func (h *Handler) OGImage(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid game id")
		return
	}

	rec, err := h.Store.AppDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, steam.ErrNotFound) {
			c.String(http.StatusNotFound, "game not found")
			return
		}
		h.Logger.Warn("og image lookup failed",
			zap.Int("id", id),
			zap.Error(err))
		c.String(http.StatusOK, "GameHub: game %d", id)
		return
	}

	game := FormatGame(*rec)
	if game.Image == "" {
		c.String(http.StatusOK, "%s on GameHub", game.Name)
		return
	}

	c.Redirect(http.StatusFound, game.Image)
}
