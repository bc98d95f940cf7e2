package catalog

import (
	"context"

	"gamehub/internal/steam"
	"gamehub/pkg/models"
)

// Store is the upstream catalog collaborator. Every call is assumed slow
// and fallible; the handlers own all degradation behavior.
type Store interface {
	Popular(ctx context.Context, limit int) ([]steam.AppRecord, error)
	Trending(ctx context.Context, limit int) ([]steam.AppRecord, error)
	TopRated(ctx context.Context, limit int) ([]steam.AppRecord, error)
	NewReleases(ctx context.Context, limit int) ([]steam.AppRecord, error)
	ByGenre(ctx context.Context, genre string, limit int) ([]steam.AppRecord, error)
	Search(ctx context.Context, query string, limit int) ([]steam.AppRecord, error)
	Related(ctx context.Context, appID, limit int) ([]steam.AppRecord, error)
	AppDetails(ctx context.Context, appID int) (*steam.AppRecord, error)
	Reviews(ctx context.Context, appID, limit int) ([]models.Review, error)
	ReviewSummary(ctx context.Context, appID int) (*steam.ReviewSummary, error)
}
