package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gamehub/internal/steam"
)

func TestFormatGameEmptyRecord(t *testing.T) {
	g := FormatGame(steam.AppRecord{})

	require.Equal(t, 0, g.ID)
	require.Equal(t, "Unknown Game", g.Name)
	require.Nil(t, g.Rating)
	require.Equal(t, 0, g.ReviewCount)
	require.Equal(t, "Free to Play", g.Price)
	require.NotNil(t, g.Tags)
	require.Empty(t, g.Tags)
	require.NotNil(t, g.Screenshots)
	require.NotNil(t, g.Movies)
	require.NotNil(t, g.Developers)
	require.NotNil(t, g.Publishers)
}

func TestFormatGameRating(t *testing.T) {
	pos, neg := 80, 20
	g := FormatGame(steam.AppRecord{AppID: 10, Positive: &pos, Negative: &neg})
	require.NotNil(t, g.Rating)
	require.InDelta(t, 4.0, *g.Rating, 0.001)

	zero := 0
	g = FormatGame(steam.AppRecord{AppID: 10, Positive: &zero, Negative: &zero})
	require.Nil(t, g.Rating, "zero total reviews means no rating")

	g = FormatGame(steam.AppRecord{AppID: 10})
	require.Nil(t, g.Rating, "missing counts mean no rating")
}

func TestFormatGamePrice(t *testing.T) {
	cents := 1999
	g := FormatGame(steam.AppRecord{AppID: 10, PriceCents: &cents, Currency: "USD"})
	require.Equal(t, "$19.99", g.Price)

	g = FormatGame(steam.AppRecord{AppID: 10, PriceCents: &cents, Currency: "EUR"})
	require.Equal(t, "EUR 19.99", g.Price)

	free := 0
	g = FormatGame(steam.AppRecord{AppID: 10, PriceCents: &free})
	require.Equal(t, "Free to Play", g.Price)

	g = FormatGame(steam.AppRecord{AppID: 10, IsFree: true, PriceCents: &cents})
	require.Equal(t, "Free to Play", g.Price)
}

func TestFormatGameTagsMergeAndDedup(t *testing.T) {
	g := FormatGame(steam.AppRecord{
		AppID:  10,
		Genres: []string{"Action", "Indie"},
		Tags:   []string{"Indie", "Co-op", ""},
	})
	require.Equal(t, []string{"Action", "Indie", "Co-op"}, g.Tags)
}

func TestFormatGameDerivesImage(t *testing.T) {
	g := FormatGame(steam.AppRecord{AppID: 440, Name: "Team Fortress 2"})
	require.Contains(t, g.Image, "440")

	g = FormatGame(steam.AppRecord{})
	require.Equal(t, "", g.Image, "invalid records get no derived image")
}

func TestFormatGameNegativeID(t *testing.T) {
	g := FormatGame(steam.AppRecord{AppID: -5, Name: "x"})
	require.Equal(t, 0, g.ID)
}
