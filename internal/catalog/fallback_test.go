package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSynthesizeBounds(t *testing.T) {
	cases := []struct {
		kind      Kind
		requested int
		want      int
	}{
		{KindPopular, 5, 5},
		{KindPopular, 20, 20},
		{KindPopular, 50, 20}, // list cap
		{KindRelated, 4, 4},
		{KindRelated, 50, 8}, // related cap
		{KindSearch, 0, 1},   // never empty
		{KindTrending, -3, 1},
	}
	for _, tc := range cases {
		got := Synthesize(tc.kind, tc.requested)
		require.Len(t, got, tc.want, "kind=%s requested=%d", tc.kind, tc.requested)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	a := Synthesize(KindPopular, 20)
	b := Synthesize(KindPopular, 20)
	require.Equal(t, a, b)

	// a shorter request is a prefix of a longer one
	short := Synthesize(KindPopular, 5)
	require.Equal(t, a[:5], short)
}

func TestSynthesizeSchemaValid(t *testing.T) {
	for _, kind := range []Kind{KindPopular, KindTrending, KindTopRated, KindNewReleases, KindCategory, KindSearch, KindRelated} {
		for i, g := range Synthesize(kind, 20) {
			require.Positive(t, g.ID, "kind=%s i=%d", kind, i)
			require.NotEmpty(t, g.Name)
			require.NotEmpty(t, g.Image)
			require.NotNil(t, g.Rating)
			require.GreaterOrEqual(t, *g.Rating, 0.0)
			require.LessOrEqual(t, *g.Rating, 5.0)
			require.NotEmpty(t, g.Price)
			require.NotEmpty(t, g.Tags)
			require.NotEmpty(t, g.ReleaseDate)
		}
	}
}

func TestSynthesizeDistinctIDsPerKind(t *testing.T) {
	seen := make(map[int]Kind)
	for _, kind := range []Kind{KindPopular, KindTrending, KindTopRated, KindNewReleases, KindCategory, KindSearch, KindRelated} {
		for _, g := range Synthesize(kind, 20) {
			prev, dup := seen[g.ID]
			require.False(t, dup, "id %d used by both %s and %s", g.ID, prev, kind)
			seen[g.ID] = kind
		}
	}
}

func TestMinimalAlwaysValid(t *testing.T) {
	g := Minimal(KindPopular)
	require.Positive(t, g.ID)
	require.NotEmpty(t, g.Name)
	require.NotNil(t, g.Rating)
}

func TestDegrade(t *testing.T) {
	games, tier := Degrade(KindRelated, 50)
	require.Equal(t, TierSynthetic, tier)
	require.Len(t, games, 8)

	games, tier = Degrade(KindPopular, 3)
	require.Equal(t, TierSynthetic, tier)
	require.Len(t, games, 3)
}
