package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenreForCategory(t *testing.T) {
	g, ok := GenreForCategory("action")
	require.True(t, ok)
	require.Equal(t, "Action", g)

	// lookups are case- and whitespace-insensitive
	g, ok = GenreForCategory("  RPG ")
	require.True(t, ok)
	require.Equal(t, "RPG", g)

	_, ok = GenreForCategory("unknowncat")
	require.False(t, ok)
}

func TestCategoryCollisionsPreserved(t *testing.T) {
	// puzzle and arcade intentionally share the Casual genre
	for _, slug := range []string{"casual", "puzzle", "arcade"} {
		g, ok := GenreForCategory(slug)
		require.True(t, ok)
		require.Equal(t, "Casual", g)
	}
}

func TestCategoriesSorted(t *testing.T) {
	cats := Categories()
	require.NotEmpty(t, cats)
	for i := 1; i < len(cats); i++ {
		require.Less(t, cats[i-1], cats[i])
	}
}
