package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pickaname/internal/models"
)

// seedCatalog installs a small fixed names catalog:
//
//	Maria  F   USA 500, Italy 800
//	Mario  ?M  Italy 300
//	Marion ?   USA 50
//	Mina   ?F  USA 120
//	Sam    M   USA 900
//
// Maria, Mario and Marion share one similarity group.
func seedCatalog(t *testing.T, database *gorm.DB) {
	t.Helper()

	names := []models.Name{
		{ID: 1, Name: "Maria", Gender: "F"},
		{ID: 2, Name: "Mario", Gender: "?M"},
		{ID: 3, Name: "Marion", Gender: "?"},
		{ID: 4, Name: "Mina", Gender: "?F"},
		{ID: 5, Name: "Sam", Gender: "M"},
	}
	require.NoError(t, database.Create(&names).Error)

	countries := []models.Country{
		{ID: 1, Country: "USA"},
		{ID: 2, Country: "Italy"},
	}
	require.NoError(t, database.Create(&countries).Error)

	population := []models.Population{
		{NameID: 1, CountryID: 1, Pop: 500},
		{NameID: 1, CountryID: 2, Pop: 800},
		{NameID: 2, CountryID: 2, Pop: 300},
		{NameID: 3, CountryID: 1, Pop: 50},
		{NameID: 4, CountryID: 1, Pop: 120},
		{NameID: 5, CountryID: 1, Pop: 900},
	}
	require.NoError(t, database.Create(&population).Error)

	similar := []models.SimilarName{
		{NameID: 1, GroupID: 1},
		{NameID: 2, GroupID: 1},
		{NameID: 3, GroupID: 1},
	}
	require.NoError(t, database.Create(&similar).Error)
}

func entryNames(entries []NameEntry) []string {
	found := make([]string, 0, len(entries))
	for _, entry := range entries {
		found = append(found, entry.Name)
	}
	return found
}

func TestSearchFoldsCountriesPerName(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)

	entries, err := names.Search(SearchQuery{Letter: "maria"}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Maria", entries[0].Name)
	require.ElementsMatch(t, []string{"USA", "Italy"}, entries[0].Countries)
	require.ElementsMatch(t, []int{500, 800}, entries[0].Populations)
	require.Len(t, entries[0].Populations, len(entries[0].Countries))
}

func TestSearchGenderCoversUncertainNotation(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)

	entries, err := names.Search(SearchQuery{Letter: "m", Genders: []string{"f"}}, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Maria", "Mina"}, entryNames(entries))

	entries, err = names.Search(SearchQuery{Letter: "m", Genders: []string{"?"}}, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Mario", "Marion", "Mina"}, entryNames(entries))
}

func TestSearchAnywhereMatchesSubstring(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)

	entries, err := names.Search(SearchQuery{Letter: "r", Anywhere: true}, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Maria", "Mario", "Marion"}, entryNames(entries))
}

func TestSearchNormalizesCountrySpelling(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)

	entries, err := names.Search(SearchQuery{Countries: []string{"us"}}, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Maria", "Marion", "Mina", "Sam"}, entryNames(entries))

	entries, err = names.Search(SearchQuery{Countries: []string{"iTaLy"}}, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Maria", "Mario"}, entryNames(entries))
}

func TestSearchExcludesRatedNamesForUser(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)
	user := createTestUser(t, repos, "rater", "long-password")

	require.NoError(t, repos.Preferences.AddLikes(user.ID, []uint{1}))
	require.NoError(t, repos.Preferences.AddDislikes(user.ID, []uint{5}))

	entries, err := names.Search(SearchQuery{}, &user.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Mario", "Marion", "Mina"}, entryNames(entries))

	// Guests see the full catalog.
	entries, err = names.Search(SearchQuery{}, nil)
	require.NoError(t, err)
	require.Len(t, entries, 5)
}

func TestSimilarReturnsGroupWithoutSelf(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)

	entries, err := names.Similar(1, nil)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Mario", "Marion"}, entryNames(entries))

	// Names with no similarity group have no variants.
	entries, err = names.Similar(5, nil)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLikedAndDislikedLists(t *testing.T) {
	t.Parallel()

	database, repos := openTestDB(t)
	seedCatalog(t, database)
	names := NewNameService(repos.Names)
	user := createTestUser(t, repos, "lister", "long-password")

	require.NoError(t, repos.Preferences.AddLikes(user.ID, []uint{1, 2}))
	require.NoError(t, repos.Preferences.AddDislikes(user.ID, []uint{5}))

	liked, err := names.Liked(user.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Maria", "Mario"}, entryNames(liked))

	disliked, err := names.Disliked(user.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"Sam"}, entryNames(disliked))
}
