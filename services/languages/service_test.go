package languages

import (
	"context"
	"fmt"
	"testing"

	"jwmeeting-backend/lib/scrapers/jworg"
	"jwmeeting-backend/lib/testutil"
	"jwmeeting-backend/services/languages/db"

	"github.com/stretchr/testify/require"
)

type fakeScraper struct {
	languages []jworg.Language
	names     map[string]string
	namesErr  error
}

func (f fakeScraper) SitemapLanguages(ctx context.Context) ([]jworg.Language, error) {
	return f.languages, nil
}

func (f fakeScraper) HomepageLanguageNames(ctx context.Context) (map[string]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	return f.names, nil
}

func TestSync(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "languages",
		DbSchema: db.Schema,
	})
	defer cleanup()

	scraper := fakeScraper{
		languages: []jworg.Language{{Code: "es"}, {Code: "en"}, {Code: "de"}},
		names: map[string]string{
			"es": "español",
			"en": "English",
			// names for codes the sitemap never reported do not
			// create rows
			"fr": "français",
		},
	}
	service := NewService(res.DB, scraper)
	ctx := context.Background()

	result, err := service.Sync(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, result.Discovered)
	require.Equal(t, 3, result.Upserted)
	require.Equal(t, 2, result.NamesUpdated)

	stored, err := service.Languages(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	require.Equal(t, "de", stored[0].Code)
	require.Equal(t, "", stored[0].Name)
	require.Equal(t, "en", stored[1].Code)
	require.Equal(t, "English", stored[1].Name)
	require.Equal(t, "es", stored[2].Code)
	require.Equal(t, "español", stored[2].Name)
	for _, language := range stored {
		require.Equal(t, "goScraper", language.ModifiedBy)
		require.NotZero(t, language.UpdatedAt)
	}
}

func TestSyncUpsertIsIdempotent(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "languages:idempotent",
		DbSchema: db.Schema,
	})
	defer cleanup()

	ctx := context.Background()
	service := NewService(res.DB, fakeScraper{
		languages: []jworg.Language{{Code: "es"}, {Code: "en"}},
		names:     map[string]string{"es": "español"},
	})
	_, err := service.Sync(ctx)
	require.NoError(t, err)

	// a later run that cannot reach the homepage only refreshes
	// modified_by and updated_at
	resync := NewService(res.DB, fakeScraper{
		languages: []jworg.Language{{Code: "es"}, {Code: "en"}},
		namesErr:  fmt.Errorf("blocked by bot detection"),
	})
	_, err = resync.Sync(ctx)
	require.NoError(t, err)

	qry := db.New(res.DB)
	count, err := qry.CountLanguages(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	// a resync must not clobber a previously scraped name
	language, err := qry.GetLanguage(ctx, "es")
	require.NoError(t, err)
	require.Equal(t, "español", language.Name)
}

func TestSyncNameScrapeFailureIsNotFatal(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "languages:names-failure",
		DbSchema: db.Schema,
	})
	defer cleanup()

	scraper := fakeScraper{
		languages: []jworg.Language{{Code: "es"}},
		namesErr:  fmt.Errorf("blocked by bot detection"),
	}
	service := NewService(res.DB, scraper)

	result, err := service.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, result.Upserted)
	require.Equal(t, 0, result.NamesUpdated)
}

func TestSyncEmptySitemapAborts(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "languages:empty",
		DbSchema: db.Schema,
	})
	defer cleanup()

	service := NewService(res.DB, fakeScraper{})
	_, err := service.Sync(context.Background())
	require.Error(t, err)
}
