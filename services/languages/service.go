package languages

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"jwmeeting-backend/lib/scrapers/jworg"
	"jwmeeting-backend/services/languages/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/languages")

// identifier written to the modified_by column of every upserted row
const modifiedByIdentifier = "goScraper"

// Scraper is the language discovery surface the service depends on.
type Scraper interface {
	SitemapLanguages(ctx context.Context) ([]jworg.Language, error)
	HomepageLanguageNames(ctx context.Context) (map[string]string, error)
}

type Service struct {
	db      *sql.DB
	qry     *db.Queries
	scraper Scraper
}

func NewService(database *sql.DB, scraper Scraper) Service {
	return Service{
		db:      database,
		qry:     db.New(database),
		scraper: scraper,
	}
}

type SyncResult struct {
	Discovered   int
	Upserted     int
	NamesUpdated int
}

// Sync discovers language codes from the sitemap and upserts them,
// then fills in native display names from the homepage metadata.
// Name updates are best effort, a sync that only lands codes still
// succeeds.
func (s Service) Sync(ctx context.Context) (SyncResult, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()

	languages, err := s.scraper.SitemapLanguages(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncResult{}, err
	}
	if len(languages) == 0 {
		err := fmt.Errorf("the sitemap yielded no languages")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncResult{}, err
	}

	result := SyncResult{Discovered: len(languages)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncResult{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := time.Now().Unix()
	for _, language := range languages {
		err := txqry.UpsertLanguage(ctx, db.UpsertLanguageParams{
			Code:       language.Code,
			ModifiedBy: modifiedByIdentifier,
			UpdatedAt:  now,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return SyncResult{}, err
		}
		result.Upserted++
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SyncResult{}, err
	}

	names, err := s.scraper.HomepageLanguageNames(ctx)
	if err != nil {
		// codes already landed, names can catch up on a later run
		slog.WarnContext(ctx, "failed to scrape language names", "err", err)
		span.RecordError(err)
		return result, nil
	}

	for code, name := range names {
		updated, err := s.qry.SetLanguageName(ctx, db.SetLanguageNameParams{
			Name: name,
			Code: code,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to update language name", "code", code, "err", err)
			continue
		}
		if updated > 0 {
			result.NamesUpdated++
		}
	}

	span.SetAttributes(
		attribute.Int("discovered", result.Discovered),
		attribute.Int("upserted", result.Upserted),
		attribute.Int("names_updated", result.NamesUpdated),
	)
	return result, nil
}

// Languages lists every stored language in code order.
func (s Service) Languages(ctx context.Context) ([]db.Language, error) {
	ctx, span := tracer.Start(ctx, "Languages")
	defer span.End()

	languages, err := s.qry.ListLanguages(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return languages, nil
}
