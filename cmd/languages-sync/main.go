package main

import (
	"context"
	"log/slog"
	"time"

	"jwmeeting-backend/lib/configutil"
	configlibsql "jwmeeting-backend/lib/configutil/libsql"
	"jwmeeting-backend/lib/restyutil"
	"jwmeeting-backend/lib/scrapers/jworg"
	"jwmeeting-backend/lib/serviceutil"
	"jwmeeting-backend/lib/telemetry"
	"jwmeeting-backend/services/languages"
	"jwmeeting-backend/services/languages/db"
)

type Config struct {
	Database configlibsql.Struct `json:"database"`
	// Verbose additionally dumps every scraper http exchange
	Verbose bool `json:"verbose"`
}

func main() {
	ctx := context.Background()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	tel, err := telemetry.SetupFromEnv(ctx, "languages-sync")
	if err == nil {
		defer tel.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}
	telemetry.InitSlog(cfg.Verbose)

	database, err := cfg.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	defer database.Close()

	_, err = database.Exec(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply schema", err)
	}

	scraper := jworg.NewClient(jworg.ClientOptions{})
	if cfg.Verbose {
		scraper.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/jworg"))
	}

	service := languages.NewService(database, scraper)

	t1 := time.Now()
	result, err := service.Sync(ctx)
	if err != nil {
		serviceutil.Fatal("language sync failed", err)
	}
	t2 := time.Now()

	slog.Info("language sync finished",
		"discovered", result.Discovered,
		"upserted", result.Upserted,
		"names_updated", result.NamesUpdated,
		"seconds", t2.Sub(t1).Seconds(),
	)
}
