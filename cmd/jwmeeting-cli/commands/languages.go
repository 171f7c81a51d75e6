package commands

import (
	"database/sql"
	"log/slog"

	configlibsql "jwmeeting-backend/lib/configutil/libsql"
	"jwmeeting-backend/lib/scrapers/jworg"
	"jwmeeting-backend/lib/serviceutil"
	"jwmeeting-backend/services/languages"
	"jwmeeting-backend/services/languages/db"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var languagesDbFile *string

func init() {
	languagesDbFile = languagesCmd.PersistentFlags().String("db", "", "Sqlite file to use instead of the configured database.")
	languagesCmd.AddCommand(languagesSyncCmd)
	languagesCmd.AddCommand(languagesListCmd)
	rootCmd.AddCommand(languagesCmd)
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Manages the scraped language table.",
}

func openLanguagesDB() *sql.DB {
	cfg := readConfig()
	if *languagesDbFile != "" {
		cfg.Database = configlibsql.Struct{File: *languagesDbFile}
	}
	database, err := cfg.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to apply schema", err)
	}
	return database
}

var languagesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scrapes language codes and names and upserts them into the database.",
	Run: func(cmd *cobra.Command, args []string) {
		database := openLanguagesDB()
		defer database.Close()

		service := languages.NewService(database, jworg.NewClient(jworg.ClientOptions{}))
		result, err := service.Sync(cmd.Context())
		if err != nil {
			serviceutil.Fatal("language sync failed", err)
		}

		slog.Info("language sync finished",
			"discovered", result.Discovered,
			"upserted", result.Upserted,
			"names_updated", result.NamesUpdated,
		)
	},
}

var languagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints the stored languages.",
	Run: func(cmd *cobra.Command, args []string) {
		database := openLanguagesDB()
		defer database.Close()

		service := languages.NewService(database, jworg.NewClient(jworg.ClientOptions{}))
		stored, err := service.Languages(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to list languages", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Code", "Name", "Modified By"})
		for _, language := range stored {
			t.AppendRow(table.Row{language.Code, language.Name, language.ModifiedBy})
		}
		t.Render()
	},
}
