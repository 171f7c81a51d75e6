package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"jwmeeting-backend/lib/configutil"
	configlibsql "jwmeeting-backend/lib/configutil/libsql"
	"jwmeeting-backend/lib/meetingapi"
	"jwmeeting-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type ApiConfig struct {
	BaseUrl         string `json:"base_url"`
	UserAgent       string `json:"user_agent"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	NoCache         bool   `json:"no_cache"`
	CacheTtlSeconds int    `json:"cache_ttl_seconds"`
}

type Config struct {
	Api      ApiConfig           `json:"api"`
	Database configlibsql.Struct `json:"database"`
}

var rootCmd = &cobra.Command{
	Use:   "jwmeeting-cli",
	Short: "jwmeeting-cli browses the weekly meeting content corpus and manages language ingestion.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readConfig tolerates a missing config.json5, the zero config maps
// to every default
func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func newApiClient() *meetingapi.Client {
	cfg := readConfig()
	return meetingapi.NewClient(meetingapi.ClientOptions{
		BaseUrl:      cfg.Api.BaseUrl,
		UserAgent:    cfg.Api.UserAgent,
		Timeout:      time.Duration(cfg.Api.TimeoutSeconds) * time.Second,
		DisableCache: cfg.Api.NoCache,
		CacheTTL:     time.Duration(cfg.Api.CacheTtlSeconds) * time.Second,
	})
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
