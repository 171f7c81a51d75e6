package commands

import (
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var cacheClear *bool

func init() {
	cacheClear = cacheCmd.Flags().Bool("clear", false, "Drop every cached response before printing.")
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache [--clear]",
	Short: "Prints the response cache state, optionally clearing it first.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient()
		defer client.Close()

		if *cacheClear {
			client.ClearCache()
			slog.Info("cleared response cache")
		}

		stats := client.CacheStats()

		t := newTable()
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRow(table.Row{"enabled", stats.Enabled})
		t.AppendRow(table.Row{"entries", stats.Size})
		t.AppendRow(table.Row{"ttl", stats.TTL})
		t.Render()

		if len(stats.Keys) == 0 {
			return
		}

		k := newTable()
		k.AppendHeader(table.Row{"Cached Url"})
		for _, key := range stats.Keys {
			k.AppendRow(table.Row{key})
		}
		k.Render()
	},
}
