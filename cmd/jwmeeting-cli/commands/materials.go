package commands

import (
	"log/slog"

	"jwmeeting-backend/lib/meetingapi"
	"jwmeeting-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var materialType *string

func init() {
	materialType = materialsCmd.Flags().String("type", "videos", "Material type: videos, images, audio or songs.")
	rootCmd.AddCommand(materialsCmd)
}

var materialsCmd = &cobra.Command{
	Use:   "materials [query] [--type <type>]",
	Short: "Lists materials across every week, optionally filtered by a search query.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient()
		defer client.Close()

		var materials []meetingapi.WeekMaterial
		var skipped []meetingapi.SkippedWeek
		var err error
		if len(args) > 0 {
			materials, skipped, err = client.SearchMaterials(cmd.Context(), args[0], *materialType)
		} else {
			materials, skipped, err = client.AllMaterials(cmd.Context(), *materialType)
		}
		if err != nil {
			serviceutil.Fatal("failed to fetch materials", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Title", "Meeting", "Week Of", "Duration"})
		for _, material := range materials {
			t.AppendRow(table.Row{material.Title, material.MeetingType, material.WeekOf, material.Duration})
		}
		t.Render()

		for _, skip := range skipped {
			slog.Warn("week skipped", "week", skip.WeekId, "err", skip.Err)
		}
	},
}
