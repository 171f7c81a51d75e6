package commands

import (
	"fmt"
	"sort"

	"jwmeeting-backend/lib/meetingapi"
	"jwmeeting-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

// map iteration order is random, the table should not shuffle between
// runs
func sortedMaterialTypes(distribution map[string]meetingapi.MaterialShare) []string {
	materialTypes := make([]string, 0, len(distribution))
	for materialType := range distribution {
		materialTypes = append(materialTypes, materialType)
	}
	sort.Strings(materialTypes)
	return materialTypes
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints corpus statistics with derived averages.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient()
		defer client.Close()

		stats, err := client.MeetingStatistics(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch statistics", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Metric", "Value"})
		t.AppendRow(table.Row{"total weeks", stats.Overview.TotalWeeks})
		t.AppendRow(table.Row{"total meetings", stats.Overview.TotalMeetings})
		t.AppendRow(table.Row{"total materials", stats.Overview.TotalMaterials})
		t.AppendRow(table.Row{"total duration", stats.Overview.TotalDuration})
		t.AppendRow(table.Row{"avg meetings / week", fmt.Sprintf("%.2f", stats.Enhanced.AvgMeetingsPerWeek)})
		t.AppendRow(table.Row{"avg duration / meeting", fmt.Sprintf("%.2f", stats.Enhanced.AvgDurationPerMeeting)})
		t.Render()

		if len(stats.Enhanced.MaterialDistribution) == 0 {
			return
		}

		materialTypes := sortedMaterialTypes(stats.Enhanced.MaterialDistribution)

		d := newTable()
		d.AppendHeader(table.Row{"Material Type", "Count", "Percentage"})
		for _, materialType := range materialTypes {
			share := stats.Enhanced.MaterialDistribution[materialType]
			d.AppendRow(table.Row{materialType, share.Count, fmt.Sprintf("%.2f%%", share.Percentage)})
		}
		d.Render()
	},
}
