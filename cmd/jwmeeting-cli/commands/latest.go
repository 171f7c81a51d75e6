package commands

import (
	"fmt"

	"jwmeeting-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(latestCmd)
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Prints the latest week's meetings and material counts.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient()
		defer client.Close()

		week, err := client.Latest(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch latest week", err)
		}

		fmt.Printf("week of %s (%s)\n", week.WeekOf, week.Id)

		t := newTable()
		t.AppendHeader(table.Row{"Meeting", "Videos", "Images", "Audio", "Songs"})
		for _, meeting := range week.Meetings {
			t.AppendRow(table.Row{
				meeting.Type,
				len(meeting.Materials.Videos),
				len(meeting.Materials.Images),
				len(meeting.Materials.Audio),
				len(meeting.Materials.Songs),
			})
		}
		t.Render()
	},
}
