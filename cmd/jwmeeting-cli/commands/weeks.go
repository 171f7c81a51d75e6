package commands

import (
	"jwmeeting-backend/lib/meetingapi"
	"jwmeeting-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var weeksFrom *string
var weeksTo *string

func init() {
	weeksFrom = weeksCmd.Flags().String("from", "", "Only show weeks starting on or after this date.")
	weeksTo = weeksCmd.Flags().String("to", "", "Only show weeks starting on or before this date.")
	rootCmd.AddCommand(weeksCmd)
}

var weeksCmd = &cobra.Command{
	Use:   "weeks [--from <date>] [--to <date>]",
	Short: "Lists the available weeks, optionally filtered by start date.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newApiClient()
		defer client.Close()

		var weeks []meetingapi.WeekSummary
		if *weeksFrom != "" || *weeksTo != "" {
			from := *weeksFrom
			if from == "" {
				from = "0001-01-01"
			}
			to := *weeksTo
			if to == "" {
				to = "9999-12-31"
			}
			var err error
			weeks, err = client.WeeksBetweenStrings(cmd.Context(), from, to)
			if err != nil {
				serviceutil.Fatal("failed to filter weeks", err)
			}
		} else {
			list, err := client.Weeks(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to fetch weeks", err)
			}
			weeks = list.Weeks
		}

		t := newTable()
		t.AppendHeader(table.Row{"Id", "Year", "Week", "Start Date", "Week Of"})
		for _, week := range weeks {
			t.AppendRow(table.Row{week.Id, week.Year, week.WeekNumber, week.WeekStartDate, week.WeekOf})
		}
		t.Render()
	},
}
