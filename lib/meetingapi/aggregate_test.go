package meetingapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const week01Doc = `{
	"id": "2025-W01",
	"weekOf": "January 6-12",
	"meetings": [
		{
			"type": "midweek",
			"materials": {
				"videos": [
					{"title": "Our Kingdom Ministry", "description": "Monthly program", "duration": 120},
					{"title": "Teaching Toolbox", "description": "", "duration": 300}
				],
				"songs": [
					{"title": "Song 1"}
				]
			}
		},
		{
			"type": "weekend",
			"materials": {
				"videos": [
					{"title": "Public Talk Opener", "description": "Intro video", "duration": 60}
				]
			}
		}
	]
}`

const week02Doc = `{
	"id": "2025-W02",
	"weekOf": "January 13-19",
	"meetings": [
		{
			"type": "midweek",
			"materials": {
				"videos": [
					{"title": "Second Week Video", "description": "About the kingdom hall"}
				]
			}
		}
	]
}`

const week03Doc = `{
	"id": "2025-W03",
	"weekOf": "January 20-26",
	"meetings": [
		{
			"type": "midweek",
			"materials": {
				"videos": [
					{"title": "Third Week Video", "description": ""}
				]
			}
		}
	]
}`

func fullCorpus() map[string]string {
	return map[string]string{
		"/weeks.json":             weeksDoc,
		"/data/2025/week-01.json": week01Doc,
		"/data/2025/week-02.json": week02Doc,
		"/data/2025/week-03.json": week03Doc,
	}
}

func TestWeeksBetween(t *testing.T) {
	corpus := newFakeCorpus(fullCorpus())
	client := newTestClient(t, corpus, ClientOptions{})
	ctx := context.Background()

	weeks, err := client.WeeksBetweenStrings(ctx, "2025-01-06", "2025-01-13")
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	require.Equal(t, "2025-W01", weeks[0].Id)
	require.Equal(t, "2025-W02", weeks[1].Id)

	// inclusive on both ends
	weeks, err = client.WeeksBetweenStrings(ctx, "2025-01-13", "2025-01-13")
	require.NoError(t, err)
	require.Len(t, weeks, 1)
	require.Equal(t, "2025-W02", weeks[0].Id)

	weeks, err = client.WeeksBetweenStrings(ctx, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	require.Empty(t, weeks)

	// the trailing Z reads as utc
	weeks, err = client.WeeksBetweenStrings(ctx, "2025-01-06T00:00:00Z", "2025-01-20T00:00:00Z")
	require.NoError(t, err)
	require.Len(t, weeks, 3)
}

func TestAllMaterialsOrderAndEnrichment(t *testing.T) {
	corpus := newFakeCorpus(fullCorpus())
	client := newTestClient(t, corpus, ClientOptions{})

	materials, skipped, err := client.AllMaterials(context.Background(), "videos")
	require.NoError(t, err)
	require.Empty(t, skipped)

	// week order, then meeting order, then bucket order
	expected := []WeekMaterial{
		{
			Material:    Material{Title: "Our Kingdom Ministry", Description: "Monthly program", Duration: 120},
			WeekId:      "2025-W01",
			MeetingType: "midweek",
			WeekOf:      "January 6-12",
		},
		{
			Material:    Material{Title: "Teaching Toolbox", Duration: 300},
			WeekId:      "2025-W01",
			MeetingType: "midweek",
			WeekOf:      "January 6-12",
		},
		{
			Material:    Material{Title: "Public Talk Opener", Description: "Intro video", Duration: 60},
			WeekId:      "2025-W01",
			MeetingType: "weekend",
			WeekOf:      "January 6-12",
		},
		{
			Material:    Material{Title: "Second Week Video", Description: "About the kingdom hall"},
			WeekId:      "2025-W02",
			MeetingType: "midweek",
			WeekOf:      "January 13-19",
		},
		{
			Material:    Material{Title: "Third Week Video"},
			WeekId:      "2025-W03",
			MeetingType: "midweek",
			WeekOf:      "January 20-26",
		},
	}
	if diff := cmp.Diff(expected, materials); diff != "" {
		t.Fatalf("unexpected materials (-want +got):\n%s", diff)
	}
}

func TestAllMaterialsUnknownBucket(t *testing.T) {
	corpus := newFakeCorpus(fullCorpus())
	client := newTestClient(t, corpus, ClientOptions{})

	materials, skipped, err := client.AllMaterials(context.Background(), "podcasts")
	require.NoError(t, err)
	require.Empty(t, skipped)
	require.Empty(t, materials)
}

func TestAllMaterialsDefaultsToVideos(t *testing.T) {
	corpus := newFakeCorpus(fullCorpus())
	client := newTestClient(t, corpus, ClientOptions{})

	materials, _, err := client.AllMaterials(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, materials, 5)
}

func TestAllMaterialsPartialFailure(t *testing.T) {
	docs := fullCorpus()
	delete(docs, "/data/2025/week-02.json")
	corpus := newFakeCorpus(docs)
	client := newTestClient(t, corpus, ClientOptions{})

	materials, skipped, err := client.AllMaterials(context.Background(), "videos")
	require.NoError(t, err)

	require.Len(t, skipped, 1)
	require.Equal(t, "2025-W02", skipped[0].WeekId)
	var statusErr *StatusError
	require.ErrorAs(t, skipped[0].Err, &statusErr)
	require.Equal(t, http.StatusNotFound, statusErr.Code)

	require.Len(t, materials, 4)
	require.Equal(t, "2025-W01", materials[0].WeekId)
	require.Equal(t, "2025-W03", materials[len(materials)-1].WeekId)
}

func TestSearchMaterialsCaseInsensitive(t *testing.T) {
	corpus := newFakeCorpus(fullCorpus())
	client := newTestClient(t, corpus, ClientOptions{})
	ctx := context.Background()

	for _, query := range []string{"kingdom", "KINGDOM"} {
		matched, skipped, err := client.SearchMaterials(ctx, query, "videos")
		require.NoError(t, err)
		require.Empty(t, skipped)
		// matches both the title and a description mention
		require.Len(t, matched, 2)
		require.Equal(t, "Our Kingdom Ministry", matched[0].Title)
		require.Equal(t, "Second Week Video", matched[1].Title)
	}

	matched, _, err := client.SearchMaterials(ctx, "no such material", "videos")
	require.NoError(t, err)
	require.Empty(t, matched)
}

func TestMeetingStatistics(t *testing.T) {
	docs := fullCorpus()
	docs["/stats.json"] = `{
		"overview": {"totalWeeks": 3, "totalMeetings": 6, "totalMaterials": 50, "totalDuration": 720},
		"byMaterialType": {"videos": 30, "images": 20}
	}`
	corpus := newFakeCorpus(docs)
	client := newTestClient(t, corpus, ClientOptions{})

	stats, err := client.MeetingStatistics(context.Background())
	require.NoError(t, err)

	// server fields carried through untouched
	require.Equal(t, 50, stats.Overview.TotalMaterials)
	require.Equal(t, map[string]int{"videos": 30, "images": 20}, stats.ByMaterialType)

	require.Equal(t, 3, stats.Enhanced.TotalWeeksAnalyzed)
	require.InDelta(t, 2.0, stats.Enhanced.AvgMeetingsPerWeek, 1e-9)
	require.InDelta(t, 120.0, stats.Enhanced.AvgDurationPerMeeting, 1e-9)
	require.Equal(t, MaterialShare{Count: 30, Percentage: 60.0}, stats.Enhanced.MaterialDistribution["videos"])
	require.Equal(t, MaterialShare{Count: 20, Percentage: 40.0}, stats.Enhanced.MaterialDistribution["images"])
}

func TestMeetingStatisticsEmptyCorpus(t *testing.T) {
	docs := map[string]string{
		"/weeks.json": `{"weeks": [], "meta": {"totalWeeks": 0}}`,
		"/stats.json": `{
			"overview": {"totalWeeks": 0, "totalMeetings": 0, "totalMaterials": 0, "totalDuration": 0},
			"byMaterialType": {}
		}`,
	}
	corpus := newFakeCorpus(docs)
	client := newTestClient(t, corpus, ClientOptions{})

	stats, err := client.MeetingStatistics(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.Enhanced.AvgMeetingsPerWeek)
	require.Zero(t, stats.Enhanced.AvgDurationPerMeeting)
	require.Empty(t, stats.Enhanced.MaterialDistribution)
}
