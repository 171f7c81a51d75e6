package meetingapi

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ParseISOTime parses an ISO-8601 timestamp or bare date, a trailing
// `Z` reads as UTC.
func ParseISOTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return t, nil
	}
	t, dateErr := time.Parse("2006-01-02", value)
	if dateErr == nil {
		return t, nil
	}
	return time.Time{}, err
}

// WeeksBetween returns the weeks whose start date falls within
// [start, end], inclusive on both ends, in server order.
func (c *Client) WeeksBetween(ctx context.Context, start, end time.Time) ([]WeekSummary, error) {
	ctx, span := tracer.Start(ctx, "WeeksBetween")
	defer span.End()

	list, err := c.Weeks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var filtered []WeekSummary
	for _, week := range list.Weeks {
		weekStart, err := ParseISOTime(week.WeekStartDate)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("week %s has a malformed start date: %w", week.Id, err)
		}
		if weekStart.Before(start) || weekStart.After(end) {
			continue
		}
		filtered = append(filtered, week)
	}
	return filtered, nil
}

// WeeksBetweenStrings is WeeksBetween over ISO-8601 string bounds.
func (c *Client) WeeksBetweenStrings(ctx context.Context, start, end string) ([]WeekSummary, error) {
	startTime, err := ParseISOTime(start)
	if err != nil {
		return nil, fmt.Errorf("malformed start date: %w", err)
	}
	endTime, err := ParseISOTime(end)
	if err != nil {
		return nil, fmt.Errorf("malformed end date: %w", err)
	}
	return c.WeeksBetween(ctx, startTime, endTime)
}

// AllMaterials flattens the named material bucket of every meeting in
// every week. materialType defaults to "videos". A week that fails to
// fetch is logged and reported in the skipped list without aborting
// the scan. Output order follows the week list, then meeting order,
// then bucket order.
func (c *Client) AllMaterials(ctx context.Context, materialType string) ([]WeekMaterial, []SkippedWeek, error) {
	ctx, span := tracer.Start(ctx, "AllMaterials")
	defer span.End()

	if materialType == "" {
		materialType = "videos"
	}
	span.SetAttributes(attribute.String("material_type", materialType))

	list, err := c.Weeks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	// fetched in parallel but collected by week index so output
	// order still matches the server's week list
	perWeek := make([][]WeekMaterial, len(list.Weeks))
	failures := make([]*SkippedWeek, len(list.Weeks))
	wg := sync.WaitGroup{}

	for i, summary := range list.Weeks {
		wg.Add(1)
		go func(i int, summary WeekSummary) {
			defer wg.Done()

			week, err := c.WeekData(ctx, summary.Year, summary.WeekNumber)
			if err != nil {
				slog.WarnContext(ctx, "failed to fetch week", "week", summary.Id, "err", err)
				failures[i] = &SkippedWeek{WeekId: summary.Id, Err: err}
				return
			}

			var materials []WeekMaterial
			for _, meeting := range week.Meetings {
				for _, material := range meeting.Materials.Bucket(materialType) {
					materials = append(materials, WeekMaterial{
						Material:    material,
						WeekId:      week.Id,
						MeetingType: meeting.Type,
						WeekOf:      week.WeekOf,
					})
				}
			}
			perWeek[i] = materials
		}(i, summary)
	}
	wg.Wait()

	var all []WeekMaterial
	var skipped []SkippedWeek
	for i := range list.Weeks {
		if failures[i] != nil {
			skipped = append(skipped, *failures[i])
			continue
		}
		all = append(all, perWeek[i]...)
	}

	span.SetAttributes(
		attribute.Int("materials", len(all)),
		attribute.Int("skipped_weeks", len(skipped)),
	)
	return all, skipped, nil
}

// SearchMaterials retains the flattened materials whose title or
// description contains query, compared case-insensitively. A missing
// field reads as the empty string.
func (c *Client) SearchMaterials(ctx context.Context, query, materialType string) ([]WeekMaterial, []SkippedWeek, error) {
	ctx, span := tracer.Start(ctx, "SearchMaterials")
	defer span.End()

	all, skipped, err := c.AllMaterials(ctx, materialType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	needle := strings.ToLower(query)
	var matched []WeekMaterial
	for _, material := range all {
		if strings.Contains(strings.ToLower(material.Title), needle) ||
			strings.Contains(strings.ToLower(material.Description), needle) {
			matched = append(matched, material)
		}
	}
	return matched, skipped, nil
}

func roundPercentage(v float64) float64 {
	return math.Round(v*100) / 100
}

// MeetingStatistics returns the raw stats document extended with
// derived averages and the per-type material distribution.
func (c *Client) MeetingStatistics(ctx context.Context) (MeetingStatistics, error) {
	ctx, span := tracer.Start(ctx, "MeetingStatistics")
	defer span.End()

	stats, err := c.Stats(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MeetingStatistics{}, err
	}
	list, err := c.Weeks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return MeetingStatistics{}, err
	}

	// denominators floor at 1 so an empty corpus divides cleanly
	weekCount := max(stats.Overview.TotalWeeks, 1)
	meetingCount := max(stats.Overview.TotalMeetings, 1)

	enhanced := EnhancedStats{
		TotalWeeksAnalyzed:    len(list.Weeks),
		AvgMeetingsPerWeek:    float64(stats.Overview.TotalMeetings) / float64(weekCount),
		AvgDurationPerMeeting: float64(stats.Overview.TotalDuration) / float64(meetingCount),
		MaterialDistribution:  map[string]MaterialShare{},
	}

	if stats.Overview.TotalMaterials > 0 {
		total := float64(stats.Overview.TotalMaterials)
		for materialType, count := range stats.ByMaterialType {
			enhanced.MaterialDistribution[materialType] = MaterialShare{
				Count:      count,
				Percentage: roundPercentage(float64(count) / total * 100),
			}
		}
	}

	return MeetingStatistics{Stats: stats, Enhanced: enhanced}, nil
}
