package client

import (
	"context"
	"fmt"

	"github.com/hourbook-app/hourbook/internal/domain"
)

// DailySummary fetches one date's entries and rolls them up per
// (task type, task id) pair for the daily summary screen. Entries without a
// task id stay as individual lines rather than being lumped together.
func (c *Client) DailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	entries, err := c.EntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &domain.DailySummary{Date: date}
	_, summary.WeekNumber = day.ISOWeek()

	index := map[string]int{} // "tasktype/taskid" → position in TaskSummaries
	for _, e := range entries {
		summary.TotalHours += e.Hours

		if e.TaskID == nil {
			summary.TaskSummaries = append(summary.TaskSummaries, domain.TaskSummary{
				TaskType:   e.TaskType,
				TotalHours: e.Hours,
			})
			continue
		}

		key := fmt.Sprintf("%s/%d", e.TaskType, *e.TaskID)
		if i, ok := index[key]; ok {
			summary.TaskSummaries[i].TotalHours += e.Hours
			continue
		}
		index[key] = len(summary.TaskSummaries)
		id := *e.TaskID
		summary.TaskSummaries = append(summary.TaskSummaries, domain.TaskSummary{
			TaskType:   e.TaskType,
			TaskID:     &id,
			TotalHours: e.Hours,
		})
	}
	return summary, nil
}
