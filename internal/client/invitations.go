package client

import (
	"context"
	"log/slog"
	"sort"
)

// FetchInvitations loads the schedules the caller previously created, given
// an explicit id collection supplied by the caller. Individual fetch failures
// are logged and skipped so one stale id does not hide the rest. Results are
// returned newest first.
func (c *Client) FetchInvitations(ctx context.Context, ids []int64, logger *slog.Logger) []Schedule {
	if logger == nil {
		logger = slog.Default()
	}

	invitations := make([]Schedule, 0, len(ids))
	for _, id := range ids {
		schedule, err := c.FetchSchedule(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "failed to fetch schedule", "schedule_id", id, "error", err)
			continue
		}
		invitations = append(invitations, schedule)
	}

	sort.Slice(invitations, func(i, j int) bool { return invitations[i].ID > invitations[j].ID })
	if len(invitations) == 0 {
		return nil
	}
	return invitations
}
