package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/example/slotshare/internal/application"
	"github.com/example/slotshare/internal/calendar"
	"github.com/example/slotshare/internal/client"
	"github.com/example/slotshare/internal/slotgrid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "slotshare:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", defaultConfigPath(), "path to the YAML configuration file")
		dateValue   = flag.String("date", "", "day to build, yyyy-MM-dd (defaults to today)")
		selectValue = flag.String("select", "", "comma separated slot indices to select on the day")
		share       = flag.Bool("share", false, "post the selected slots as a shareable schedule")
		invitations = flag.Bool("invitations", false, "list the schedules created from this machine")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := client.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", *configPath, err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q in config: %w", cfg.Timezone, err)
	}

	remote := client.New(cfg.ServerURL, nil)

	if *invitations {
		return printInvitations(ctx, remote, cfg, logger)
	}

	date := time.Now().In(loc)
	if *dateValue != "" {
		if date, err = time.ParseInLocation("2006-01-02", *dateValue, loc); err != nil {
			return fmt.Errorf("invalid -date %q: use yyyy-MM-dd", *dateValue)
		}
	}

	indices, err := parseIndices(*selectValue)
	if err != nil {
		return err
	}

	source := calendar.NewICSSource(cfg.ICSFeeds(), nil, logger)
	days := application.NewDayService(source, loc, logger)

	view := days.LoadDay(ctx, date)
	switch view.State {
	case application.DayStatePermissionDenied:
		return fmt.Errorf("calendar access denied: %w", view.Err)
	case application.DayStateFailed:
		return fmt.Errorf("failed to build day: %w", view.Err)
	}

	for _, index := range indices {
		days.Toggle(index)
	}

	printDay(days, view)

	if !*share {
		return nil
	}
	if !days.HasAnySelection() {
		return fmt.Errorf("nothing selected; pass -select with available slot indices")
	}

	created, err := remote.PostSchedule(ctx, days.Shareable())
	if err != nil {
		return fmt.Errorf("share schedule: %w", err)
	}

	fmt.Printf("shared schedule %d: %s\n", created.ID, created.URL)

	cfg.ScheduleIDs = append(cfg.ScheduleIDs, created.ID)
	if err := client.SaveConfig(*configPath, cfg); err != nil {
		return fmt.Errorf("record schedule id: %w", err)
	}
	return nil
}

func printDay(days *application.DayService, view application.DayView) {
	fmt.Printf("%s\n", view.Day)
	for i, slot := range view.Slots {
		marker := " "
		if days.IsSelected(i) {
			marker = "*"
		}

		label := describeSlot(slot)
		if label == "" {
			continue
		}
		fmt.Printf("%s [%2d] %s-%s  %s\n",
			marker, i,
			slot.Start.Format("15:04"), slot.End.Format("15:04"),
			label,
		)
	}

	ranges := days.Ranges()
	if len(ranges) == 0 {
		return
	}
	fmt.Println("selected:")
	for _, r := range ranges {
		fmt.Printf("  %s %s-%s\n", r.Day, r.Start.Format("15:04"), r.End.Format("15:04"))
	}
}

func describeSlot(slot slotgrid.TimeSlot) string {
	switch slot.Content.Kind() {
	case slotgrid.KindAvailable:
		return "available"
	case slotgrid.KindEvent:
		if event, ok := slot.Content.Event(); ok {
			return event.Title
		}
		return "busy"
	case slotgrid.KindBundled:
		return fmt.Sprintf("%d events", slot.Content.Count())
	}
	// Continuation slots are covered by the span line above them.
	return ""
}

func printInvitations(ctx context.Context, remote *client.Client, cfg *client.Config, logger *slog.Logger) error {
	if len(cfg.ScheduleIDs) == 0 {
		fmt.Println("no schedules shared yet")
		return nil
	}

	for _, schedule := range remote.FetchInvitations(ctx, cfg.ScheduleIDs, logger) {
		fmt.Printf("#%d [%s] %s\n", schedule.ID, schedule.Status, schedule.Timezone)
		for _, slot := range schedule.Slots {
			fmt.Printf("  proposed %s %s-%s\n", slot.Date, slot.StartTime, slot.EndTime)
		}
		for _, slot := range schedule.SelectedSlots {
			fmt.Printf("  selected %s %s-%s\n", slot.Date, slot.StartTime, slot.EndTime)
		}
	}
	return nil
}

func parseIndices(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		index, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || index < 0 || index >= slotgrid.SlotsPerDay {
			return nil, fmt.Errorf("invalid slot index %q: want 0-%d", part, slotgrid.SlotsPerDay-1)
		}
		indices = append(indices, index)
	}
	return indices, nil
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "slotshare", "config.yaml")
	}
	return "slotshare.yaml"
}
