package calendar

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/example/slotshare/internal/slotgrid"
)

// ICSFeed describes one ICS subscription endpoint.
type ICSFeed struct {
	ID    string
	Name  string
	URL   string
	Color string
}

// ICSSource fetches events from one or more ICS feeds over HTTP. Recurring
// events contribute only their base occurrence; recurrence expansion is out
// of scope here.
type ICSSource struct {
	feeds  []ICSFeed
	client *http.Client
	logger *slog.Logger
}

// NewICSSource builds a source over the given feeds. A nil client gets a
// default with a 15 second timeout.
func NewICSSource(feeds []ICSFeed, client *http.Client, logger *slog.Logger) *ICSSource {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ICSSource{feeds: feeds, client: client, logger: logger}
}

// FetchEvents implements EventSource. Every feed must load: a failing feed
// aborts the fetch with its category error instead of silently shrinking the
// event list.
func (s *ICSSource) FetchEvents(ctx context.Context, windowStart, windowEnd time.Time) ([]slotgrid.CalendarEvent, error) {
	var events []slotgrid.CalendarEvent
	for _, feed := range s.feeds {
		feedEvents, err := s.fetchFeed(ctx, feed, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}
		events = append(events, feedEvents...)
	}
	return events, nil
}

func (s *ICSSource) fetchFeed(ctx context.Context, feed ICSFeed, windowStart, windowEnd time.Time) ([]slotgrid.CalendarEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feed.URL, nil)
	if err != nil {
		return nil, &TransportError{Source: feed.ID, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Source: feed.ID, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("feed %s: %w", feed.ID, ErrPermissionDenied)
	case resp.StatusCode != http.StatusOK:
		return nil, &TransportError{Source: feed.ID, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Source: feed.ID, Err: err}
	}

	events, err := parseFeed(feed, body, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "ics feed loaded", "feed", feed.ID, "events", len(events))
	return events, nil
}

// parseFeed decodes an ICS payload and converts the VEVENTs intersecting the
// window. Events missing a UID or parseable times are skipped; a payload the
// parser rejects outright is a DecodeError.
func parseFeed(feed ICSFeed, body []byte, windowStart, windowEnd time.Time) ([]slotgrid.CalendarEvent, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, &DecodeError{Source: feed.ID, Err: err}
	}

	var events []slotgrid.CalendarEvent
	for _, ve := range cal.Events() {
		event, ok := convertVEvent(feed, ve)
		if !ok {
			continue
		}
		if !event.Start.Before(windowEnd) || !event.End.After(windowStart) {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func convertVEvent(feed ICSFeed, ve *ical.VEvent) (slotgrid.CalendarEvent, bool) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return slotgrid.CalendarEvent{}, false
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return slotgrid.CalendarEvent{}, false
	}
	end, err := ve.GetEndAt()
	if err != nil || !end.After(start) {
		// DTEND is optional for all-day events; fall back to one day.
		if isAllDayStart(ve) {
			end = start.Add(24 * time.Hour)
		} else {
			return slotgrid.CalendarEvent{}, false
		}
	}

	event := slotgrid.CalendarEvent{
		ID:            feed.ID + "/" + uidProp.Value,
		Start:         start,
		End:           end,
		AllDay:        isAllDayStart(ve),
		CalendarName:  feed.Name,
		CalendarColor: feed.Color,
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		event.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		event.Location = p.Value
	}
	return event, true
}

// isAllDayStart reports whether DTSTART carries VALUE=DATE or a date-only
// value form.
func isAllDayStart(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
