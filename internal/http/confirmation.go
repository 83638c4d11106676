package http

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/slotshare/internal/application"
)

// confirmationTemplate renders the human-facing page the remote party lands
// on after selecting slots.
var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Schedule {{.Status}}</title></head>
<body>
<h1>Schedule #{{.ID}} ({{.Status}})</h1>
<p>Timezone: {{.Timezone}}</p>
{{if .SelectedSlots}}
<h2>Selected times</h2>
<ul>
{{range .SelectedSlots}}<li>{{.Date}}, {{.TimeRange}}</li>
{{end}}</ul>
{{end}}
<h2>Proposed times</h2>
<ul>
{{range .Slots}}<li>{{.Date}}, {{.TimeRange}}</li>
{{end}}</ul>
</body>
</html>
`))

type confirmationSlotView struct {
	Date      string
	TimeRange string
}

type confirmationView struct {
	ID            int64
	Status        string
	Timezone      string
	Slots         []confirmationSlotView
	SelectedSlots []confirmationSlotView
}

// Confirmation handles GET /schedules/{id}/confirmation.
func (h *ScheduleHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ScheduleIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	schedule, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	view := confirmationView{
		ID:            schedule.ID,
		Status:        schedule.Status,
		Timezone:      schedule.Timezone,
		Slots:         toConfirmationSlots(schedule.Slots),
		SelectedSlots: toConfirmationSlots(schedule.SelectedSlots),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := confirmationTemplate.Execute(w, view); err != nil {
		h.responder.loggerFor(r.Context()).ErrorContext(r.Context(), "failed to render confirmation", "error", err)
	}
}

func toConfirmationSlots(slots []application.Slot) []confirmationSlotView {
	if len(slots) == 0 {
		return nil
	}
	views := make([]confirmationSlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, confirmationSlotView{
			Date:      formatSlotDate(slot.Date),
			TimeRange: formatSlotTimeRange(slot.StartTime, slot.EndTime),
		})
	}
	return views
}

// formatSlotDate renders yyyy-MM-dd as Jan/2/2006; unparseable values pass
// through unchanged.
func formatSlotDate(value string) string {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%s/%d/%d", parsed.Month().String()[:3], parsed.Day(), parsed.Year())
}

// formatSlotTimeRange renders a pair of HH:mm values as a 12-hour range.
func formatSlotTimeRange(startTime, endTime string) string {
	return formatTime12hr(startTime) + " - " + formatTime12hr(endTime)
}

func formatTime12hr(value string) string {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return value
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return value
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return value
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}
