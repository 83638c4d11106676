package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/slotshare/internal/application"
)

type scheduleService interface {
	Create(ctx context.Context, input application.ScheduleInput) (application.Schedule, error)
	Get(ctx context.Context, id int64) (application.Schedule, error)
	Select(ctx context.Context, id int64, selected []application.Slot) (application.Schedule, error)
}

// ScheduleHandler serves the schedule sharing endpoints.
type ScheduleHandler struct {
	service   scheduleService
	baseURL   string
	responder responder
}

// NewScheduleHandler wires the handler. baseURL is the externally reachable
// prefix used to build schedule and confirmation links.
func NewScheduleHandler(service scheduleService, baseURL string, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service:   service,
		baseURL:   strings.TrimRight(baseURL, "/"),
		responder: newResponder(logger),
	}
}

// Create handles POST /schedules.
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	schedule, err := h.service.Create(r.Context(), application.ScheduleInput{
		Timezone: strings.TrimSpace(req.Schedule.Timezone),
		Slots:    toSlots(req.Schedule.Slots),
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, h.toScheduleDTO(schedule))
}

// Get handles GET /schedules/{id}.
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	h.responder.writeJSON(r.Context(), w, http.StatusOK, h.toScheduleDTO(schedule))
}

// Select handles POST /schedules/{id}/select.
func (h *ScheduleHandler) Select(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id, ok := ScheduleIDFromContext(r.Context())
	if !ok {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidScheduleID)
		return
	}

	var req selectSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if _, err := h.service.Select(r.Context(), id, toSlots(req.SelectedSlots)); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, selectSlotsResponse{
		Success:     true,
		RedirectURL: h.confirmationURL(id),
	})
}

func (h *ScheduleHandler) scheduleURL(id int64) string {
	return fmt.Sprintf("%s/schedules/%d", h.baseURL, id)
}

func (h *ScheduleHandler) confirmationURL(id int64) string {
	return fmt.Sprintf("%s/schedules/%d/confirmation", h.baseURL, id)
}

type createScheduleRequest struct {
	Schedule struct {
		Timezone string    `json:"timezone"`
		Slots    []slotDTO `json:"slots"`
	} `json:"schedule"`
}

type selectSlotsRequest struct {
	SelectedSlots []slotDTO `json:"selected_slots"`
}

type selectSlotsResponse struct {
	Success     bool   `json:"success"`
	RedirectURL string `json:"redirect_url"`
}

type slotDTO struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type scheduleDTO struct {
	ID            int64     `json:"id"`
	Slots         []slotDTO `json:"slots"`
	Timezone      string    `json:"timezone"`
	Status        string    `json:"status"`
	SelectedSlots []slotDTO `json:"selected_slots"`
	URL           string    `json:"url,omitempty"`
	CreatedAt     string    `json:"created_at,omitempty"`
	UpdatedAt     string    `json:"updated_at,omitempty"`
}

func (h *ScheduleHandler) toScheduleDTO(schedule application.Schedule) scheduleDTO {
	return scheduleDTO{
		ID:            schedule.ID,
		Slots:         toSlotDTOs(schedule.Slots),
		Timezone:      schedule.Timezone,
		Status:        schedule.Status,
		SelectedSlots: toSlotDTOs(schedule.SelectedSlots),
		URL:           h.scheduleURL(schedule.ID),
		CreatedAt:     schedule.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     schedule.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSlots(dtos []slotDTO) []application.Slot {
	if len(dtos) == 0 {
		return nil
	}
	slots := make([]application.Slot, 0, len(dtos))
	for _, dto := range dtos {
		slots = append(slots, application.Slot{
			Date:      strings.TrimSpace(dto.Date),
			StartTime: strings.TrimSpace(dto.StartTime),
			EndTime:   strings.TrimSpace(dto.EndTime),
		})
	}
	return slots
}

// toSlotDTOs keeps nil selections nil so the JSON field renders as null until
// the schedule is confirmed.
func toSlotDTOs(slots []application.Slot) []slotDTO {
	if slots == nil {
		return nil
	}
	dtos := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, slotDTO{Date: slot.Date, StartTime: slot.StartTime, EndTime: slot.EndTime})
	}
	return dtos
}
