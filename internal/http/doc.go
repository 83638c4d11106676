// Package http provides HTTP handlers and middleware for the slotshare API.
//
// The router exposes the following endpoints:
//   - POST /schedules: creates a shared availability proposal. Body:
//     {"schedule":{"timezone","slots":[{"date","startTime","endTime"},...]}}.
//     Responds 201 with {id, slots, timezone, status:"pending",
//     selected_slots:null, url}.
//   - GET /schedules/{id}: returns the stored schedule record including the
//     selected slots once confirmed.
//   - POST /schedules/{id}/select: records the remote party's chosen slots
//     ({"selected_slots":[...]}) and transitions the schedule to confirmed.
//     Responds {success:true, redirect_url} pointing at the confirmation page.
//   - GET /schedules/{id}/confirmation: human-facing confirmation page.
//   - GET /up: health probe, exempt from authentication.
//
// Request/response DTOs live alongside their handlers so tests and
// documentation share the same ground truth.
package http
