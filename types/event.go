package types

import (
	"encoding/json"
	"time"
)

// Event names published after successful mutations.
const (
	EventUserRegistered     = "user.registered"
	EventYoungPersonCreated = "young_person.created"
	EventYoungPersonUpdated = "young_person.updated"
	EventShiftLogCreated    = "shift_log.created"
	EventDocumentUploaded   = "document.uploaded"
	EventYPDocumentUploaded = "yp_document.uploaded"
	EventHRActivityCreated  = "hr_activity.created"
	EventHRActivityUpdated  = "hr_activity.status_changed"
	EventTimesheetSubmitted = "timesheet.submitted"
	EventTimesheetReviewed  = "timesheet.reviewed"
	EventTaskCreated        = "task.created"
	EventContactCreated     = "help_support_contact.created"
)

// Event is the envelope written to the broker.
type Event struct {
	Name       string          `json:"name"`
	ActorID    int             `json:"actorId"`
	ResourceID int             `json:"resourceId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
