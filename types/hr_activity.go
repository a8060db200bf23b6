package types

import "time"

// HRActivityType enumerates the kinds of scheduled HR event.
type HRActivityType string

const (
	HRProbationReview HRActivityType = "probation_review"
	HRDisciplinary    HRActivityType = "disciplinary"
	HRSupervision     HRActivityType = "supervision"
	HRMeeting         HRActivityType = "meeting"
)

// HRActivityStatus is the lifecycle state of an HR activity.
type HRActivityStatus string

const (
	HRStatusPending   HRActivityStatus = "pending"
	HRStatusCompleted HRActivityStatus = "completed"
	HRStatusCancelled HRActivityStatus = "cancelled"
)

// HRActivity is an HR event scheduled against an employee.
type HRActivity struct {
	ID            int              `json:"id"`
	Type          HRActivityType   `json:"type"`
	Outcome       string           `json:"outcome"`
	Description   *string          `json:"description"`
	EmployeeID    int              `json:"employeeId"`
	ScheduledDate time.Time        `json:"scheduledDate"`
	Status        HRActivityStatus `json:"status"`
	DocumentPath  *string          `json:"documentPath"`
	CreatedBy     int              `json:"createdBy"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// HRActivityView is an activity joined with its employee. Employee is nil
// when the referenced user no longer resolves.
type HRActivityView struct {
	HRActivity
	Employee *UserSummary `json:"employee"`
}
