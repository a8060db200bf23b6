package types

import "time"

// TimesheetStatus is the approval state of a timesheet.
type TimesheetStatus string

const (
	TimesheetPending  TimesheetStatus = "pending"
	TimesheetApproved TimesheetStatus = "approved"
	TimesheetRejected TimesheetStatus = "rejected"
)

// IsReview reports whether s is a status a manager may set.
func (s TimesheetStatus) IsReview() bool {
	return s == TimesheetApproved || s == TimesheetRejected
}

// Timesheet is a single shift worked by a user.
type Timesheet struct {
	ID         int             `json:"id"`
	UserID     int             `json:"userId"`
	ShiftDate  time.Time       `json:"shiftDate"`
	TimeIn     time.Time       `json:"timeIn"`
	TimeOut    time.Time       `json:"timeOut"`
	IsSleepIn  bool            `json:"isSleepIn"`
	Notes      *string         `json:"notes"`
	Status     TimesheetStatus `json:"status"`
	ReviewedBy *int            `json:"reviewedBy"`
	ReviewedAt *time.Time      `json:"reviewedAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Hours returns the worked duration in hours.
func (t Timesheet) Hours() float64 {
	return t.TimeOut.Sub(t.TimeIn).Hours()
}

// TimesheetView is a timesheet joined with its owner's username, used by
// the manager omnibus listing.
type TimesheetView struct {
	Timesheet
	Username string `json:"username"`
}
