package types

import "time"

// ShiftType is the part of the day a log entry was written for.
type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftNight     ShiftType = "night"
)

// LogType categorises a shift log entry.
type LogType string

const (
	LogDaily    LogType = "daily"
	LogGrumbles LogType = "grumbles"
	LogTakeaway LogType = "takeaway"
	LogMissing  LogType = "missing"
	LogFound    LogType = "found"
)

// ShiftLog is a narrative entry written by a carer about a resident.
type ShiftLog struct {
	ID            int       `json:"id"`
	YoungPersonID int       `json:"youngPersonId"`
	CarerID       int       `json:"carerId"`
	ShiftType     ShiftType `json:"shiftType"`
	LogType       LogType   `json:"logType"`
	Content       string    `json:"content"`
	Concerns      *string   `json:"concerns"`
	ShiftDate     time.Time `json:"shiftDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ShiftLogFilter narrows a shift log listing. A zero YoungPersonID lists
// entries for every resident.
type ShiftLogFilter struct {
	YoungPersonID int
	Limit         int
}
