package types

import "time"

// TaskFrequency is how often a task recurs.
type TaskFrequency string

const (
	FrequencyDaily   TaskFrequency = "daily"
	FrequencyWeekly  TaskFrequency = "weekly"
	FrequencyMonthly TaskFrequency = "monthly"
)

type Task struct {
	ID          int           `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Frequency   TaskFrequency `json:"frequency"`
	AssignedTo  *int          `json:"assignedTo"`
	Completed   bool          `json:"completed"`
	DueDate     *time.Time    `json:"dueDate"`
	CreatedBy   *int          `json:"createdBy"`
	CreatedAt   time.Time     `json:"createdAt"`
}
