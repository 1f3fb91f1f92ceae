package models

import "time"

// Todo is one task row. DayTitle groups tasks for bulk deletion and
// TaskTitle is optional display text; both are stored as NULL when the
// client submits an empty value. IsCompleted is always exactly 0 or 1.
type Todo struct {
	ID              int64         `json:"id"`
	DayTitle        *string       `json:"day_title"`
	TaskNumber      int           `json:"task_number"`
	TaskDescription string        `json:"task_description"`
	TaskTitle       *string       `json:"task_title"`
	IsCompleted     int           `json:"is_completed"`
	CreatedAt       time.Time     `json:"created_at"`
	Attachments     []*Attachment `json:"attachments"`
}
