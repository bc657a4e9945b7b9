package liveclass

import (
	"time"

	"github.com/najahtutors/backend/core/notification"
)

// Status of a live class.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type LiveClass struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Subject            string    `json:"subject"`
	Board              string    `json:"board,omitempty"`
	ClassName          string    `json:"class_name,omitempty"`
	ScheduledAt        time.Time `json:"scheduled_at"`
	DurationMins       int       `json:"duration_mins"`
	TimeSlot           string    `json:"time_slot,omitempty"`
	Days               []string  `json:"days,omitempty"`
	MeetingLink        string    `json:"meeting_link,omitempty"`
	MaxStudents        int       `json:"max_students"`
	Status             Status    `json:"status"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	EnrolledStudentIDs []string  `json:"enrolled_student_ids"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Event takes an immutable snapshot of the class for notification dispatch.
func (c LiveClass) Event() notification.ClassEvent {
	days := make([]string, len(c.Days))
	copy(days, c.Days)
	return notification.ClassEvent{
		ClassID:     c.ID,
		Title:       c.Title,
		Subject:     c.Subject,
		Board:       c.Board,
		ClassName:   c.ClassName,
		ScheduledAt: c.ScheduledAt,
		TimeSlot:    c.TimeSlot,
		Days:        days,
		MeetingLink: c.MeetingLink,
		Reason:      c.CancellationReason,
	}
}

func (c LiveClass) isEnrolled(studentID string) bool {
	for _, id := range c.EnrolledStudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

type NewLiveClass struct {
	Title              string    `json:"title" validate:"required"`
	Subject            string    `json:"subject" validate:"required"`
	Board              string    `json:"board"`
	ClassName          string    `json:"class_name"`
	ScheduledAt        time.Time `json:"scheduled_at" validate:"required"`
	DurationMins       int       `json:"duration_mins" validate:"omitempty,min=1"`
	TimeSlot           string    `json:"time_slot"`
	Days               []string  `json:"days"`
	MeetingLink        string    `json:"meeting_link" validate:"omitempty,url"`
	MaxStudents        int       `json:"max_students" validate:"omitempty,min=1"`
	EnrolledStudentIDs []string  `json:"enrolled_student_ids"`
}

type UpdateLiveClass struct {
	Title        string    `json:"title"`
	Subject      string    `json:"subject"`
	Board        string    `json:"board"`
	ClassName    string    `json:"class_name"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	DurationMins int       `json:"duration_mins" validate:"omitempty,min=1"`
	TimeSlot     string    `json:"time_slot"`
	Days         []string  `json:"days"`
	MeetingLink  string    `json:"meeting_link" validate:"omitempty,url"`
	MaxStudents  int       `json:"max_students" validate:"omitempty,min=1"`
}

// QueryFilter applies an AND operation on its set fields.
type QueryFilter struct {
	Status Status
}
