package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_render_scheduled(t *testing.T) {
	event := ClassEvent{
		ClassID:     "cls-9",
		Title:       "Physics Crash Course",
		Subject:     "Physics",
		Board:       "CBSE",
		ClassName:   "Class 10",
		ScheduledAt: time.Date(2021, time.March, 15, 17, 0, 0, 0, time.UTC),
		TimeSlot:    "5:00 PM",
		Days:        []string{"Mon", "Wed"},
		MeetingLink: "https://meet.test/xyz",
	}

	msg := render(KindScheduled, event, "Lulu")

	assert.Equal(t, "Reminder: Physics Class Scheduled - Monday, March 15, 2021", msg.emailSubject)
	assert.Contains(t, msg.emailText, "Hello Lulu")
	assert.Contains(t, msg.emailText, "Board: CBSE")
	assert.Contains(t, msg.emailText, "Class: Class 10")
	assert.Contains(t, msg.emailText, "Days: Mon, Wed")
	assert.Contains(t, msg.emailText, "Link: https://meet.test/xyz")
	assert.Contains(t, msg.emailHTML, "<strong>Subject:</strong> Physics")
	assert.Equal(t, msg.emailText, msg.whatsApp)

	assert.Equal(t, "Physics Class Reminder", msg.push.Title)
	assert.Equal(t, "Your class is scheduled for Monday, March 15, 2021 at 5:00 PM", msg.push.Body)
	assert.Equal(t, "cls-9", msg.push.Data.ClassID)
	assert.Equal(t, "/live_classes.html", msg.push.Data.URL)
	assert.Len(t, msg.push.Actions, 1)
}

func Test_render_scheduled_optionalFieldsOmitted(t *testing.T) {
	event := ClassEvent{
		Subject:     "Chemistry",
		ScheduledAt: time.Date(2021, time.March, 16, 9, 30, 0, 0, time.UTC),
	}

	msg := render(KindScheduled, event, "Moyo")

	assert.NotContains(t, msg.emailText, "Board:")
	assert.NotContains(t, msg.emailText, "Class:")
	assert.NotContains(t, msg.emailText, "Days:")
	assert.NotContains(t, msg.emailText, "Link:")
	// time slot falls back to the scheduled time
	assert.Contains(t, msg.emailText, "Time: 9:30 AM")
}

func Test_render_subjectFallbacks(t *testing.T) {
	msg := render(KindScheduled, ClassEvent{Title: "Exam Prep", ScheduledAt: time.Now()}, "Nia")
	assert.Contains(t, msg.emailSubject, "Exam Prep")

	msg = render(KindScheduled, ClassEvent{ScheduledAt: time.Now()}, "Nia")
	assert.Contains(t, msg.emailSubject, "Live Class")
}

func Test_render_cancelled(t *testing.T) {
	event := ClassEvent{
		Subject:     "Biology",
		ScheduledAt: time.Date(2021, time.April, 2, 11, 0, 0, 0, time.UTC),
		Reason:      "teacher unavailable",
	}

	msg := render(KindCancelled, event, "Omari")

	assert.Equal(t, "Class Cancelled: Biology - Friday, April 2, 2021", msg.emailSubject)
	assert.Contains(t, msg.emailText, "Reason: teacher unavailable")
	assert.Contains(t, msg.emailHTML, "teacher unavailable")
	assert.Equal(t, "Class Cancelled: Biology", msg.push.Title)
	assert.Empty(t, msg.push.Actions)

	// missing reason renders the generic phrase
	event.Reason = ""
	msg = render(KindCancelled, event, "Omari")
	assert.Contains(t, msg.emailText, "Reason: unforeseen circumstances")
}
