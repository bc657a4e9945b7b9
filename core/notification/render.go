package notification

import (
	"bytes"
	"fmt"
	htmltmpl "html/template"
	"strings"
	"sync"
	texttmpl "text/template"
)

// templates are parsed once from the embedded sources below; rendering is pure
// and a malformed/missing event field degrades to an omitted line, never an error.
var (
	tmplInit sync.Once

	scheduledTextTmpl *texttmpl.Template
	cancelledTextTmpl *texttmpl.Template
	scheduledHTMLTmpl *htmltmpl.Template
	cancelledHTMLTmpl *htmltmpl.Template
)

type templateData struct {
	Name        string
	Subject     string
	Board       string
	ClassName   string
	Date        string
	TimeSlot    string
	Days        string
	MeetingLink string
	Reason      string
}

// messages holds the rendered per-channel payloads for one recipient.
type messages struct {
	emailSubject string
	emailText    string
	emailHTML    string
	whatsApp     string
	push         PushPayload
}

const genericCancelReason = "unforeseen circumstances"

func newTemplateData(event ClassEvent, name string) templateData {
	data := templateData{
		Name:        name,
		Subject:     event.Subject,
		Board:       event.Board,
		ClassName:   event.ClassName,
		TimeSlot:    event.TimeSlot,
		Days:        strings.Join(event.Days, ", "),
		MeetingLink: event.MeetingLink,
		Reason:      event.Reason,
	}
	if data.Subject == "" {
		if event.Title != "" {
			data.Subject = event.Title
		} else {
			data.Subject = "Live Class"
		}
	}
	if !event.ScheduledAt.IsZero() {
		data.Date = event.ScheduledAt.Format("Monday, January 2, 2006")
		if data.TimeSlot == "" {
			data.TimeSlot = event.ScheduledAt.Format("3:04 PM")
		}
	}
	if data.Reason == "" {
		data.Reason = genericCancelReason
	}
	return data
}

func render(kind Kind, event ClassEvent, name string) messages {
	tmplInit.Do(parseTemplates)
	data := newTemplateData(event, name)

	var msg messages
	switch kind {
	case KindCancelled:
		msg.emailSubject = fmt.Sprintf("Class Cancelled: %s - %s", data.Subject, data.Date)
		msg.emailText = executeText(cancelledTextTmpl, data)
		msg.emailHTML = executeHTML(cancelledHTMLTmpl, data)
		msg.whatsApp = executeText(cancelledTextTmpl, data)
		msg.push = PushPayload{
			Title: fmt.Sprintf("Class Cancelled: %s", data.Subject),
			Body:  fmt.Sprintf("Your class scheduled for %s has been cancelled", data.Date),
			Icon:  "/najah.png",
			Data:  PushData{URL: "/live_classes.html", ClassID: event.ClassID},
		}
	default: // KindScheduled
		msg.emailSubject = fmt.Sprintf("Reminder: %s Class Scheduled - %s", data.Subject, data.Date)
		msg.emailText = executeText(scheduledTextTmpl, data)
		msg.emailHTML = executeHTML(scheduledHTMLTmpl, data)
		msg.whatsApp = executeText(scheduledTextTmpl, data)
		msg.push = PushPayload{
			Title: fmt.Sprintf("%s Class Reminder", data.Subject),
			Body:  fmt.Sprintf("Your class is scheduled for %s at %s", data.Date, data.TimeSlot),
			Icon:  "/najah.png",
			Badge: "/najah.png",
			Data:  PushData{URL: "/live_classes.html", ClassID: event.ClassID},
			Actions: []PushAction{
				{Action: "view", Title: "View Details"},
			},
		}
	}
	return msg
}

func executeText(tmpl *texttmpl.Template, data templateData) string {
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return fallbackBody(data)
	}
	return buff.String()
}

func executeHTML(tmpl *htmltmpl.Template, data templateData) string {
	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return fallbackBody(data)
	}
	return buff.String()
}

func fallbackBody(data templateData) string {
	return fmt.Sprintf("Hello %s, please check your Najah Tutors dashboard for updates on your %s class.", data.Name, data.Subject)
}

func parseTemplates() {
	scheduledTextTmpl = texttmpl.Must(texttmpl.New("scheduled").Parse(scheduledTextSrc))
	cancelledTextTmpl = texttmpl.Must(texttmpl.New("cancelled").Parse(cancelledTextSrc))
	scheduledHTMLTmpl = htmltmpl.Must(htmltmpl.New("scheduled").Parse(scheduledHTMLSrc))
	cancelledHTMLTmpl = htmltmpl.Must(htmltmpl.New("cancelled").Parse(cancelledHTMLSrc))
}

const scheduledTextSrc = `*Najah Tutors - Class Reminder*

Hello {{.Name}},

Your *{{.Subject}}* class is scheduled:

Date: {{.Date}}
Time: {{.TimeSlot}}
{{- if .Board}}
Board: {{.Board}}
{{- end}}
{{- if .ClassName}}
Class: {{.ClassName}}
{{- end}}
{{- if .Days}}
Days: {{.Days}}
{{- end}}
{{- if .MeetingLink}}
Link: {{.MeetingLink}}
{{- end}}

Please join on time. See you there!

Best regards,
Najah Tutors Team`

const cancelledTextSrc = `*Najah Tutors - Class Cancelled*

Hello {{.Name}},

We regret to inform you that your *{{.Subject}}* class scheduled for {{.Date}} has been cancelled.

Reason: {{.Reason}}

Please check your dashboard for updates.

Best regards,
Najah Tutors Team`

const scheduledHTMLSrc = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1>Class Reminder</h1>
    </div>
    <div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
      <h2>Hello {{.Name}},</h2>
      <p>This is a reminder about your upcoming live class:</p>
      <div style="background: white; padding: 20px; border-radius: 8px; border-left: 4px solid #667eea;">
        <p><strong>Subject:</strong> {{.Subject}}</p>
        {{if .Board}}<p><strong>Board:</strong> {{.Board}}</p>{{end}}
        {{if .ClassName}}<p><strong>Class:</strong> {{.ClassName}}</p>{{end}}
        <p><strong>Date:</strong> {{.Date}}</p>
        <p><strong>Time:</strong> {{.TimeSlot}}</p>
        {{if .Days}}<p><strong>Days:</strong> {{.Days}}</p>{{end}}
        {{if .MeetingLink}}<p><strong>Meeting Link:</strong> <a href="{{.MeetingLink}}">Join Class</a></p>{{else}}<p>Link will be shared soon.</p>{{end}}
      </div>
      <p>Please make sure to join the class on time. We look forward to seeing you!</p>
      <p>Best regards,<br><strong>Najah Tutors Team</strong></p>
    </div>
    <div style="text-align: center; margin-top: 30px; color: #666; font-size: 12px;">
      <p>This is an automated notification. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>`

const cancelledHTMLSrc = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: #c53030; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
      <h1>Class Cancelled</h1>
    </div>
    <div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px;">
      <h2>Hello {{.Name}},</h2>
      <p>We regret to inform you that the following class has been cancelled:</p>
      <div style="background: #fff3cd; padding: 15px; border-radius: 8px; border-left: 4px solid #ffc107;">
        <strong>Subject:</strong> {{.Subject}}<br>
        <strong>Date:</strong> {{.Date}}<br>
        <strong>Reason:</strong> {{.Reason}}
      </div>
      <p>We apologize for any inconvenience. Please check your dashboard for updates on rescheduled classes.</p>
      <p>Best regards,<br><strong>Najah Tutors Team</strong></p>
    </div>
    <div style="text-align: center; margin-top: 30px; color: #666; font-size: 12px;">
      <p>This is an automated notification. Please do not reply to this email.</p>
    </div>
  </div>
</body>
</html>`
