package enrollment

import "time"

// Source of an enrollment.
const (
	SourceDirect    = "direct"
	SourceMarketing = "marketing"
)

type Enrollment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	ClassID   string    `json:"class_id,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// MarketingEnrollment is a signup captured from the public marketing funnel.
// The student account may not exist yet; it is created on the fly.
type MarketingEnrollment struct {
	StudentName string `json:"student_name" validate:"required"`
	ParentName  string `json:"parent_name"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,phone_"`
	Board       string `json:"board"`
	ClassName   string `json:"class_name"`
	ClassID     string `json:"class_id"`
}
