package student

import (
	"time"

	"github.com/najahtutors/backend/core/notification"
)

type Student struct {
	ID               string                    `json:"id"`
	Name             string                    `json:"name"`
	Email            string                    `json:"email"`
	Phone            string                    `json:"phone,omitempty"`
	Board            string                    `json:"board,omitempty"`
	ClassName        string                    `json:"class_name,omitempty"`
	PushSubscription string                    `json:"-"`
	Preferences      *notification.Preferences `json:"notification_preferences,omitempty"`
	IsActive         bool                      `json:"is_active"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

// Recipient converts the student into a notification recipient snapshot.
func (s Student) Recipient() notification.Recipient {
	return notification.Recipient{
		Name:             s.Name,
		Email:            s.Email,
		Phone:            s.Phone,
		PushSubscription: s.PushSubscription,
		Preferences:      s.Preferences,
	}
}

type NewStudent struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,phone_"`
	Board     string `json:"board"`
	ClassName string `json:"class_name"`
}

type UpdateStudent struct {
	Name      string `json:"name" validate:"omitempty"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,phone_"`
	Board     string `json:"board"`
	ClassName string `json:"class_name"`
	IsActive  *bool  `json:"is_active"`
}

// UpdatePreferences carries partial preference flag updates;
// a nil field leaves the stored flag untouched.
type UpdatePreferences struct {
	Email    *bool `json:"email"`
	WhatsApp *bool `json:"whatsapp"`
	Push     *bool `json:"push"`
}
