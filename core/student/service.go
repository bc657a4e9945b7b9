package student

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedStudents ...Student) error
		CreateStudent(std Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		GetStudentByEmail(email string) (Student, error)
		// GetStudentsByID returns the students matching ids; unknown ids are skipped.
		GetStudentsByID(ids ...string) ([]Student, error)
		UpdateStudent(std Student, isActive *bool) (Student, error)
		DeleteStudentsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(email string, exclStudents ...Student) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclStudents...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	if err := svc.checkUniqueness(ns.Email); err != nil {
		return Student{}, err
	}
	now := time.Now().UTC()
	std := Student{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		Email:     ns.Email,
		Phone:     ns.Phone,
		Board:     ns.Board,
		ClassName: ns.ClassName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(std)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id string) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByEmail(email string) (Student, error) {
	return svc.repo.GetStudentByEmail(core.CleanString(email, true /* lower */))
}

// Recipients resolves ids to notification recipients, skipping inactive students.
func (svc *Service) Recipients(ids ...string) ([]notification.Recipient, error) {
	students, err := svc.repo.GetStudentsByID(ids...)
	if err != nil {
		return nil, err
	}
	recipients := make([]notification.Recipient, 0, len(students))
	for _, std := range students {
		if !std.IsActive {
			continue
		}
		recipients = append(recipients, std.Recipient())
	}
	return recipients, nil
}

func (svc *Service) Update(id string, us UpdateStudent) (Student, error) {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	if us.Email != "" && us.Email != std.Email {
		if err := svc.checkUniqueness(us.Email, std); err != nil {
			return Student{}, err
		}
		std.Email = us.Email
	}
	if us.Name != "" {
		std.Name = us.Name
	}
	if us.Phone != "" {
		std.Phone = us.Phone
	}
	if us.Board != "" {
		std.Board = us.Board
	}
	if us.ClassName != "" {
		std.ClassName = us.ClassName
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std, us.IsActive)
}

// SetPreferences applies partial channel opt-in updates; unset fields keep their stored value.
func (svc *Service) SetPreferences(id string, up UpdatePreferences) (Student, error) {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	prefs := std.Preferences
	if prefs == nil {
		prefs = &notification.Preferences{}
	}
	if up.Email != nil {
		prefs.Email = up.Email
	}
	if up.WhatsApp != nil {
		prefs.WhatsApp = up.WhatsApp
	}
	if up.Push != nil {
		prefs.Push = up.Push
	}
	std.Preferences = prefs
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std, nil)
}

func (svc *Service) SetPushSubscription(id, subscription string) (Student, error) {
	std, err := svc.repo.GetStudentByID(id)
	if err != nil {
		return Student{}, err
	}
	std.PushSubscription = subscription
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(std, nil)
}

func (svc *Service) ClearPushSubscription(id string) (Student, error) {
	return svc.SetPushSubscription(id, "")
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteStudentsByID(ids...)
}
