package enrollment

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("enrollment not found")
)

type (
	Repository interface {
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		QueryAllEnrollments() ([]Enrollment, error)
		GetEnrollmentByID(id string) (Enrollment, error)
		DeleteEnrollmentsByID(ids ...string) error
	}

	Service struct {
		repo     Repository
		students *student.Service
		classes  *liveclass.Service
		mail     notification.EmailSender
		logger   core.Logger
	}
)

func NewService(repo Repository, students *student.Service, classes *liveclass.Service, mail notification.EmailSender, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		students: students,
		classes:  classes,
		mail:     mail,
		logger:   logger,
	}
}

// EnrollDirect enrolls an existing student into a class; the class service
// fires the schedule notification without blocking this call.
func (svc *Service) EnrollDirect(studentID, classID string) (Enrollment, error) {
	if _, err := svc.classes.Enroll(classID, studentID); err != nil {
		return Enrollment{}, err
	}
	return svc.repo.CreateEnrollment(Enrollment{
		ID:        uuid.New().String(),
		StudentID: studentID,
		ClassID:   classID,
		Source:    SourceDirect,
		CreatedAt: time.Now().UTC(),
	})
}

// EnrollMarketing registers a marketing-funnel signup: the student account is
// created if it does not exist, a welcome email goes out, and when a class is
// given the student is enrolled into it (which fires the schedule notification).
func (svc *Service) EnrollMarketing(me MarketingEnrollment) (Enrollment, error) {
	std, err := svc.students.GetByEmail(me.Email)
	if err != nil {
		if err != student.ErrNotFound {
			return Enrollment{}, err
		}
		std, err = svc.students.Create(student.NewStudent{
			Name:      me.StudentName,
			Email:     me.Email,
			Phone:     me.Phone,
			Board:     me.Board,
			ClassName: me.ClassName,
		})
		if err != nil {
			return Enrollment{}, err
		}
		svc.sendWelcomeEmail(std)
	}

	if me.ClassID != "" {
		if _, err = svc.classes.Enroll(me.ClassID, std.ID); err != nil && err != liveclass.ErrAlreadyEnrolled {
			return Enrollment{}, err
		}
	}

	return svc.repo.CreateEnrollment(Enrollment{
		ID:        uuid.New().String(),
		StudentID: std.ID,
		ClassID:   me.ClassID,
		Source:    SourceMarketing,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) QueryAll() ([]Enrollment, error) {
	return svc.repo.QueryAllEnrollments()
}

func (svc *Service) GetByID(id string) (Enrollment, error) {
	return svc.repo.GetEnrollmentByID(id)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteEnrollmentsByID(ids...)
}

// sendWelcomeEmail greets a newly registered student; delivery is best-effort
// and never blocks or fails the enrollment.
func (svc *Service) sendWelcomeEmail(std student.Student) {
	go func() {
		to := mail.Address{Name: std.Name, Address: std.Email}
		subject := "Welcome to Najah Tutors"
		text := fmt.Sprintf(
			"Hello %s,\n\nThank you for enrolling in our live online classes. Your account has been created successfully!\n\nBest regards,\nNajah Tutors Team",
			std.Name,
		)
		html := fmt.Sprintf(
			"<h2>Hello %s,</h2><p>Thank you for enrolling in our live online classes. Your account has been created successfully!</p><p>Best regards,<br><strong>Najah Tutors Team</strong></p>",
			std.Name,
		)
		if _, err := svc.mail.SendEmail(context.Background(), to, subject, text, html); err != nil {
			svc.logger.Warn(fmt.Sprintf("sending welcome email to %s: %v", std.Email, err))
		}
	}()
}
