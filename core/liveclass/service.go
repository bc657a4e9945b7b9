package liveclass

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
)

var (
	// errors
	ErrNotFound        = errors.New("live class not found")
	ErrAlreadyEnrolled = errors.New("student already enrolled in this class")
	ErrClassFull       = errors.New("class is full")
	ErrClassCancelled  = errors.New("class has been cancelled")
)

const (
	defaultDurationMins = 60
	defaultMaxStudents  = 50
)

type (
	Repository interface {
		CreateLiveClass(cls LiveClass) (LiveClass, error)
		QueryAllLiveClasses() ([]LiveClass, error)
		FilterLiveClasses(filter QueryFilter) ([]LiveClass, error)
		GetLiveClassByID(id string) (LiveClass, error)
		UpdateLiveClass(cls LiveClass) (LiveClass, error)
		DeleteLiveClassesByID(ids ...string) error
	}

	Service struct {
		repo     Repository
		students *student.Service
		notifier *notification.Service
		logger   core.Logger
	}
)

func NewService(repo Repository, students *student.Service, notifier *notification.Service, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		students: students,
		notifier: notifier,
		logger:   logger,
	}
}

// Schedule creates a class and notifies any pre-enrolled students.
// The caller's response never waits on notification delivery.
func (svc *Service) Schedule(nc NewLiveClass) (LiveClass, error) {
	now := time.Now().UTC()
	cls := LiveClass{
		ID:                 uuid.New().String(),
		Title:              nc.Title,
		Subject:            nc.Subject,
		Board:              nc.Board,
		ClassName:          nc.ClassName,
		ScheduledAt:        nc.ScheduledAt,
		DurationMins:       nc.DurationMins,
		TimeSlot:           nc.TimeSlot,
		Days:               nc.Days,
		MeetingLink:        nc.MeetingLink,
		MaxStudents:        nc.MaxStudents,
		Status:             StatusScheduled,
		EnrolledStudentIDs: nc.EnrolledStudentIDs,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if cls.DurationMins == 0 {
		cls.DurationMins = defaultDurationMins
	}
	if cls.MaxStudents == 0 {
		cls.MaxStudents = defaultMaxStudents
	}

	cls, err := svc.repo.CreateLiveClass(cls)
	if err != nil {
		return LiveClass{}, err
	}
	svc.notifyScheduled(cls, cls.EnrolledStudentIDs)
	return cls, nil
}

func (svc *Service) QueryAll() ([]LiveClass, error) {
	return svc.repo.QueryAllLiveClasses()
}

func (svc *Service) Filter(filter QueryFilter) ([]LiveClass, error) {
	return svc.repo.FilterLiveClasses(filter)
}

func (svc *Service) GetByID(id string) (LiveClass, error) {
	return svc.repo.GetLiveClassByID(id)
}

func (svc *Service) Update(id string, uc UpdateLiveClass) (LiveClass, error) {
	cls, err := svc.repo.GetLiveClassByID(id)
	if err != nil {
		return LiveClass{}, err
	}
	if uc.Title != "" {
		cls.Title = uc.Title
	}
	if uc.Subject != "" {
		cls.Subject = uc.Subject
	}
	if uc.Board != "" {
		cls.Board = uc.Board
	}
	if uc.ClassName != "" {
		cls.ClassName = uc.ClassName
	}
	if !uc.ScheduledAt.IsZero() {
		cls.ScheduledAt = uc.ScheduledAt
	}
	if uc.DurationMins != 0 {
		cls.DurationMins = uc.DurationMins
	}
	if uc.TimeSlot != "" {
		cls.TimeSlot = uc.TimeSlot
	}
	if uc.Days != nil {
		cls.Days = uc.Days
	}
	if uc.MeetingLink != "" {
		cls.MeetingLink = uc.MeetingLink
	}
	if uc.MaxStudents != 0 {
		cls.MaxStudents = uc.MaxStudents
	}
	cls.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLiveClass(cls)
}

// Cancel transitions the class to cancelled and notifies enrolled students.
func (svc *Service) Cancel(id, reason string) (LiveClass, error) {
	cls, err := svc.repo.GetLiveClassByID(id)
	if err != nil {
		return LiveClass{}, err
	}
	if cls.Status == StatusCancelled {
		return cls, nil
	}
	cls.Status = StatusCancelled
	cls.CancellationReason = reason
	cls.UpdatedAt = time.Now().UTC()
	cls, err = svc.repo.UpdateLiveClass(cls)
	if err != nil {
		return LiveClass{}, err
	}

	svc.detach(func(ctx context.Context, recipients []notification.Recipient) ([]notification.DispatchResult, error) {
		return svc.notifier.NotifyClassCancelled(ctx, recipients, cls.Event(), reason)
	}, cls.EnrolledStudentIDs)
	return cls, nil
}

// Enroll adds the student to the class and notifies them of the schedule.
func (svc *Service) Enroll(classID, studentID string) (LiveClass, error) {
	cls, err := svc.repo.GetLiveClassByID(classID)
	if err != nil {
		return LiveClass{}, err
	}
	if cls.Status == StatusCancelled {
		return LiveClass{}, ErrClassCancelled
	}
	if cls.isEnrolled(studentID) {
		return LiveClass{}, ErrAlreadyEnrolled
	}
	if len(cls.EnrolledStudentIDs) >= cls.MaxStudents {
		return LiveClass{}, ErrClassFull
	}
	if _, err = svc.students.GetByID(studentID); err != nil {
		return LiveClass{}, err
	}

	cls.EnrolledStudentIDs = append(cls.EnrolledStudentIDs, studentID)
	cls.UpdatedAt = time.Now().UTC()
	cls, err = svc.repo.UpdateLiveClass(cls)
	if err != nil {
		return LiveClass{}, err
	}
	svc.notifyScheduled(cls, []string{studentID})
	return cls, nil
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteLiveClassesByID(ids...)
}

// Renotify re-dispatches the schedule notification to every enrolled student
// and waits for the results, for admin-triggered re-sends.
func (svc *Service) Renotify(ctx context.Context, id string) ([]notification.DispatchResult, error) {
	cls, err := svc.repo.GetLiveClassByID(id)
	if err != nil {
		return nil, err
	}
	recipients, err := svc.students.Recipients(cls.EnrolledStudentIDs...)
	if err != nil {
		return nil, err
	}
	return svc.notifier.NotifyClassScheduled(ctx, recipients, cls.Event())
}

func (svc *Service) notifyScheduled(cls LiveClass, studentIDs []string) {
	svc.detach(func(ctx context.Context, recipients []notification.Recipient) ([]notification.DispatchResult, error) {
		return svc.notifier.NotifyClassScheduled(ctx, recipients, cls.Event())
	}, studentIDs)
}

// detach runs a dispatch without blocking the caller; the dispatcher logs every
// result internally, so only resolution errors need reporting here.
func (svc *Service) detach(dispatch func(context.Context, []notification.Recipient) ([]notification.DispatchResult, error), studentIDs []string) {
	if len(studentIDs) == 0 {
		return
	}
	go func() {
		recipients, err := svc.students.Recipients(studentIDs...)
		if err != nil {
			svc.logError(fmt.Sprintf("resolving notification recipients: %v", err), err)
			return
		}
		if _, err := dispatch(context.Background(), recipients); err != nil {
			svc.logError(fmt.Sprintf("dispatching notifications: %v", err), err)
		}
	}()
}

func (svc *Service) logError(msg string, err error) {
	if svc.logger == nil {
		return
	}
	svc.logger.Error(msg, err)
}
