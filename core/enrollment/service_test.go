package enrollment_test

import (
	"context"
	"net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/storage/database/dummy"
)

type recordingEmailSender struct {
	mu       sync.Mutex
	ch       chan struct{}
	subjects []string
}

func newRecordingEmailSender() *recordingEmailSender {
	return &recordingEmailSender{ch: make(chan struct{}, 16)}
}

func (s *recordingEmailSender) SendEmail(_ context.Context, _ mail.Address, subject, _, _ string) (string, error) {
	s.mu.Lock()
	s.subjects = append(s.subjects, subject)
	s.mu.Unlock()
	s.ch <- struct{}{}
	return "email-1", nil
}

func (s *recordingEmailSender) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for email delivery")
	}
}

func (s *recordingEmailSender) welcomeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, subj := range s.subjects {
		if strings.Contains(subj, "Welcome") {
			n++
		}
	}
	return n
}

func setup(t *testing.T) (*enrollment.Service, *student.Service, *liveclass.Service, *recordingEmailSender) {
	t.Helper()
	db := dummy.Open()
	stdSvc := student.NewService(dummy.NewStudentRepository(db))

	mailSvc := newRecordingEmailSender()
	notifier := notification.NewService(mailSvc, nil, nil, nil)
	classSvc := liveclass.NewService(dummy.NewLiveClassRepository(db), stdSvc, notifier, nil)

	svc := enrollment.NewService(dummy.NewEnrollmentRepository(db), stdSvc, classSvc, mailSvc, nil)
	return svc, stdSvc, classSvc, mailSvc
}

func scheduleClass(t *testing.T, classSvc *liveclass.Service) liveclass.LiveClass {
	t.Helper()
	cls, err := classSvc.Schedule(liveclass.NewLiveClass{
		Title:       "Geometry",
		Subject:     "Mathematics",
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	return cls
}

func Test_Service_EnrollDirect(t *testing.T) {
	svc, stdSvc, classSvc, mailSvc := setup(t)
	std, err := stdSvc.Create(student.NewStudent{Name: "Rafiki", Email: "rafiki@test.cd"})
	require.NoError(t, err)
	cls := scheduleClass(t, classSvc)

	enr, err := svc.EnrollDirect(std.ID, cls.ID)
	require.NoError(t, err)
	assert.Equal(t, std.ID, enr.StudentID)
	assert.Equal(t, cls.ID, enr.ClassID)
	assert.Equal(t, enrollment.SourceDirect, enr.Source)

	// the schedule notification went out via the class service
	mailSvc.wait(t)
	assert.Zero(t, mailSvc.welcomeCount())

	got, err := svc.GetByID(enr.ID)
	require.NoError(t, err)
	assert.Equal(t, enr.ID, got.ID)

	// second direct enrollment into the same class is rejected upstream
	_, err = svc.EnrollDirect(std.ID, cls.ID)
	assert.Equal(t, liveclass.ErrAlreadyEnrolled, err)
}

func Test_Service_EnrollMarketing_newStudent(t *testing.T) {
	svc, stdSvc, classSvc, mailSvc := setup(t)
	cls := scheduleClass(t, classSvc)

	enr, err := svc.EnrollMarketing(enrollment.MarketingEnrollment{
		StudentName: "Saida",
		Email:       "saida@test.cd",
		Phone:       "9876543210",
		ClassID:     cls.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, enrollment.SourceMarketing, enr.Source)

	// account was created on the fly
	std, err := stdSvc.GetByEmail("saida@test.cd")
	require.NoError(t, err)
	assert.Equal(t, std.ID, enr.StudentID)

	// welcome email plus schedule notification, both detached
	mailSvc.wait(t)
	mailSvc.wait(t)
	assert.Equal(t, 1, mailSvc.welcomeCount())

	got, err := classSvc.GetByID(cls.ID)
	require.NoError(t, err)
	assert.Contains(t, got.EnrolledStudentIDs, std.ID)
}

func Test_Service_EnrollMarketing_existingStudent(t *testing.T) {
	svc, stdSvc, classSvc, mailSvc := setup(t)
	std, err := stdSvc.Create(student.NewStudent{Name: "Tatu", Email: "tatu@test.cd"})
	require.NoError(t, err)
	cls := scheduleClass(t, classSvc)
	_, err = classSvc.Enroll(cls.ID, std.ID)
	require.NoError(t, err)
	mailSvc.wait(t) // schedule notification from the explicit enrollment

	// an existing, already enrolled student gets no welcome email and no error
	enr, err := svc.EnrollMarketing(enrollment.MarketingEnrollment{
		StudentName: "Tatu",
		Email:       "tatu@test.cd",
		ClassID:     cls.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, std.ID, enr.StudentID)
	assert.Zero(t, mailSvc.welcomeCount())
}

func Test_Service_EnrollMarketing_noClass(t *testing.T) {
	svc, stdSvc, _, _ := setup(t)

	enr, err := svc.EnrollMarketing(enrollment.MarketingEnrollment{
		StudentName: "Upendo",
		Email:       "upendo@test.cd",
	})
	require.NoError(t, err)
	assert.Empty(t, enr.ClassID)

	_, err = stdSvc.GetByEmail("upendo@test.cd")
	assert.NoError(t, err)
}

func Test_Service_QueryAllAndDelete(t *testing.T) {
	svc, stdSvc, classSvc, _ := setup(t)
	std, err := stdSvc.Create(student.NewStudent{Name: "Zuri", Email: "zuri@test.cd"})
	require.NoError(t, err)
	cls := scheduleClass(t, classSvc)

	enr, err := svc.EnrollDirect(std.ID, cls.ID)
	require.NoError(t, err)

	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(enr.ID))
	_, err = svc.GetByID(enr.ID)
	assert.Equal(t, enrollment.ErrNotFound, err)
}
