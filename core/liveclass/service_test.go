package liveclass_test

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/storage/database/dummy"
)

// chanEmailSender signals every delivery so tests can wait on detached dispatches.
type chanEmailSender struct {
	ch chan string // recipient addresses
}

func newChanEmailSender() *chanEmailSender {
	return &chanEmailSender{ch: make(chan string, 16)}
}

func (s *chanEmailSender) SendEmail(_ context.Context, to mail.Address, _, _, _ string) (string, error) {
	s.ch <- to.Address
	return "email-1", nil
}

func (s *chanEmailSender) wait(t *testing.T) string {
	t.Helper()
	select {
	case addr := <-s.ch:
		return addr
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification delivery")
		return ""
	}
}

func (s *chanEmailSender) assertNoDelivery(t *testing.T) {
	t.Helper()
	select {
	case addr := <-s.ch:
		t.Fatalf("unexpected delivery to %s", addr)
	case <-time.After(100 * time.Millisecond):
	}
}

func setup(t *testing.T) (*liveclass.Service, student.Repository, *chanEmailSender) {
	t.Helper()
	db := dummy.Open()
	stdRepo := dummy.NewStudentRepository(db)
	stdSvc := student.NewService(stdRepo)

	mailSvc := newChanEmailSender()
	notifier := notification.NewService(mailSvc, nil, nil, nil)

	svc := liveclass.NewService(dummy.NewLiveClassRepository(db), stdSvc, notifier, nil)
	return svc, stdRepo, mailSvc
}

func createStudent(t *testing.T, repo student.Repository, name, email string) student.Student {
	t.Helper()
	now := time.Now().UTC()
	std, err := repo.CreateStudent(student.Student{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return std
}

func newClass(scheduledAt time.Time) liveclass.NewLiveClass {
	return liveclass.NewLiveClass{
		Title:       "Algebra Basics",
		Subject:     "Mathematics",
		ScheduledAt: scheduledAt,
	}
}

func Test_Service_Schedule(t *testing.T) {
	svc, stdRepo, mailSvc := setup(t)
	std := createStudent(t, stdRepo, "Jabari", "jabari@test.cd")

	nc := newClass(time.Now().Add(24 * time.Hour))
	nc.EnrolledStudentIDs = []string{std.ID}
	cls, err := svc.Schedule(nc)
	require.NoError(t, err)

	assert.NotEmpty(t, cls.ID)
	assert.Equal(t, liveclass.StatusScheduled, cls.Status)
	// unset capacity and duration take defaults
	assert.Equal(t, 60, cls.DurationMins)
	assert.Equal(t, 50, cls.MaxStudents)

	// pre-enrolled students are notified without the call waiting
	assert.Equal(t, "jabari@test.cd", mailSvc.wait(t))
}

// failingStudentRepo errors on recipient lookups.
type failingStudentRepo struct {
	student.Repository
}

func (failingStudentRepo) GetStudentsByID(ids ...string) ([]student.Student, error) {
	return nil, assert.AnError
}

func Test_Service_Schedule_recipientsError(t *testing.T) {
	db := dummy.Open()
	mailSvc := newChanEmailSender()
	notifier := notification.NewService(mailSvc, nil, nil, nil)
	stdSvc := student.NewService(failingStudentRepo{})
	svc := liveclass.NewService(dummy.NewLiveClassRepository(db), stdSvc, notifier, nil)

	nc := newClass(time.Now().Add(24 * time.Hour))
	nc.EnrolledStudentIDs = []string{"some-id"}
	cls, err := svc.Schedule(nc)
	require.NoError(t, err)
	assert.NotEmpty(t, cls.ID)

	// the detached goroutine drops the dispatch without delivery, even unlogged
	mailSvc.assertNoDelivery(t)
}

func Test_Service_Schedule_noEnrollees(t *testing.T) {
	svc, _, mailSvc := setup(t)

	_, err := svc.Schedule(newClass(time.Now().Add(24 * time.Hour)))
	require.NoError(t, err)
	mailSvc.assertNoDelivery(t)
}

func Test_Service_Enroll(t *testing.T) {
	svc, stdRepo, mailSvc := setup(t)
	std := createStudent(t, stdRepo, "Kesi", "kesi@test.cd")

	cls, err := svc.Schedule(newClass(time.Now().Add(24 * time.Hour)))
	require.NoError(t, err)

	cls, err = svc.Enroll(cls.ID, std.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{std.ID}, cls.EnrolledStudentIDs)
	assert.Equal(t, "kesi@test.cd", mailSvc.wait(t))

	// enrolling twice is rejected
	_, err = svc.Enroll(cls.ID, std.ID)
	assert.Equal(t, liveclass.ErrAlreadyEnrolled, err)

	// unknown student
	_, err = svc.Enroll(cls.ID, "unknown-id")
	assert.Equal(t, student.ErrNotFound, err)

	// unknown class
	_, err = svc.Enroll("unknown-id", std.ID)
	assert.Equal(t, liveclass.ErrNotFound, err)
}

func Test_Service_Enroll_classFull(t *testing.T) {
	svc, stdRepo, mailSvc := setup(t)
	std1 := createStudent(t, stdRepo, "Lila", "lila@test.cd")
	std2 := createStudent(t, stdRepo, "Mosi", "mosi@test.cd")

	nc := newClass(time.Now().Add(24 * time.Hour))
	nc.MaxStudents = 1
	cls, err := svc.Schedule(nc)
	require.NoError(t, err)

	_, err = svc.Enroll(cls.ID, std1.ID)
	require.NoError(t, err)
	mailSvc.wait(t)

	_, err = svc.Enroll(cls.ID, std2.ID)
	assert.Equal(t, liveclass.ErrClassFull, err)
}

func Test_Service_Cancel(t *testing.T) {
	svc, stdRepo, mailSvc := setup(t)
	std := createStudent(t, stdRepo, "Neema", "neema@test.cd")

	nc := newClass(time.Now().Add(24 * time.Hour))
	nc.EnrolledStudentIDs = []string{std.ID}
	cls, err := svc.Schedule(nc)
	require.NoError(t, err)
	mailSvc.wait(t) // schedule notification

	cls, err = svc.Cancel(cls.ID, "teacher unavailable")
	require.NoError(t, err)
	assert.Equal(t, liveclass.StatusCancelled, cls.Status)
	assert.Equal(t, "teacher unavailable", cls.CancellationReason)
	assert.Equal(t, "neema@test.cd", mailSvc.wait(t)) // cancellation notification

	// cancelling again is a no-op
	cls, err = svc.Cancel(cls.ID, "other reason")
	require.NoError(t, err)
	assert.Equal(t, "teacher unavailable", cls.CancellationReason)
	mailSvc.assertNoDelivery(t)

	// no enrolling into a cancelled class
	_, err = svc.Enroll(cls.ID, std.ID)
	assert.Equal(t, liveclass.ErrClassCancelled, err)
}

func Test_Service_Update(t *testing.T) {
	svc, _, _ := setup(t)

	cls, err := svc.Schedule(newClass(time.Now().Add(24 * time.Hour)))
	require.NoError(t, err)

	got, err := svc.Update(cls.ID, liveclass.UpdateLiveClass{Title: "Algebra II", MaxStudents: 10})
	require.NoError(t, err)
	assert.Equal(t, "Algebra II", got.Title)
	assert.Equal(t, "Mathematics", got.Subject)
	assert.Equal(t, 10, got.MaxStudents)

	_, err = svc.Update("unknown-id", liveclass.UpdateLiveClass{Title: "Ghost"})
	assert.Equal(t, liveclass.ErrNotFound, err)
}

func Test_Service_Filter(t *testing.T) {
	svc, _, _ := setup(t)

	cls1, err := svc.Schedule(newClass(time.Now().Add(24 * time.Hour)))
	require.NoError(t, err)
	cls2, err := svc.Schedule(newClass(time.Now().Add(48 * time.Hour)))
	require.NoError(t, err)
	_, err = svc.Cancel(cls2.ID, "")
	require.NoError(t, err)

	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scheduled, err := svc.Filter(liveclass.QueryFilter{Status: liveclass.StatusScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, cls1.ID, scheduled[0].ID)
}

func Test_Service_Renotify(t *testing.T) {
	svc, stdRepo, mailSvc := setup(t)
	std := createStudent(t, stdRepo, "Pili", "pili@test.cd")

	nc := newClass(time.Now().Add(24 * time.Hour))
	nc.EnrolledStudentIDs = []string{std.ID}
	cls, err := svc.Schedule(nc)
	require.NoError(t, err)
	mailSvc.wait(t)

	// synchronous: results come back to the caller
	results, err := svc.Renotify(context.Background(), cls.ID)
	require.NoError(t, err)
	require.Len(t, results, len(notification.AllChannels))
	res := results[0]
	for _, r := range results {
		if r.Channel == notification.ChannelEmail {
			res = r
		}
	}
	assert.Equal(t, notification.OutcomeSent, res.Outcome)

	_, err = svc.Renotify(context.Background(), "unknown-id")
	assert.Equal(t, liveclass.ErrNotFound, err)
}
