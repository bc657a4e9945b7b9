package student_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/storage/database/dummy"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	t.Helper()
	db := dummy.Open()
	repo := dummy.NewStudentRepository(db)
	return student.NewService(repo), repo
}

func createStudent(t *testing.T, repo student.Repository, name, email string, isActive bool) student.Student {
	t.Helper()
	now := time.Now().UTC()
	std, err := repo.CreateStudent(student.Student{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return std
}

func bPtr(b bool) *bool { return &b }

func Test_Service_Create(t *testing.T) {
	svc, _ := setup(t)

	std, err := svc.Create(student.NewStudent{Name: "Amani", Email: "amani@test.cd", Phone: "9876543210"})
	require.NoError(t, err)
	assert.NotEmpty(t, std.ID)
	assert.True(t, std.IsActive)
	assert.Nil(t, std.Preferences)

	// duplicate email is a field-level validation error
	_, err = svc.Create(student.NewStudent{Name: "Imposter", Email: "amani@test.cd"})
	require.Error(t, err)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func Test_Service_GetByEmail(t *testing.T) {
	svc, repo := setup(t)
	std := createStudent(t, repo, "Baraka", "baraka@test.cd", true)

	got, err := svc.GetByEmail("  Baraka@Test.cd ")
	require.NoError(t, err)
	assert.Equal(t, std.ID, got.ID)

	_, err = svc.GetByEmail("nobody@test.cd")
	assert.Equal(t, student.ErrNotFound, err)
}

func Test_Service_Recipients(t *testing.T) {
	svc, repo := setup(t)
	active := createStudent(t, repo, "Chui", "chui@test.cd", true)
	inactive := createStudent(t, repo, "Duma", "duma@test.cd", false)

	recipients, err := svc.Recipients(active.ID, inactive.ID, "unknown-id")
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "Chui", recipients[0].Name)
}

func Test_Service_Update(t *testing.T) {
	svc, repo := setup(t)
	std := createStudent(t, repo, "Eshe", "eshe@test.cd", true)
	other := createStudent(t, repo, "Faraja", "faraja@test.cd", true)

	got, err := svc.Update(std.ID, student.UpdateStudent{Name: "Eshe M.", IsActive: bPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Eshe M.", got.Name)
	assert.Equal(t, "eshe@test.cd", got.Email)
	assert.False(t, got.IsActive)

	// changing to a taken email is rejected
	_, err = svc.Update(std.ID, student.UpdateStudent{Email: other.Email})
	require.Error(t, err)
	_, ok := err.(*core.ValidationError)
	assert.True(t, ok)

	// keeping one's own email is fine
	_, err = svc.Update(std.ID, student.UpdateStudent{Email: "eshe@test.cd", Name: "Eshe"})
	assert.NoError(t, err)

	_, err = svc.Update("unknown-id", student.UpdateStudent{Name: "Ghost"})
	assert.Equal(t, student.ErrNotFound, err)
}

func Test_Service_SetPreferences(t *testing.T) {
	svc, repo := setup(t)
	std := createStudent(t, repo, "Gari", "gari@test.cd", true)

	got, err := svc.SetPreferences(std.ID, student.UpdatePreferences{WhatsApp: bPtr(false)})
	require.NoError(t, err)
	require.NotNil(t, got.Preferences)
	assert.Nil(t, got.Preferences.Email)
	require.NotNil(t, got.Preferences.WhatsApp)
	assert.False(t, *got.Preferences.WhatsApp)

	// a later partial update keeps earlier flags
	got, err = svc.SetPreferences(std.ID, student.UpdatePreferences{Email: bPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, got.Preferences.Email)
	assert.True(t, *got.Preferences.Email)
	require.NotNil(t, got.Preferences.WhatsApp)
	assert.False(t, *got.Preferences.WhatsApp)
}

func Test_Service_PushSubscription(t *testing.T) {
	svc, repo := setup(t)
	std := createStudent(t, repo, "Hodari", "hodari@test.cd", true)

	sub := `{"endpoint":"https://push.test/h"}`
	got, err := svc.SetPushSubscription(std.ID, sub)
	require.NoError(t, err)
	assert.Equal(t, sub, got.PushSubscription)

	rec := got.Recipient()
	assert.Equal(t, sub, rec.PushSubscription)

	got, err = svc.ClearPushSubscription(std.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PushSubscription)
}

func Test_Student_Recipient(t *testing.T) {
	std := student.Student{
		Name:             "Imara",
		Email:            "imara@test.cd",
		Phone:            "9876543210",
		PushSubscription: `{"endpoint":"i"}`,
		Preferences:      &notification.Preferences{Push: bPtr(false)},
	}
	rec := std.Recipient()
	assert.Equal(t, std.Name, rec.Name)
	assert.Equal(t, std.Email, rec.Email)
	assert.Equal(t, std.Phone, rec.Phone)
	assert.Equal(t, std.PushSubscription, rec.PushSubscription)
	assert.Equal(t, std.Preferences, rec.Preferences)
}
