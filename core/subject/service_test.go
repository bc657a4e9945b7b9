package subject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najahtutors/backend/core/subject"
	"github.com/najahtutors/backend/storage/database/dummy"
)

func setup(t *testing.T) *subject.Service {
	t.Helper()
	return subject.NewService(dummy.NewSubjectRepository(dummy.Open()))
}

func newSubject(name, board, className string) subject.NewSubject {
	return subject.NewSubject{Name: name, Board: board, ClassName: className, Price: 1200}
}

func bPtr(b bool) *bool       { return &b }
func fPtr(f float64) *float64 { return &f }

func Test_Service_Create(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Create(newSubject("Mathematics", "CBSE", "Class 10"))
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Mathematics", sub.Name)
	assert.Equal(t, float64(1200), sub.Price)
	// new subjects list in the catalog right away
	assert.True(t, sub.IsActive)
}

func Test_Service_Filter(t *testing.T) {
	svc := setup(t)

	maths, err := svc.Create(newSubject("Mathematics", "CBSE", "Class 10"))
	require.NoError(t, err)
	physics, err := svc.Create(newSubject("Physics", "ICSE", "Class 9"))
	require.NoError(t, err)
	retired, err := svc.Create(newSubject("Sanskrit", "CBSE", "Class 10"))
	require.NoError(t, err)
	_, err = svc.Update(retired.ID, subject.UpdateSubject{IsActive: bPtr(false)})
	require.NoError(t, err)

	// deactivated subjects drop out of the catalog
	catalog, err := svc.Filter(subject.QueryFilter{})
	require.NoError(t, err)
	require.Len(t, catalog, 2)

	cbse, err := svc.Filter(subject.QueryFilter{Board: "CBSE"})
	require.NoError(t, err)
	require.Len(t, cbse, 1)
	assert.Equal(t, maths.ID, cbse[0].ID)

	class9, err := svc.Filter(subject.QueryFilter{ClassName: "Class 9"})
	require.NoError(t, err)
	require.Len(t, class9, 1)
	assert.Equal(t, physics.ID, class9[0].ID)

	// QueryAll still returns everything
	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func Test_Service_Update(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Create(newSubject("Chemistry", "CBSE", "Class 10"))
	require.NoError(t, err)

	got, err := svc.Update(sub.ID, subject.UpdateSubject{Price: fPtr(0), Description: "Organic and inorganic"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), got.Price)
	assert.Equal(t, "Organic and inorganic", got.Description)
	assert.Equal(t, "Chemistry", got.Name)

	_, err = svc.Update("unknown-id", subject.UpdateSubject{Name: "Ghost"})
	assert.Equal(t, subject.ErrNotFound, err)
}

func Test_Service_Delete(t *testing.T) {
	svc := setup(t)

	sub, err := svc.Create(newSubject("Biology", "ICSE", "Class 10"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(sub.ID))
	_, err = svc.GetByID(sub.ID)
	assert.Equal(t, subject.ErrNotFound, err)
}
