package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/najahtutors/backend/core/subject"
)

func newSubjectBody(t *testing.T) []byte {
	return marshallObj(t, subject.NewSubject{
		Name:      "Mathematics",
		Board:     "CBSE",
		ClassName: "Class 10",
		Price:     1500,
	})
}

func Test_subjectApi_create(t *testing.T) {
	deps := newTestServer(t)

	req, rec := newRequest(http.MethodPost, "/v1/subjects", newSubjectBody(t))
	deps.server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var sub subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.NotEmpty(t, sub.ID)
	assert.True(t, sub.IsActive)
}

func Test_subjectApi_create_invalid(t *testing.T) {
	deps := newTestServer(t)

	// unsupported board
	body := marshallObj(t, subject.NewSubject{Name: "Mathematics", Board: "STATE", ClassName: "Class 10"})
	req, rec := newRequest(http.MethodPost, "/v1/subjects", body)
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// missing class
	body = marshallObj(t, subject.NewSubject{Name: "Mathematics", Board: "CBSE"})
	req, rec = newRequest(http.MethodPost, "/v1/subjects", body)
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_subjectApi_query(t *testing.T) {
	deps := newTestServer(t)
	maths, err := deps.subjSvc.Create(subject.NewSubject{Name: "Mathematics", Board: "CBSE", ClassName: "Class 10"})
	require.NoError(t, err)
	_, err = deps.subjSvc.Create(subject.NewSubject{Name: "Physics", Board: "ICSE", ClassName: "Class 9"})
	require.NoError(t, err)
	retired, err := deps.subjSvc.Create(subject.NewSubject{Name: "Sanskrit", Board: "CBSE", ClassName: "Class 10"})
	require.NoError(t, err)
	inactive := false
	_, err = deps.subjSvc.Update(retired.ID, subject.UpdateSubject{IsActive: &inactive})
	require.NoError(t, err)

	req, rec := newRequest(http.MethodGet, "/v1/subjects")
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2) // deactivated subject hidden

	req, rec = newRequest(http.MethodGet, "/v1/subjects?board=CBSE&class_name=Class+10")
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, maths.ID, list[0].ID)
}

func Test_subjectApi_retrieve(t *testing.T) {
	deps := newTestServer(t)
	sub, err := deps.subjSvc.Create(subject.NewSubject{Name: "Chemistry", Board: "CBSE", ClassName: "Class 10"})
	require.NoError(t, err)

	req, rec := newRequest(http.MethodGet, "/v1/subjects/"+sub.ID)
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var got subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, sub.ID, got.ID)

	req, rec = newRequest(http.MethodGet, "/v1/subjects/unknown-id")
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_subjectApi_update(t *testing.T) {
	deps := newTestServer(t)
	sub, err := deps.subjSvc.Create(subject.NewSubject{Name: "Biology", Board: "ICSE", ClassName: "Class 10"})
	require.NoError(t, err)

	price := 1800.0
	body := marshallObj(t, subject.UpdateSubject{Price: &price, Duration: "3 months"})
	req, rec := newRequest(http.MethodPut, "/v1/subjects/"+sub.ID, body)
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var got subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, price, got.Price)
	assert.Equal(t, "3 months", got.Duration)
	assert.Equal(t, "Biology", got.Name)
}

func Test_subjectApi_destroy(t *testing.T) {
	deps := newTestServer(t)
	sub, err := deps.subjSvc.Create(subject.NewSubject{Name: "History", Board: "CBSE", ClassName: "Class 9"})
	require.NoError(t, err)

	req, rec := newRequest(http.MethodDelete, "/v1/subjects/"+sub.ID)
	deps.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/subjects/"+sub.ID)
	deps.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
