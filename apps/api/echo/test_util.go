package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"testing"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/core/subject"
	emailsvc "github.com/najahtutors/backend/services/email"
	"github.com/najahtutors/backend/storage/database/dummy"
)

type testDeps struct {
	server   *Server
	stdSvc   *student.Service
	classSvc *liveclass.Service
	subjSvc  *subject.Service
	push     *fakePushConfig
}

type fakePushConfig struct {
	available bool
	publicKey string
}

func (f *fakePushConfig) Available() bool   { return f.available }
func (f *fakePushConfig) PublicKey() string { return f.publicKey }

func newTestConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		AppName:          "Najah Tutors",
		TestMode:         true,
		DefaultFromEmail: mail.Address{Name: "Najah Tutors", Address: "noreply@test.cd"},
	}
}

func newTestServer(t *testing.T) *testDeps {
	t.Helper()
	conf := newTestConfig()
	db := dummy.Open()

	mailSvc := emailsvc.NewConsoleSenderMock(conf)
	notifSvc := notification.NewService(mailSvc, nil, nil, nil)
	stdSvc := student.NewService(dummy.NewStudentRepository(db))
	classSvc := liveclass.NewService(dummy.NewLiveClassRepository(db), stdSvc, notifSvc, nil)
	enrSvc := enrollment.NewService(dummy.NewEnrollmentRepository(db), stdSvc, classSvc, mailSvc, nil)
	subjSvc := subject.NewService(dummy.NewSubjectRepository(db))

	push := &fakePushConfig{}
	server := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          nil,
		StudentSvc:      stdSvc,
		ClassSvc:        classSvc,
		EnrollSvc:       enrSvc,
		SubjectSvc:      subjSvc,
		NotificationSvc: notifSvc,
		Push:            push,
		DisableReqLogs:  true,
	})
	return &testDeps{server: server, stdSvc: stdSvc, classSvc: classSvc, subjSvc: subjSvc, push: push}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}
