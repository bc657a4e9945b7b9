package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/core/subject"
)

type (
	// PushConfig exposes the push-channel configuration browsers need to subscribe.
	PushConfig interface {
		Available() bool
		PublicKey() string
	}

	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		StudentSvc      *student.Service
		ClassSvc        *liveclass.Service
		EnrollSvc       *enrollment.Service
		SubjectSvc      *subject.Service
		NotificationSvc *notification.Service
		Push            PushConfig
		DisableReqLogs  bool
	}

	Server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.deps.Conf.Debug || s.deps.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)
	s.app.Debug = s.deps.Conf.Debug

	s.app.GET("/", home(s.deps.Conf))

	v1 := s.app.Group("/v1")

	registerStudentAPI(v1, s.deps.StudentSvc)
	registerLiveClassAPI(v1, s.deps.ClassSvc)
	registerEnrollmentAPI(v1, s.deps.EnrollSvc)
	registerSubjectAPI(v1, s.deps.SubjectSvc)
	registerNotificationAPI(v1, s.deps.ClassSvc, s.deps.StudentSvc, s.deps.NotificationSvc, s.deps.Push)
}

func (s *Server) Start() {
	s.errCh <- s.app.Start(s.deps.Conf.Server.Host)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errCh
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

// signalShutdown requests a graceful stop when an unrecoverable error is caught.
func (s *Server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+conf.AppName+" API!")
	}
}
