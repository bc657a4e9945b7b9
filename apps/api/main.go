package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/najahtutors/backend/apps/api/echo"
	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/core/subject"
	emailsvc "github.com/najahtutors/backend/services/email"
	logsvc "github.com/najahtutors/backend/services/logger"
	pushsvc "github.com/najahtutors/backend/services/push"
	whatsappsvc "github.com/najahtutors/backend/services/whatsapp"
	"github.com/najahtutors/backend/storage/database"
	sqlxrepos "github.com/najahtutors/backend/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up channel senders
	var mailSvc notification.EmailSender
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleSender(conf)
	} else {
		mailSvc = emailsvc.NewSendgridSender(conf)
	}
	waSvc := whatsappsvc.NewTwilioSender(conf)
	pushSvc := pushsvc.NewWebpushSender(conf)

	// set up services
	notifSvc := notification.NewService(mailSvc, waSvc, pushSvc, logger)
	stdSvc := student.NewService(sqlxrepos.NewStudentRepository(db))
	classSvc := liveclass.NewService(sqlxrepos.NewLiveClassRepository(db), stdSvc, notifSvc, logger)
	enrSvc := enrollment.NewService(sqlxrepos.NewEnrollmentRepository(db), stdSvc, classSvc, mailSvc, logger)
	subjSvc := subject.NewService(sqlxrepos.NewSubjectRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			StudentSvc:      stdSvc,
			ClassSvc:        classSvc,
			EnrollSvc:       enrSvc,
			SubjectSvc:      subjSvc,
			NotificationSvc: notifSvc,
			Push:            pushSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
