package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
)

type notificationApi struct {
	classes  *liveclass.Service
	students *student.Service
	notifier *notification.Service
	push     PushConfig
}

func registerNotificationAPI(
	g *echo.Group,
	classes *liveclass.Service,
	students *student.Service,
	notifier *notification.Service,
	push PushConfig,
) {
	api := notificationApi{
		classes:  classes,
		students: students,
		notifier: notifier,
		push:     push,
	}

	ng := g.Group("/notifications")
	ng.GET("/vapid-key", api.vapidKey)
	ng.POST("/test", api.sendTest)
	ng.POST("/class/:id", api.renotifyClass)
}

// Handlers

func (api *notificationApi) vapidKey(ctx echo.Context) error {
	if api.push == nil || !api.push.Available() {
		return errPushNotConfigured
	}
	return ctx.JSON(http.StatusOK, VapidKeyResponse{PublicKey: api.push.PublicKey()})
}

// sendTest dispatches a sample schedule notification to one student on every
// channel they are eligible for, and waits for the per-channel results.
func (api *notificationApi) sendTest(ctx echo.Context) error {
	var data TestNotificationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TestNotificationRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	recipients, err := api.students.Recipients(data.StudentID)
	if err != nil {
		return errors.Wrap(err, "resolving recipient")
	}
	if len(recipients) == 0 {
		return errHttpNotFound
	}

	event := notification.ClassEvent{
		ClassID:     "test",
		Title:       "Test Notification",
		Subject:     "Test",
		ScheduledAt: time.Now(),
	}
	results, err := api.notifier.NotifyClassScheduled(ctx.Request().Context(), recipients, event)
	if err != nil {
		return errors.Wrap(err, "dispatching test notification")
	}
	return ctx.JSON(http.StatusOK, DispatchResponse{Results: results})
}

// renotifyClass re-sends the schedule notification to every enrolled student
// and reports the per-channel results, unlike the detached lifecycle dispatches.
func (api *notificationApi) renotifyClass(ctx echo.Context) error {
	results, err := api.classes.Renotify(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == liveclass.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "re-dispatching class notification")
	}
	return ctx.JSON(http.StatusOK, DispatchResponse{Results: results})
}

type (
	VapidKeyResponse struct {
		PublicKey string `json:"public_key"`
	}

	TestNotificationRequest struct {
		StudentID string `json:"student_id" validate:"required"`
	}

	DispatchResponse struct {
		Results []notification.DispatchResult `json:"results"`
	}
)

func (tr *TestNotificationRequest) Validate() error {
	tr.StudentID = core.CleanString(tr.StudentID)
	return core.Validate.Struct(tr)
}
