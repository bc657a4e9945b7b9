package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/student"
)

var (
	errAlreadyEnrolled = echo.NewHTTPError(http.StatusConflict, liveclass.ErrAlreadyEnrolled.Error())
	errClassFull       = echo.NewHTTPError(http.StatusConflict, liveclass.ErrClassFull.Error())
)

type liveClassApi struct {
	svc *liveclass.Service
}

func registerLiveClassAPI(g *echo.Group, svc *liveclass.Service) {
	api := liveClassApi{svc: svc}

	cg := g.Group("/live-classes")
	cg.POST("", api.create)
	cg.GET("", api.query)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.POST("/cancel", api.cancel)
	dg.POST("/enroll", api.enroll)
}

// Handlers

func (api *liveClassApi) create(ctx echo.Context) error {
	var data liveclass.NewLiveClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLiveClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.Schedule(data)
	if err != nil {
		return errors.Wrap(err, "scheduling live class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *liveClassApi) query(ctx echo.Context) error {
	filter := liveclass.QueryFilter{Status: liveclass.Status(ctx.QueryParam("status"))}
	classes, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying live classes")
	}
	if classes == nil {
		classes = []liveclass.LiveClass{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *liveClassApi) retrieve(ctx echo.Context) error {
	cls, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == liveclass.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting live class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *liveClassApi) update(ctx echo.Context) error {
	var data liveclass.UpdateLiveClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLiveClass")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == liveclass.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating live class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *liveClassApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting live class")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// cancel transitions the class to cancelled; enrolled students are notified
// without this request waiting on delivery.
func (api *liveClassApi) cancel(ctx echo.Context) error {
	var data CancelRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CancelRequest")
	}
	data.Reason = core.CleanString(data.Reason)

	cls, err := api.svc.Cancel(ctx.Param("id"), data.Reason)
	if err != nil {
		if errors.Cause(err) == liveclass.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "cancelling live class")
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *liveClassApi) enroll(ctx echo.Context) error {
	var data EnrollRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to EnrollRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	cls, err := api.svc.Enroll(ctx.Param("id"), data.StudentID)
	if err != nil {
		switch errors.Cause(err) {
		case liveclass.ErrNotFound, student.ErrNotFound:
			return errHttpNotFound
		case liveclass.ErrAlreadyEnrolled:
			return errAlreadyEnrolled
		case liveclass.ErrClassFull:
			return errClassFull
		case liveclass.ErrClassCancelled:
			return errClassNotSchedulable
		}
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusOK, cls)
}

type (
	CancelRequest struct {
		Reason string `json:"reason"`
	}

	EnrollRequest struct {
		StudentID string `json:"student_id" validate:"required"`
	}
)

func (er *EnrollRequest) Validate() error {
	er.StudentID = core.CleanString(er.StudentID)
	return core.Validate.Struct(er)
}
