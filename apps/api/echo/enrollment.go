package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core"
	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/student"
)

type enrollmentApi struct {
	svc *enrollment.Service
}

func registerEnrollmentAPI(g *echo.Group, svc *enrollment.Service) {
	api := enrollmentApi{svc: svc}

	eg := g.Group("/enrollments")
	eg.POST("", api.create)
	eg.POST("/marketing", api.createMarketing)
	eg.GET("", api.query)

	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *enrollmentApi) create(ctx echo.Context) error {
	var data DirectEnrollmentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DirectEnrollmentRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	enr, err := api.svc.EnrollDirect(data.StudentID, data.ClassID)
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
		return errors.Wrap(err, "creating enrollment")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

// createMarketing registers a marketing-funnel signup; the student account is
// created on the fly when the email is unknown.
func (api *enrollmentApi) createMarketing(ctx echo.Context) error {
	var data enrollment.MarketingEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarketingEnrollment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	enr, err := api.svc.EnrollMarketing(data)
	if err != nil {
		switch errors.Cause(err) {
		case liveclass.ErrNotFound:
			return errHttpNotFound
		case liveclass.ErrClassFull:
			return errClassFull
		case liveclass.ErrClassCancelled:
			return errClassNotSchedulable
		}
		return errors.Wrap(err, "creating marketing enrollment")
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *enrollmentApi) query(ctx echo.Context) error {
	enrollments, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	if enrollments == nil {
		enrollments = []enrollment.Enrollment{}
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	enr, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == enrollment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting enrollment")
	}
	return ctx.JSON(http.StatusOK, enr)
}

func (api *enrollmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type DirectEnrollmentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	ClassID   string `json:"class_id" validate:"required"`
}

func (dr *DirectEnrollmentRequest) Validate() error {
	dr.StudentID = core.CleanString(dr.StudentID)
	dr.ClassID = core.CleanString(dr.ClassID)
	return core.Validate.Struct(dr)
}
