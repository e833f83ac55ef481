package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
)

type courseApi struct {
	svc *course.Service
}

func registerCourseAPI(g *echo.Group, svc *course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.GET("/semesters", api.querySemesters)
	cg.GET("/cgpa", api.cgpa)
	cg.GET("/:code", api.retrieve)
}

// GPAResponse is the CGPA endpoint payload. Semester is empty for the
// cumulative average over all graded courses.
type GPAResponse struct {
	Semester string  `json:"semester,omitempty"`
	CGPA     float64 `json:"cgpa"`
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	crs, err := api.svc.Filter(ctx.Request().Context(), *filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if crs == nil {
		crs = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := api.svc.GetByCode(ctx.Request().Context(), ctx.Param("code"))
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *courseApi) querySemesters(ctx echo.Context) error {
	semesters, err := api.svc.Semesters(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying semesters")
	}
	if semesters == nil {
		semesters = []string{}
	}
	return ctx.JSON(http.StatusOK, semesters)
}

func (api *courseApi) cgpa(ctx echo.Context) error {
	semester := ctx.QueryParam("semester")
	if semester != "" {
		gpa, err := api.svc.SemesterGPA(ctx.Request().Context(), semester)
		if err != nil {
			return errors.Wrap(err, "computing semester GPA")
		}
		return ctx.JSON(http.StatusOK, GPAResponse{Semester: semester, CGPA: gpa})
	}

	cgpa, err := api.svc.CGPA(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing CGPA")
	}
	return ctx.JSON(http.StatusOK, GPAResponse{CGPA: cgpa})
}
