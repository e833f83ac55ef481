package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

// defaultUpcomingWindow is used when the query does not say how far ahead to look.
const defaultUpcomingWindow = 7 * 24 * time.Hour

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	ag := g.Group("/assignments")
	ag.GET("", api.query)
	ag.GET("/upcoming", api.queryUpcoming)
	ag.GET("/overdue", api.queryOverdue)
	ag.GET("/:id", api.retrieve)
	ag.POST("/:id/publish", api.publish)
	ag.POST("/:id/submit", api.submit)
	ag.PUT("/:id/score", api.updateScore)
}

type UpdateScoreRequest struct {
	Score float64 `json:"score" validate:"gte=0"`
}

func (usr *UpdateScoreRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(usr)
}

// Handlers

func (api *assignmentApi) query(ctx echo.Context) error {
	filter := new(assignment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []assignment.Assignment{})
	}

	asgs, err := api.svc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) queryUpcoming(ctx echo.Context) error {
	window := time.Duration(0)
	if d := ctx.QueryParam("window"); d != "" {
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid window duration")
		}
		window = parsed
	}
	if window <= 0 {
		window = defaultUpcomingWindow
	}

	asgs, err := api.svc.Upcoming(ctx.Request().Context(), window)
	if err != nil {
		return errors.Wrap(err, "querying upcoming assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) queryOverdue(ctx echo.Context) error {
	asgs, err := api.svc.Overdue(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying overdue assignments")
	}
	if asgs == nil {
		asgs = []assignment.Assignment{}
	}
	return ctx.JSON(http.StatusOK, asgs)
}

func (api *assignmentApi) retrieve(ctx echo.Context) error {
	a, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) publish(ctx echo.Context) error {
	a, err := api.svc.Publish(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	a, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) updateScore(ctx echo.Context) error {
	var data UpdateScoreRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateScoreRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.UpdateScore(ctx.Request().Context(), ctx.Param("id"), data.Score)
	if err != nil {
		if errors.Cause(err) == assignment.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}
