package assignment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound = errors.New("assignment not found")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id string) (Assignment, error)
		// FilterAssignments applies AND operation on available QueryFilter fields.
		FilterAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	asgs, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	sortByDueDate(asgs)
	return asgs, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, core.CleanString(id))
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Assignment, error) {
	filter.Search = core.CleanString(filter.Search)
	filter.Status = core.CleanString(filter.Status, true /* lower */)
	filter.CourseCode = strings.ToUpper(core.CleanString(filter.CourseCode))

	asgs, err := svc.repo.FilterAssignments(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortByDueDate(asgs)
	return asgs, nil
}

// Upcoming returns the pending assignments due within the given window,
// soonest first.
func (svc *Service) Upcoming(ctx context.Context, window time.Duration) ([]Assignment, error) {
	asgs, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	upcoming := make([]Assignment, 0, len(asgs))
	for _, a := range asgs {
		if a.IsDueWithin(now, window) {
			upcoming = append(upcoming, a)
		}
	}
	sortByDueDate(upcoming)
	return upcoming, nil
}

// Overdue returns the pending assignments whose due date has passed,
// most recently due first.
func (svc *Service) Overdue(ctx context.Context) ([]Assignment, error) {
	asgs, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, err
	}

	now := nowFunc().UTC()
	overdue := make([]Assignment, 0, len(asgs))
	for _, a := range asgs {
		if a.IsOverdue(now) {
			overdue = append(overdue, a)
		}
	}
	sort.Slice(overdue, func(i, j int) bool { return overdue[i].DueDate.After(overdue[j].DueDate) })
	return overdue, nil
}

// Publish moves a draft assignment to pending, making it visible on due-date
// surfaces and submittable.
func (svc *Service) Publish(ctx context.Context, id string) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, core.CleanString(id))
	if err != nil {
		return Assignment{}, err
	}
	if a.Status != StatusDraft {
		return Assignment{}, core.NewValidationError(
			fmt.Errorf("cannot publish a %s assignment", a.Status),
			core.FieldError{Field: "status", Error: "only draft assignments can be published"},
		)
	}

	a.Status = StatusPending
	a.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateAssignment(ctx, a)
}

// Submit marks a pending assignment as submitted. Submitting an assignment
// twice, a draft, or one already graded, is a validation error.
func (svc *Service) Submit(ctx context.Context, id string) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, core.CleanString(id))
	if err != nil {
		return Assignment{}, err
	}
	if a.Status != StatusPending {
		return Assignment{}, core.NewValidationError(
			fmt.Errorf("cannot submit a %s assignment", a.Status),
			core.FieldError{Field: "status", Error: "only pending assignments can be submitted"},
		)
	}

	now := nowFunc().UTC()
	a.Status = StatusSubmitted
	a.SubmittedAt = now
	a.UpdatedAt = now
	return svc.repo.UpdateAssignment(ctx, a)
}

// UpdateScore grades a submitted assignment.
func (svc *Service) UpdateScore(ctx context.Context, id string, score float64) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, core.CleanString(id))
	if err != nil {
		return Assignment{}, err
	}
	if a.Status != StatusSubmitted {
		return Assignment{}, core.NewValidationError(
			fmt.Errorf("cannot grade a %s assignment", a.Status),
			core.FieldError{Field: "status", Error: "only submitted assignments can be graded"},
		)
	}
	if score < 0 || score > a.MaxScore {
		return Assignment{}, core.NewValidationError(
			fmt.Errorf("score out of range"),
			core.FieldError{Field: "score", Error: fmt.Sprintf("must be between 0 and %v", a.MaxScore)},
		)
	}

	a.Status = StatusGraded
	a.Score = score
	a.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateAssignment(ctx, a)
}

func sortByDueDate(asgs []Assignment) {
	sort.SliceStable(asgs, func(i, j int) bool { return asgs[i].DueDate.Before(asgs[j].DueDate) })
}
