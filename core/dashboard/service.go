// Package dashboard composes the read-side summary shown on the portal
// landing page. It has no storage of its own: it fans out to the student,
// course and assignment services and assembles their answers.
package dashboard

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

type (
	Counts struct {
		Courses            int `json:"courses"`
		GradedCourses      int `json:"graded_courses"`
		PendingAssignments int `json:"pending_assignments"`
		OverdueAssignments int `json:"overdue_assignments"`
	}

	Dashboard struct {
		Student  student.Student         `json:"student"`
		CGPA     float64                 `json:"cgpa"`
		Semester string                  `json:"semester"` // current semester
		Courses  []course.Course         `json:"courses"`  // current semester's courses
		Upcoming []assignment.Assignment `json:"upcoming_assignments"`
		Counts   Counts                  `json:"counts"`
	}

	Service struct {
		studentSvc *student.Service
		courseSvc  *course.Service
		assignSvc  *assignment.Service

		// upcomingWindow is how far ahead the dashboard looks for due dates.
		upcomingWindow time.Duration
	}
)

func NewService(
	studentSvc *student.Service,
	courseSvc *course.Service,
	assignSvc *assignment.Service,
	upcomingWindow time.Duration,
) *Service {
	return &Service{
		studentSvc:     studentSvc,
		courseSvc:      courseSvc,
		assignSvc:      assignSvc,
		upcomingWindow: upcomingWindow,
	}
}

func (svc *Service) Get(ctx context.Context) (Dashboard, error) {
	st, err := svc.studentSvc.Get(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "getting student profile")
	}

	allCourses, err := svc.courseSvc.QueryAll(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying courses")
	}

	semester, err := svc.courseSvc.CurrentSemester(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "resolving current semester")
	}
	current, err := svc.courseSvc.Filter(ctx, course.QueryFilter{Semester: semester})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying current courses")
	}

	upcoming, err := svc.assignSvc.Upcoming(ctx, svc.upcomingWindow)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying upcoming assignments")
	}
	overdue, err := svc.assignSvc.Overdue(ctx)
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying overdue assignments")
	}
	pending, err := svc.assignSvc.Filter(ctx, assignment.QueryFilter{Status: assignment.StatusPending})
	if err != nil {
		return Dashboard{}, errors.Wrap(err, "querying pending assignments")
	}

	var graded int
	for _, c := range allCourses {
		if c.IsGraded() {
			graded++
		}
	}

	return Dashboard{
		Student:  st,
		CGPA:     course.CGPA(course.GradeRecords(allCourses)),
		Semester: semester,
		Courses:  current,
		Upcoming: upcoming,
		Counts: Counts{
			Courses:            len(allCourses),
			GradedCourses:      graded,
			PendingAssignments: len(pending),
			OverdueAssignments: len(overdue),
		},
	}, nil
}
