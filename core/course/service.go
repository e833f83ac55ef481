package course

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
)

var ErrNotFound = errors.New("course not found")

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByCode(ctx context.Context, code string) (Course, error)
		// FilterCourses applies AND operation on available QueryFilter fields.
		FilterCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByCode(ctx context.Context, code string) (Course, error) {
	return svc.repo.GetCourseByCode(ctx, strings.ToUpper(core.CleanString(code)))
}

// Filter returns the courses matching filter, sorted by the given orderings
// (falling back to code order).
func (svc *Service) Filter(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Course, error) {
	filter.Search = core.CleanString(filter.Search)
	filter.Semester = core.CleanString(filter.Semester)

	crs, err := svc.repo.FilterCourses(ctx, filter)
	if err != nil {
		return nil, err
	}
	SortCourses(crs, orderings...)
	return crs, nil
}

// Semesters returns the distinct semesters on record, oldest first.
// Semester labels sort chronologically ("2023/2024 S1" < "2023/2024 S2").
func (svc *Service) Semesters(ctx context.Context) ([]string, error) {
	crs, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(crs))
	semesters := make([]string, 0, len(crs))
	for _, c := range crs {
		if _, ok := seen[c.Semester]; !ok {
			seen[c.Semester] = struct{}{}
			semesters = append(semesters, c.Semester)
		}
	}
	sort.Strings(semesters)
	return semesters, nil
}

// CurrentSemester returns the most recent semester on record.
func (svc *Service) CurrentSemester(ctx context.Context) (string, error) {
	semesters, err := svc.Semesters(ctx)
	if err != nil {
		return "", err
	}
	if len(semesters) == 0 {
		return "", nil
	}
	return semesters[len(semesters)-1], nil
}

// CGPA computes the cumulative grade point average over all graded courses.
func (svc *Service) CGPA(ctx context.Context) (float64, error) {
	crs, err := svc.repo.QueryAllCourses(ctx)
	if err != nil {
		return 0, err
	}
	return CGPA(GradeRecords(crs)), nil
}

// SemesterGPA computes the grade point average for a single semester.
func (svc *Service) SemesterGPA(ctx context.Context, semester string) (float64, error) {
	crs, err := svc.repo.FilterCourses(ctx, QueryFilter{Semester: core.CleanString(semester)})
	if err != nil {
		return 0, err
	}
	return CGPA(GradeRecords(crs)), nil
}

// SortCourses sorts crs in place by the given orderings; unknown fields are
// ignored. Without orderings, courses sort by semester then code.
func SortCourses(crs []Course, orderings ...core.DBOrdering) {
	if len(orderings) == 0 {
		orderings = []core.DBOrdering{
			{Field: "semester", Ascending: true},
			{Field: "code", Ascending: true},
		}
	}
	sort.SliceStable(crs, func(i, j int) bool {
		for _, ord := range orderings {
			cmp := compareCourses(crs[i], crs[j], ord.Field)
			if cmp == 0 {
				continue
			}
			if ord.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
}

func compareCourses(a, b Course, field string) int {
	switch field {
	case "code":
		return strings.Compare(a.Code, b.Code)
	case "title":
		return strings.Compare(a.Title, b.Title)
	case "semester":
		return strings.Compare(a.Semester, b.Semester)
	case "instructor":
		return strings.Compare(a.Instructor, b.Instructor)
	case "credits":
		return compareFloats(a.Credits, b.Credits)
	case "grade_points":
		return compareFloats(a.GradePoints, b.GradePoints)
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
