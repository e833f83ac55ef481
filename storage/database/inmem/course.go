package inmemdb

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) query() []course.Course {
	crs := make([]course.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		crs = append(crs, *c)
	}
	return crs
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *courseRepository) GetCourseByCode(ctx context.Context, code string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, c := range repo.query() {
		if c.Code == code {
			return c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	crs := repo.query()
	if filter.IsEmpty() {
		return crs, nil
	}

	matches := make([]course.Course, 0, len(crs))
	for _, c := range crs {
		if filter.Semester != "" && c.Semester != filter.Semester {
			continue
		}
		if filter.Graded != nil && c.IsGraded() != *filter.Graded {
			continue
		}
		if filter.Search != "" && !courseMatches(c, filter.Search) {
			continue
		}
		matches = append(matches, c)
	}
	return matches, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.courses[crs.ID]
	if !ok {
		return course.Course{}, course.ErrNotFound
	}
	*orig = crs
	return crs, nil
}

func courseMatches(c course.Course, search string) bool {
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(c.Code), search) ||
		strings.Contains(strings.ToLower(c.Title), search) ||
		strings.Contains(strings.ToLower(c.Instructor), search)
}
