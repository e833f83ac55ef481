package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	if crs.ID == "" {
		crs.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO course (id, code, title, credits, semester, instructor, grade, grade_points, created_at, updated_at)
		VALUES (:id, :code, :title, :credits, :semester, :instructor, :grade, :grade_points, :created_at, :updated_at)`, crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var crs []course.Course
	if err := repo.db.SelectContext(ctx, &crs, "SELECT * FROM course ORDER BY semester, code"); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return crs, nil
}

func (repo *courseRepository) GetCourseByCode(ctx context.Context, code string) (course.Course, error) {
	var crs course.Course
	err := repo.db.GetContext(ctx, &crs, "SELECT * FROM course WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return course.Course{}, course.ErrNotFound
		}
		return course.Course{}, errors.Wrap(err, "getting course")
	}
	return crs, nil
}

func (repo *courseRepository) FilterCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := "SELECT * FROM course"
	var clauses []string
	var args []interface{}

	if filter.Semester != "" {
		args = append(args, filter.Semester)
		clauses = append(clauses, fmt.Sprintf("semester = $%d", len(args)))
	}
	if filter.Graded != nil {
		if *filter.Graded {
			clauses = append(clauses, "grade <> ''")
		} else {
			clauses = append(clauses, "grade = ''")
		}
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(code) LIKE $%d OR LOWER(title) LIKE $%d OR LOWER(instructor) LIKE $%d)", n, n, n))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY semester, code"

	var crs []course.Course
	if err := repo.db.SelectContext(ctx, &crs, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering courses")
	}
	return crs, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE course
		SET title = :title, credits = :credits, semester = :semester, instructor = :instructor,
		    grade = :grade, grade_points = :grade_points, updated_at = :updated_at
		WHERE id = :id`, crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}
