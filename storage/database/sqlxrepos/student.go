// Package sqlxrepos implements the core repositories on top of PostgreSQL.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

// GetStudent returns the portal owner's profile. The student table holds a
// single row per deployment.
func (repo *studentRepository) GetStudent(ctx context.Context) (student.Student, error) {
	var st student.Student
	err := repo.db.GetContext(ctx, &st, "SELECT * FROM student LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return st, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE student
		SET name = :name, email = :email, programme = :programme, department = :department,
		    level = :level, updated_at = :updated_at
		WHERE id = :id`, st)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return st, nil
}
