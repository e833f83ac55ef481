package sqlxrepos

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRepository struct {
	db *sqlx.DB
}

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

// assignmentRow mirrors assignment.Assignment with a nullable submitted_at.
type assignmentRow struct {
	ID          string       `db:"id"`
	CourseCode  string       `db:"course_code"`
	Title       string       `db:"title"`
	Details     string       `db:"details"`
	DueDate     time.Time    `db:"due_date"`
	Status      string       `db:"status"`
	Score       float64      `db:"score"`
	MaxScore    float64      `db:"max_score"`
	SubmittedAt sql.NullTime `db:"submitted_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func newAssignmentRow(a assignment.Assignment) assignmentRow {
	row := assignmentRow{
		ID:         a.ID,
		CourseCode: a.CourseCode,
		Title:      a.Title,
		Details:    a.Details,
		DueDate:    a.DueDate,
		Status:     a.Status,
		Score:      a.Score,
		MaxScore:   a.MaxScore,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
	if !a.SubmittedAt.IsZero() {
		row.SubmittedAt = sql.NullTime{Time: a.SubmittedAt, Valid: true}
	}
	return row
}

func (row assignmentRow) assignment() assignment.Assignment {
	a := assignment.Assignment{
		ID:         row.ID,
		CourseCode: row.CourseCode,
		Title:      row.Title,
		Details:    row.Details,
		DueDate:    row.DueDate,
		Status:     row.Status,
		Score:      row.Score,
		MaxScore:   row.MaxScore,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.SubmittedAt.Valid {
		a.SubmittedAt = row.SubmittedAt.Time
	}
	return a
}

func assignmentsFromRows(rows []assignmentRow) []assignment.Assignment {
	asgs := make([]assignment.Assignment, 0, len(rows))
	for _, row := range rows {
		asgs = append(asgs, row.assignment())
	}
	return asgs
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO assignment (id, course_code, title, details, due_date, status, score, max_score, submitted_at, created_at, updated_at)
		VALUES (:id, :course_code, :title, :details, :due_date, :status, :score, :max_score, :submitted_at, :created_at, :updated_at)`,
		newAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM assignment ORDER BY due_date"); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return assignmentsFromRows(rows), nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id string) (assignment.Assignment, error) {
	var row assignmentRow
	err := repo.db.GetContext(ctx, &row, "SELECT * FROM assignment WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return assignment.Assignment{}, assignment.ErrNotFound
		}
		return assignment.Assignment{}, errors.Wrap(err, "getting assignment")
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) FilterAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	query := "SELECT * FROM assignment"
	var clauses []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.CourseCode != "" {
		args = append(args, filter.CourseCode)
		clauses = append(clauses, fmt.Sprintf("course_code = $%d", len(args)))
	}
	if !filter.DueFrom.IsZero() {
		args = append(args, filter.DueFrom)
		clauses = append(clauses, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if !filter.DueTo.IsZero() {
		args = append(args, filter.DueTo)
		clauses = append(clauses, fmt.Sprintf("due_date <= $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(course_code) LIKE $%d)", n, n))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY due_date"

	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "filtering assignments")
	}
	return assignmentsFromRows(rows), nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE assignment
		SET title = :title, details = :details, due_date = :due_date, status = :status,
		    score = :score, max_score = :max_score, submitted_at = :submitted_at, updated_at = :updated_at
		WHERE id = :id`, newAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}
