package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/storage/database/fixture"
	"github.com/trezcool/darasa/storage/database/sqlxrepos"
)

// seed loads the mock dataset into the database. The in-memory provider
// seeds itself on startup so this only applies to a real database.
func (cli *commandLine) seed() error {
	if cli.db == nil {
		return errNoDatabase
	}

	ctx := context.Background()
	now := time.Now().UTC()

	st := fixture.Student(now)
	st.ID = uuid.New().String()
	if _, err := cli.db.NamedExecContext(ctx, `
		INSERT INTO student (id, name, reg_no, email, programme, department, level, enrolled_year, created_at, updated_at)
		VALUES (:id, :name, :reg_no, :email, :programme, :department, :level, :enrolled_year, :created_at, :updated_at)
		ON CONFLICT (reg_no) DO NOTHING`, st); err != nil {
		return errors.Wrap(err, "seeding student")
	}

	courseRepo := sqlxrepos.NewCourseRepository(cli.db)
	for _, c := range fixture.Courses(now) {
		if _, err := courseRepo.CreateCourse(ctx, c); err != nil {
			return errors.Wrapf(err, "seeding course %s", c.Code)
		}
	}

	assignRepo := sqlxrepos.NewAssignmentRepository(cli.db)
	for _, a := range fixture.Assignments(now) {
		if _, err := assignRepo.CreateAssignment(ctx, a); err != nil {
			return errors.Wrapf(err, "seeding assignment %q", a.Title)
		}
	}

	fmt.Fprintln(cli.out, "mock dataset loaded")
	return nil
}
