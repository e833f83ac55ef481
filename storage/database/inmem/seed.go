package inmemdb

import (
	"context"
	"time"

	"github.com/trezcool/darasa/storage/database/fixture"
)

// Seed loads the mock portal dataset.
func (db *DB) Seed() error {
	ctx := context.Background()
	now := time.Now().UTC()

	db.SetStudent(fixture.Student(now))

	courseRepo := NewCourseRepository(db)
	for _, c := range fixture.Courses(now) {
		if _, err := courseRepo.CreateCourse(ctx, c); err != nil {
			return err
		}
	}

	assignRepo := NewAssignmentRepository(db)
	for _, a := range fixture.Assignments(now) {
		if _, err := assignRepo.CreateAssignment(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
