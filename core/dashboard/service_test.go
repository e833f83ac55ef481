package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/student"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func Test_Service_Get(t *testing.T) {
	db := inmemdb.Open()
	require.NoError(t, db.Seed())

	studentSvc := student.NewService(inmemdb.NewStudentRepository(db))
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db))
	assignSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db))
	svc := dashboard.NewService(studentSvc, courseSvc, assignSvc, 7*24*time.Hour)

	dash, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Amina Yusuf", dash.Student.Name)
	assert.Equal(t, 3.52, dash.CGPA)
	assert.Equal(t, "2024/2025 S1", dash.Semester)

	require.Len(t, dash.Courses, 3)
	for _, c := range dash.Courses {
		assert.Equal(t, "2024/2025 S1", c.Semester)
	}

	require.Len(t, dash.Upcoming, 2)
	assert.Equal(t, "Lexer for a toy language", dash.Upcoming[0].Title)

	assert.Equal(t, dashboard.Counts{
		Courses:            11,
		GradedCourses:      8,
		PendingAssignments: 4,
		OverdueAssignments: 1,
	}, dash.Counts)
}
