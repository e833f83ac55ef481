package course_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/course"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func newService(t *testing.T) *course.Service {
	t.Helper()
	db := inmemdb.Open()
	require.NoError(t, db.Seed())
	return course.NewService(inmemdb.NewCourseRepository(db))
}

func Test_Service_GetByCode(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// lookup is cleaned and case-insensitive
	crs, err := svc.GetByCode(ctx, "  csc301 ")
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", crs.Title)

	_, err = svc.GetByCode(ctx, "NOPE999")
	assert.Equal(t, course.ErrNotFound, err)
}

func Test_Service_Filter(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	t.Run("by semester", func(t *testing.T) {
		crs, err := svc.Filter(ctx, course.QueryFilter{Semester: "2023/2024 S2"})
		require.NoError(t, err)
		assert.Len(t, crs, 4)
	})

	t.Run("graded only", func(t *testing.T) {
		graded := true
		crs, err := svc.Filter(ctx, course.QueryFilter{Graded: &graded})
		require.NoError(t, err)
		assert.Len(t, crs, 8)
	})

	t.Run("ungraded only", func(t *testing.T) {
		graded := false
		crs, err := svc.Filter(ctx, course.QueryFilter{Graded: &graded})
		require.NoError(t, err)
		assert.Len(t, crs, 3)
	})

	t.Run("search matches instructor", func(t *testing.T) {
		crs, err := svc.Filter(ctx, course.QueryFilter{Search: "okafor"})
		require.NoError(t, err)
		assert.Len(t, crs, 3)
	})

	t.Run("custom ordering", func(t *testing.T) {
		crs, err := svc.Filter(ctx, course.QueryFilter{}, core.DBOrdering{Field: "credits", Ascending: false})
		require.NoError(t, err)
		require.NotEmpty(t, crs)
		assert.Equal(t, "MTH301", crs[0].Code)
	})
}

func Test_Service_Semesters(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	semesters, err := svc.Semesters(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023/2024 S1", "2023/2024 S2", "2024/2025 S1"}, semesters)

	current, err := svc.CurrentSemester(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024/2025 S1", current)
}

func Test_Service_CGPA(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cgpa, err := svc.CGPA(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.52, cgpa) // 81.0 grade points over 23 credits

	gpa, err := svc.SemesterGPA(ctx, "2023/2024 S1")
	require.NoError(t, err)
	assert.Equal(t, 3.56, gpa) // 42.7 grade points over 12 credits

	// the current semester has no grades yet
	gpa, err = svc.SemesterGPA(ctx, "2024/2025 S1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, gpa)
}
