package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func newService(t *testing.T) *assignment.Service {
	t.Helper()
	db := inmemdb.Open()
	require.NoError(t, db.Seed())
	return assignment.NewService(inmemdb.NewAssignmentRepository(db))
}

func findByTitle(t *testing.T, svc *assignment.Service, title string) assignment.Assignment {
	t.Helper()
	asgs, err := svc.Filter(context.Background(), assignment.QueryFilter{Search: title})
	require.NoError(t, err)
	require.Len(t, asgs, 1)
	return asgs[0]
}

func Test_Service_QueryAll_sortsByDueDate(t *testing.T) {
	svc := newService(t)

	asgs, err := svc.QueryAll(context.Background())
	require.NoError(t, err)
	require.Len(t, asgs, 7)
	for i := 1; i < len(asgs); i++ {
		assert.False(t, asgs[i].DueDate.Before(asgs[i-1].DueDate))
	}
}

func Test_Service_Filter_cleansInput(t *testing.T) {
	svc := newService(t)

	asgs, err := svc.Filter(context.Background(), assignment.QueryFilter{
		Status:     "  PENDING ",
		CourseCode: " csc401 ",
	})
	require.NoError(t, err)
	assert.Len(t, asgs, 2)
}

func Test_Service_Upcoming(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	asgs, err := svc.Upcoming(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	require.Len(t, asgs, 2) // due in 2 and 5 days
	assert.Equal(t, "Lexer for a toy language", asgs[0].Title)

	// wider window picks up the 9-day one as well
	asgs, err = svc.Upcoming(ctx, 14*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, asgs, 3)

	// drafts are never upcoming, even when their due date is in the window
	asgs, err = svc.Upcoming(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Len(t, asgs, 3)

	// overdue assignments never count as upcoming
	asgs, err = svc.Upcoming(ctx, time.Hour)
	require.NoError(t, err)
	assert.Empty(t, asgs)
}

func Test_Service_Overdue(t *testing.T) {
	svc := newService(t)

	asgs, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, asgs, 1)
	assert.Equal(t, "Grammar warm-up quiz", asgs[0].Title)
}

func Test_Service_Publish(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	draft := findByTitle(t, svc, "proposal")
	require.Equal(t, assignment.StatusDraft, draft.Status)

	// a draft cannot be submitted before it is published
	_, err := svc.Submit(ctx, draft.ID)
	require.Error(t, err)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)

	published, err := svc.Publish(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusPending, published.Status)

	// publishing twice is a validation error
	_, err = svc.Publish(ctx, draft.ID)
	require.Error(t, err)
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Publish(ctx, "does-not-exist")
	assert.Equal(t, assignment.ErrNotFound, err)

	// once published it behaves like any pending assignment
	_, err = svc.Submit(ctx, draft.ID)
	require.NoError(t, err)
}

func Test_Service_Submit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	pending := findByTitle(t, svc, "lexer")

	submitted, err := svc.Submit(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusSubmitted, submitted.Status)
	assert.False(t, submitted.SubmittedAt.IsZero())

	// submitting twice is a validation error
	_, err = svc.Submit(ctx, pending.ID)
	require.Error(t, err)
	var vErr *core.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Submit(ctx, "does-not-exist")
	assert.Equal(t, assignment.ErrNotFound, err)
}

func Test_Service_UpdateScore(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	submitted := findByTitle(t, svc, "essay")
	require.Equal(t, assignment.StatusSubmitted, submitted.Status)

	t.Run("score out of range", func(t *testing.T) {
		_, err := svc.UpdateScore(ctx, submitted.ID, submitted.MaxScore+1)
		require.Error(t, err)
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("grades a submitted assignment", func(t *testing.T) {
		graded, err := svc.UpdateScore(ctx, submitted.ID, 8)
		require.NoError(t, err)
		assert.Equal(t, assignment.StatusGraded, graded.Status)
		assert.Equal(t, 8.0, graded.Score)
	})

	t.Run("cannot grade a pending assignment", func(t *testing.T) {
		pending := findByTitle(t, svc, "lexer")
		_, err := svc.UpdateScore(ctx, pending.ID, 5)
		require.Error(t, err)
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})
}
