package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/student"
	dummymail "github.com/trezcool/darasa/services/email/dummy"
)

func Test_Reminder_SendDueSoon(t *testing.T) {
	svc := newService(t)
	st := student.Student{Name: "Amina Yusuf", Email: "amina@darasa.io"}

	t.Run("sends one email listing everything due", func(t *testing.T) {
		mailSvc := dummymail.NewService()
		reminder := assignment.NewReminder(svc, mailSvc)

		count, err := reminder.SendDueSoon(context.Background(), st, 7*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		sent := mailSvc.SentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, "2 assignment(s) due soon", sent[0].Subject)
		assert.Equal(t, "amina@darasa.io", sent[0].To[0].Address)
		assert.Contains(t, sent[0].TextContent, "Lexer for a toy language")
		assert.Contains(t, sent[0].TextContent, "Vector clocks exercise")
	})

	t.Run("no email when nothing is due", func(t *testing.T) {
		mailSvc := dummymail.NewService()
		reminder := assignment.NewReminder(svc, mailSvc)

		count, err := reminder.SendDueSoon(context.Background(), st, time.Hour)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, mailSvc.SentMessages())
	})
}
