package assignment

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

// Reminder emails a student about assignments coming due.
type Reminder struct {
	svc     *Service
	mailSvc core.EmailService
}

func NewReminder(svc *Service, mailSvc core.EmailService) *Reminder {
	return &Reminder{svc: svc, mailSvc: mailSvc}
}

// reminderData is the email template context.
type reminderData struct {
	Student     student.Student
	Assignments []Assignment
	Window      time.Duration
}

// SendDueSoon sends st a single reminder listing the assignments due within
// window. It returns the number of assignments included; no email is sent
// when nothing is due.
func (r *Reminder) SendDueSoon(ctx context.Context, st student.Student, window time.Duration) (int, error) {
	upcoming, err := r.svc.Upcoming(ctx, window)
	if err != nil {
		return 0, errors.Wrap(err, "querying upcoming assignments")
	}
	if len(upcoming) == 0 {
		return 0, nil
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: st.Name, Address: st.Email}},
		Subject:      fmt.Sprintf("%d assignment(s) due soon", len(upcoming)),
		BodyStr:      plainReminderBody(st, upcoming),
		TemplateName: "assignment_due",
		TemplateData: reminderData{Student: st, Assignments: upcoming, Window: window},
	}
	r.mailSvc.SendMessages(msg)
	return len(upcoming), nil
}

// plainReminderBody is the text/plain fallback used when the templated
// contents are unavailable.
func plainReminderBody(st student.Student, asgs []Assignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThe following assignments are due soon:\n\n", st.Name)
	for _, a := range asgs {
		fmt.Fprintf(&b, "- [%s] %s, due %s\n", a.CourseCode, a.Title, a.DueDate.Format("Mon, 02 Jan 2006 15:04 MST"))
	}
	b.WriteString("\nGood luck!\n")
	return b.String()
}
