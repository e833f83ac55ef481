package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/darasa/core/assignment"
)

func (cli *commandLine) remind(days int) error {
	ctx := context.Background()

	window := cli.conf.ReminderWindow
	if days > 0 {
		window = time.Duration(days) * 24 * time.Hour
	}

	st, err := cli.studentSvc.Get(ctx)
	if err != nil {
		return err
	}

	reminder := assignment.NewReminder(cli.assignSvc, cli.mailSvc)
	count, err := reminder.SendDueSoon(ctx, st, window)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Fprintln(cli.out, "nothing due, no reminder sent")
		return nil
	}
	fmt.Fprintf(cli.out, "reminder sent to %s: %d assignment(s) due within %v\n", st.Email, count, window)
	return nil
}
