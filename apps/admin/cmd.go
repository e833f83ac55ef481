package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

var (
	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("database is not enabled")
)

type commandLine struct {
	conf *core.Config
	db   *sqlx.DB // nil when the in-memory provider is active

	studentSvc *student.Service
	courseSvc  *course.Service
	assignSvc  *assignment.Service
	mailSvc    core.EmailService

	out io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  cgpa [-semester SEMESTER]    - print the CGPA, or a single semester's GPA")
	fmt.Fprintln(cli.out, "  courses [-semester SEMESTER] - list courses on record")
	fmt.Fprintln(cli.out, "  remind [-days N]             - email the student about assignments due within N days")
	fmt.Fprintln(cli.out, "  seed                         - load the mock dataset into the database")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]       - run a goose migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cgpaCmd := flag.NewFlagSet("cgpa", flag.ExitOnError)
	cgpaSemester := cgpaCmd.String("semester", "", "Limit the average to one semester.")

	coursesCmd := flag.NewFlagSet("courses", flag.ExitOnError)
	coursesSemester := coursesCmd.String("semester", "", "Limit the listing to one semester.")

	remindCmd := flag.NewFlagSet("remind", flag.ExitOnError)
	remindDays := remindCmd.Int("days", 0, "How many days ahead to look; defaults to the configured reminder window.")

	switch args[1] {
	case "cgpa":
		if err := cgpaCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.cgpa(*cgpaSemester)
	case "courses":
		if err := coursesCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.courses(*coursesSemester)
	case "remind":
		if err := remindCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.remind(*remindDays)
	case "seed":
		return cli.seed()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
