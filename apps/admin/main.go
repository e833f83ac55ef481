package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage/database"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
	"github.com/trezcool/darasa/storage/database/sqlxrepos"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up repositories
	var (
		db          *sqlx.DB
		studentRepo student.Repository
		courseRepo  course.Repository
		assignRepo  assignment.Repository
	)
	if conf.Database.Enabled {
		if err := database.CreateIfNotExist(conf); err != nil {
			logger.Fatal(fmt.Sprintf("creating database: %v", err), err)
		}
		var err error
		if db, err = database.OpenX(conf); err != nil {
			logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
		}
		defer func() { _ = db.Close() }()

		studentRepo = sqlxrepos.NewStudentRepository(db)
		courseRepo = sqlxrepos.NewCourseRepository(db)
		assignRepo = sqlxrepos.NewAssignmentRepository(db)
	} else {
		memDB := inmemdb.Open()
		if err := memDB.Seed(); err != nil {
			logger.Fatal(fmt.Sprintf("seeding in-memory provider: %v", err), err)
		}
		studentRepo = inmemdb.NewStudentRepository(memDB)
		courseRepo = inmemdb.NewCourseRepository(memDB)
		assignRepo = inmemdb.NewAssignmentRepository(memDB)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	core.ParseEmailTemplates(conf, logger)

	// start CLI
	cli := commandLine{
		conf:       conf,
		db:         db,
		studentSvc: student.NewService(studentRepo),
		courseSvc:  course.NewService(courseRepo),
		assignSvc:  assignment.NewService(assignRepo),
		mailSvc:    mailSvc,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %v", err), err)
		}
		os.Exit(1)
	}
}
