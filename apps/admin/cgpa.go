package main

import (
	"context"
	"fmt"

	"github.com/trezcool/darasa/core/course"
)

func (cli *commandLine) cgpa(semester string) error {
	ctx := context.Background()

	if semester != "" {
		gpa, err := cli.courseSvc.SemesterGPA(ctx, semester)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "GPA (%s): %.2f\n", semester, gpa)
		return nil
	}

	cgpa, err := cli.courseSvc.CGPA(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "CGPA: %.2f\n", cgpa)
	return nil
}

func (cli *commandLine) courses(semester string) error {
	ctx := context.Background()

	crs, err := cli.courseSvc.Filter(ctx, course.QueryFilter{Semester: semester})
	if err != nil {
		return err
	}

	for _, c := range crs {
		grade := "-"
		if c.IsGraded() {
			grade = fmt.Sprintf("%s (%.1f)", c.Grade, c.GradePoints)
		}
		fmt.Fprintf(cli.out, "%-8s %-40s %s  %.0fcr  %s\n", c.Code, c.Title, c.Semester, c.Credits, grade)
	}
	fmt.Fprintf(cli.out, "%d course(s)\n", len(crs))
	return nil
}
