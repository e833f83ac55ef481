// Package fixture holds the mock portal dataset: one student, three
// semesters of courses (the current one ungraded) and a handful of
// assignments around a reference date. It backs the in-memory provider's
// Seed and the admin CLI's seed command.
package fixture

import (
	"time"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

func Student(now time.Time) student.Student {
	return student.Student{
		Name:         "Amina Yusuf",
		RegNo:        "DRS/2022/0147",
		Email:        "amina.yusuf@student.darasa.io",
		Programme:    "BSc Computer Science",
		Department:   "Computer Science",
		Level:        300,
		EnrolledYear: 2022,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func Courses(now time.Time) []course.Course {
	courses := []course.Course{
		// 2023/2024 S1
		{Code: "CSC301", Title: "Data Structures", Credits: 3, Semester: "2023/2024 S1", Instructor: "Dr. N. Okafor", Grade: "A"},
		{Code: "CSC303", Title: "Operating Systems", Credits: 3, Semester: "2023/2024 S1", Instructor: "Prof. T. Mwangi", Grade: "B+"},
		{Code: "MTH301", Title: "Linear Algebra", Credits: 4, Semester: "2023/2024 S1", Instructor: "Dr. L. Abebe", Grade: "A-"},
		{Code: "GST301", Title: "Entrepreneurship Studies", Credits: 2, Semester: "2023/2024 S1", Instructor: "Mrs. P. Banda", Grade: "B"},

		// 2023/2024 S2
		{Code: "CSC302", Title: "Design and Analysis of Algorithms", Credits: 3, Semester: "2023/2024 S2", Instructor: "Dr. N. Okafor", Grade: "A"},
		{Code: "CSC304", Title: "Database Systems", Credits: 3, Semester: "2023/2024 S2", Instructor: "Dr. S. Kone", Grade: "B+"},
		{Code: "CSC306", Title: "Software Engineering", Credits: 2, Semester: "2023/2024 S2", Instructor: "Prof. T. Mwangi", Grade: "A-"},
		{Code: "STA302", Title: "Probability and Statistics", Credits: 3, Semester: "2023/2024 S2", Instructor: "Dr. L. Abebe", Grade: "B"},

		// 2024/2025 S1 (current, not graded yet)
		{Code: "CSC401", Title: "Compiler Construction", Credits: 3, Semester: "2024/2025 S1", Instructor: "Dr. S. Kone"},
		{Code: "CSC403", Title: "Distributed Systems", Credits: 3, Semester: "2024/2025 S1", Instructor: "Prof. T. Mwangi"},
		{Code: "CSC405", Title: "Machine Learning", Credits: 3, Semester: "2024/2025 S1", Instructor: "Dr. N. Okafor"},
	}

	for i, c := range courses {
		if pts, ok := course.PointsForGrade(c.Grade); ok {
			courses[i].GradePoints = pts
		}
		courses[i].CreatedAt, courses[i].UpdatedAt = now, now
	}
	return courses
}

func Assignments(now time.Time) []assignment.Assignment {
	day := 24 * time.Hour
	assignments := []assignment.Assignment{
		{CourseCode: "CSC401", Title: "Lexer for a toy language", DueDate: now.Add(2 * day), Status: assignment.StatusPending, MaxScore: 20},
		{CourseCode: "CSC403", Title: "Vector clocks exercise", DueDate: now.Add(5 * day), Status: assignment.StatusPending, MaxScore: 15},
		{CourseCode: "CSC405", Title: "Linear regression from scratch", DueDate: now.Add(9 * day), Status: assignment.StatusPending, MaxScore: 25},
		{CourseCode: "CSC401", Title: "Grammar warm-up quiz", DueDate: now.Add(-3 * day), Status: assignment.StatusPending, MaxScore: 10}, // overdue
		{CourseCode: "CSC403", Title: "RPC vs message passing essay", DueDate: now.Add(-7 * day), Status: assignment.StatusSubmitted, MaxScore: 10, SubmittedAt: now.Add(-8 * day)},
		{CourseCode: "CSC405", Title: "Dataset exploration notebook", DueDate: now.Add(-14 * day), Status: assignment.StatusGraded, Score: 21, MaxScore: 25, SubmittedAt: now.Add(-15 * day)},
		{CourseCode: "CSC401", Title: "Course project proposal", DueDate: now.Add(20 * day), Status: assignment.StatusDraft, MaxScore: 30}, // not published yet
	}

	for i := range assignments {
		assignments[i].CreatedAt, assignments[i].UpdatedAt = now, now
	}
	return assignments
}
