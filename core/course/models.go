package course

import (
	"time"
)

// Letter-grade scale (4.0 system).
var gradeScale = map[string]float64{
	"A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0,
	"F": 0.0,
}

// PointsForGrade returns the grade-point value for a letter grade.
func PointsForGrade(grade string) (float64, bool) {
	pts, ok := gradeScale[grade]
	return pts, ok
}

type Course struct {
	ID          string    `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Title       string    `json:"title" db:"title"`
	Credits     float64   `json:"credits" db:"credits"`
	Semester    string    `json:"semester" db:"semester"`
	Instructor  string    `json:"instructor" db:"instructor"`
	Grade       string    `json:"grade" db:"grade"` // empty until graded
	GradePoints float64   `json:"grade_points" db:"grade_points"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (c Course) IsGraded() bool { return c.Grade != "" }

func (c Course) gradeRecord() GradeRecord {
	return GradeRecord{Credits: c.Credits, GradePoints: c.GradePoints}
}

// GradeRecords extracts the aggregation input from the graded courses in crs.
func GradeRecords(crs []Course) []GradeRecord {
	records := make([]GradeRecord, 0, len(crs))
	for _, c := range crs {
		if c.IsGraded() {
			records = append(records, c.gradeRecord())
		}
	}
	return records
}

type QueryFilter struct {
	// Search does a case-insensitive match on one of Code, Title or Instructor.
	Search   string `json:"search,omitempty" query:"search"`
	Semester string `json:"semester,omitempty" query:"semester"`
	Graded   *bool  `json:"graded,omitempty" query:"graded"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Semester == "" && qf.Graded == nil
}
