package assignment

import (
	"time"
)

// Assignment statuses. A draft is not published to the student yet: it never
// counts as upcoming or overdue and cannot be submitted until published.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusGraded    = "graded"
)

var Statuses = []string{StatusDraft, StatusPending, StatusSubmitted, StatusGraded}

type Assignment struct {
	ID          string    `json:"id" db:"id"`
	CourseCode  string    `json:"course_code" db:"course_code"`
	Title       string    `json:"title" db:"title"`
	Details     string    `json:"details" db:"details"`
	DueDate     time.Time `json:"due_date" db:"due_date"` // UTC
	Status      string    `json:"status" db:"status"`
	Score       float64   `json:"score" db:"score"`
	MaxScore    float64   `json:"max_score" db:"max_score"`
	SubmittedAt time.Time `json:"submitted_at" db:"submitted_at"` // UTC; zero until submitted
	CreatedAt   time.Time `json:"created_at" db:"created_at"`     // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`     // UTC
}

func (a Assignment) IsOverdue(now time.Time) bool {
	return a.Status == StatusPending && a.DueDate.Before(now)
}

func (a Assignment) IsDueWithin(now time.Time, window time.Duration) bool {
	return a.Status == StatusPending && !a.DueDate.Before(now) && a.DueDate.Before(now.Add(window))
}

type QueryFilter struct {
	// Search does a case-insensitive match on one of Title or CourseCode.
	Search     string    `json:"search,omitempty" query:"search"`
	Status     string    `json:"status,omitempty" query:"status"`
	CourseCode string    `json:"course_code,omitempty" query:"course_code"`
	DueFrom    time.Time `json:"due_from,omitempty" query:"due_from"`
	DueTo      time.Time `json:"due_to,omitempty" query:"due_to"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Status == "" && qf.CourseCode == "" && qf.DueFrom.IsZero() && qf.DueTo.IsZero()
}
