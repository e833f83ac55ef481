package echoapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/student"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Log(msg) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Log(msg) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Log(msg) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Log(msg) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatal(msg) }

func newTestServer(t *testing.T) Server {
	t.Helper()

	db := inmemdb.Open()
	require.NoError(t, db.Seed())

	conf := &core.Config{
		AppName:        "Darasa",
		Env:            "TEST",
		TestMode:       true,
		ReminderWindow: 3 * 24 * time.Hour,
		Server:         core.ServerConfig{Addr: ":0"},
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	studentSvc := student.NewService(inmemdb.NewStudentRepository(db))
	courseSvc := course.NewService(inmemdb.NewCourseRepository(db))
	assignSvc := assignment.NewService(inmemdb.NewAssignmentRepository(db))
	dashSvc := dashboard.NewService(studentSvc, courseSvc, assignSvc, 7*24*time.Hour)

	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         testLogger{t: t},
		DisableReqLogs: true,
		StudentSvc:     studentSvc,
		CourseSvc:      courseSvc,
		AssignmentSvc:  assignSvc,
		DashboardSvc:   dashSvc,
		Validate:       validate,
		Translator:     translator,
	})
}

func doRequest(t *testing.T, s Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func Test_home(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")
}

func Test_studentApi(t *testing.T) {
	s := newTestServer(t)

	t.Run("retrieve profile", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/profile", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var st student.Student
		decode(t, rec, &st)
		assert.Equal(t, "Amina Yusuf", st.Name)
		assert.Equal(t, "DRS/2022/0147", st.RegNo)
	})

	t.Run("update profile", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPut, "/v1/profile", `{"name": "Amina A. Yusuf"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var st student.Student
		decode(t, rec, &st)
		assert.Equal(t, "Amina A. Yusuf", st.Name)
		// email untouched
		assert.Equal(t, "amina.yusuf@student.darasa.io", st.Email)
	})

	t.Run("update profile with invalid email", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPut, "/v1/profile", `{"email": "nope"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "email")
	})
}

func Test_courseApi(t *testing.T) {
	s := newTestServer(t)

	t.Run("query all", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var crs []course.Course
		decode(t, rec, &crs)
		assert.Len(t, crs, 11)
	})

	t.Run("filter by semester", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses?semester=2023%2F2024+S1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var crs []course.Course
		decode(t, rec, &crs)
		require.Len(t, crs, 4)
		for _, c := range crs {
			assert.Equal(t, "2023/2024 S1", c.Semester)
		}
	})

	t.Run("ordering", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses?ordering=-credits,code", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var crs []course.Course
		decode(t, rec, &crs)
		require.NotEmpty(t, crs)
		assert.Equal(t, "MTH301", crs[0].Code) // the only 4-credit course
	})

	t.Run("retrieve by code", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses/CSC301", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var crs course.Course
		decode(t, rec, &crs)
		assert.Equal(t, "Data Structures", crs.Title)
		assert.Equal(t, "A", crs.Grade)
	})

	t.Run("retrieve unknown code", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses/NOPE999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("semesters", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses/semesters", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var semesters []string
		decode(t, rec, &semesters)
		assert.Equal(t, []string{"2023/2024 S1", "2023/2024 S2", "2024/2025 S1"}, semesters)
	})

	t.Run("cumulative cgpa", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses/cgpa", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var gpa GPAResponse
		decode(t, rec, &gpa)
		assert.Empty(t, gpa.Semester)
		assert.Equal(t, 3.52, gpa.CGPA) // 81.0 grade points over 23 credits
	})

	t.Run("semester gpa", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/courses/cgpa?semester=2023%2F2024+S1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var gpa GPAResponse
		decode(t, rec, &gpa)
		assert.Equal(t, "2023/2024 S1", gpa.Semester)
		assert.Equal(t, 3.56, gpa.CGPA) // 42.7 grade points over 12 credits
	})
}

func Test_assignmentApi(t *testing.T) {
	s := newTestServer(t)

	pendingID := func(t *testing.T) string {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments?status=pending&course_code=CSC401&search=lexer", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		require.Len(t, asgs, 1)
		return asgs[0].ID
	}

	t.Run("query all", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		assert.Len(t, asgs, 7)
		// sorted by due date
		for i := 1; i < len(asgs); i++ {
			assert.False(t, asgs[i].DueDate.Before(asgs[i-1].DueDate))
		}
	})

	t.Run("filter by status", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments?status=pending", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		assert.Len(t, asgs, 4)
	})

	t.Run("upcoming", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments/upcoming", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		assert.Len(t, asgs, 2) // due in 2 and 5 days; the 9-day one is outside the default window
	})

	t.Run("overdue", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments/overdue", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		require.Len(t, asgs, 1)
		assert.Equal(t, "Grammar warm-up quiz", asgs[0].Title)
	})

	t.Run("retrieve unknown id", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments/does-not-exist", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("publish a draft", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/v1/assignments?status=draft", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var asgs []assignment.Assignment
		decode(t, rec, &asgs)
		require.Len(t, asgs, 1)
		id := asgs[0].ID

		// drafts cannot be submitted
		rec = doRequest(t, s, http.MethodPost, "/v1/assignments/"+id+"/submit", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doRequest(t, s, http.MethodPost, "/v1/assignments/"+id+"/publish", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var a assignment.Assignment
		decode(t, rec, &a)
		assert.Equal(t, assignment.StatusPending, a.Status)

		// publishing twice is a validation error
		rec = doRequest(t, s, http.MethodPost, "/v1/assignments/"+id+"/publish", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("submit then grade", func(t *testing.T) {
		id := pendingID(t)

		rec := doRequest(t, s, http.MethodPost, "/v1/assignments/"+id+"/submit", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var a assignment.Assignment
		decode(t, rec, &a)
		assert.Equal(t, assignment.StatusSubmitted, a.Status)
		assert.False(t, a.SubmittedAt.IsZero())

		// double submit is a validation error
		rec = doRequest(t, s, http.MethodPost, "/v1/assignments/"+id+"/submit", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		// grade it
		rec = doRequest(t, s, http.MethodPut, "/v1/assignments/"+id+"/score", `{"score": 18}`)
		require.Equal(t, http.StatusOK, rec.Code)
		decode(t, rec, &a)
		assert.Equal(t, assignment.StatusGraded, a.Status)
		assert.Equal(t, 18.0, a.Score)

		// score above max is rejected
		rec = doRequest(t, s, http.MethodPut, "/v1/assignments/"+id+"/score", `{"score": 100}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_dashboardApi(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dash dashboard.Dashboard
	decode(t, rec, &dash)
	assert.Equal(t, "Amina Yusuf", dash.Student.Name)
	assert.Equal(t, "2024/2025 S1", dash.Semester)
	assert.Equal(t, 3.52, dash.CGPA)
	assert.Len(t, dash.Courses, 3) // current semester's courses
	assert.Len(t, dash.Upcoming, 2)
	assert.Equal(t, 11, dash.Counts.Courses)
	assert.Equal(t, 8, dash.Counts.GradedCourses)
	assert.Equal(t, 4, dash.Counts.PendingAssignments)
	assert.Equal(t, 1, dash.Counts.OverdueAssignments)
}
