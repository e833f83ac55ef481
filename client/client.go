// Package client is the Go consumer of the portal API: a thin JSON/HTTP
// client plus a Portal facade that wraps each endpoint in a fetch.Executor
// for caching, retry and cancellation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/dashboard"
	"github.com/trezcool/darasa/core/fetch"
	"github.com/trezcool/darasa/core/student"
)

// apiError is the error payload the portal API returns.
type apiError struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors,omitempty"`
}

// GPA is the payload of the CGPA endpoint. Semester is empty for the
// cumulative average.
type GPA struct {
	Semester string  `json:"semester,omitempty"`
	CGPA     float64 `json:"cgpa"`
}

type Client struct {
	baseURL string
	http    *http.Client

	// Tokens is optional; without it requests go out unauthenticated.
	Tokens TokenSource
	// OnUnauthorized fires once per 401 response, before the error is
	// returned, so the owner can refresh credentials or sign the student out.
	OnUnauthorized func()
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &fetch.Error{Code: fetch.CodeInternal, Message: "encoding request body: " + err.Error(), Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return &fetch.Error{Code: fetch.CodeInternal, Message: "building request: " + err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		token, err := c.Tokens.Token()
		if err != nil {
			c.unauthorized()
			return fetch.Normalize(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &fetch.Error{Code: fetch.CodeTransport, Message: err.Error(), Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusUnauthorized {
		c.unauthorized()
		return fetch.Unauthorized(readAPIError(res.Body, "unauthorized"))
	}
	if res.StatusCode >= http.StatusBadRequest {
		return &fetch.Error{
			StatusCode: res.StatusCode,
			Code:       fetch.CodeHTTP,
			Message:    readAPIError(res.Body, http.StatusText(res.StatusCode)),
		}
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return &fetch.Error{Code: fetch.CodeInternal, Message: "decoding response: " + err.Error(), Err: err}
		}
	}
	return nil
}

func (c *Client) unauthorized() {
	if c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}
}

func readAPIError(body io.Reader, fallback string) string {
	var payload apiError
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return fallback
}

func (c *Client) Profile(ctx context.Context) (student.Student, error) {
	var st student.Student
	err := c.do(ctx, http.MethodGet, "/v1/profile", nil, nil, &st)
	return st, err
}

func (c *Client) UpdateProfile(ctx context.Context, us student.UpdateStudent) (student.Student, error) {
	var st student.Student
	err := c.do(ctx, http.MethodPut, "/v1/profile", nil, us, &st)
	return st, err
}

func (c *Client) Courses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := make(url.Values)
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Semester != "" {
		query.Set("semester", filter.Semester)
	}
	if filter.Graded != nil {
		query.Set("graded", fmt.Sprintf("%t", *filter.Graded))
	}

	var crs []course.Course
	err := c.do(ctx, http.MethodGet, "/v1/courses", query, nil, &crs)
	return crs, err
}

func (c *Client) Course(ctx context.Context, code string) (course.Course, error) {
	var crs course.Course
	err := c.do(ctx, http.MethodGet, "/v1/courses/"+url.PathEscape(code), nil, nil, &crs)
	return crs, err
}

func (c *Client) Semesters(ctx context.Context) ([]string, error) {
	var semesters []string
	err := c.do(ctx, http.MethodGet, "/v1/courses/semesters", nil, nil, &semesters)
	return semesters, err
}

// CGPA returns the cumulative grade point average; pass a semester for that
// semester's GPA instead.
func (c *Client) CGPA(ctx context.Context, semester string) (GPA, error) {
	var query url.Values
	if semester != "" {
		query = url.Values{"semester": {semester}}
	}
	var gpa GPA
	err := c.do(ctx, http.MethodGet, "/v1/courses/cgpa", query, nil, &gpa)
	return gpa, err
}

func (c *Client) Assignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	query := make(url.Values)
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.CourseCode != "" {
		query.Set("course_code", filter.CourseCode)
	}
	if !filter.DueFrom.IsZero() {
		query.Set("due_from", filter.DueFrom.Format(time.RFC3339))
	}
	if !filter.DueTo.IsZero() {
		query.Set("due_to", filter.DueTo.Format(time.RFC3339))
	}

	var asgs []assignment.Assignment
	err := c.do(ctx, http.MethodGet, "/v1/assignments", query, nil, &asgs)
	return asgs, err
}

func (c *Client) UpcomingAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var asgs []assignment.Assignment
	err := c.do(ctx, http.MethodGet, "/v1/assignments/upcoming", nil, nil, &asgs)
	return asgs, err
}

func (c *Client) SubmitAssignment(ctx context.Context, id string) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := c.do(ctx, http.MethodPost, "/v1/assignments/"+url.PathEscape(id)+"/submit", nil, nil, &a)
	return a, err
}

func (c *Client) Dashboard(ctx context.Context) (dashboard.Dashboard, error) {
	var dash dashboard.Dashboard
	err := c.do(ctx, http.MethodGet, "/v1/dashboard", nil, nil, &dash)
	return dash, err
}
