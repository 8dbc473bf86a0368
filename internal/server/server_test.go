package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jonathan/academic-tracker/internal/analytics"
	"github.com/jonathan/academic-tracker/internal/export"
	"github.com/jonathan/academic-tracker/internal/grading"
	"github.com/jonathan/academic-tracker/internal/server/ratelimit"
	"github.com/jonathan/academic-tracker/internal/store"
	"github.com/jonathan/academic-tracker/internal/tracker"
	"github.com/jonathan/academic-tracker/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		tracker:     tracker.New(store.NewMemoryStore(), zap.NewNop()),
		logger:      zap.NewNop(),
		rateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
		now:         func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) },
	}
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createSemester(t *testing.T, h http.Handler, name string, courses ...types.CourseInput) types.Semester {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/semesters", types.CreateSemesterRequest{Name: name, Courses: courses})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sem types.Semester
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sem))
	return sem
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestSemesterLifecycle(t *testing.T) {
	h := newTestServer(t).Handler()

	sem := createSemester(t, h, "Fall 2025",
		types.CourseInput{Name: "Calculus", Credits: 3, Grade: "A"},
		types.CourseInput{Name: "Physics", Credits: 4, Grade: "B"},
		types.CourseInput{Name: "", Credits: 2, Grade: "A"},
	)
	assert.NotEmpty(t, sem.ID)
	assert.Len(t, sem.Courses, 2)
	assert.InDelta(t, (12.0+12.0)/7, sem.GPA, 1e-9)

	// list
	w := doJSON(t, h, http.MethodGet, "/semesters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Semesters []types.Semester `json:"semesters"`
		Count     int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, sem.ID, list.Semesters[0].ID)

	// get
	w = doJSON(t, h, http.MethodGet, "/semesters/"+sem.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// update
	name := "Fall 2025 (revised)"
	w = doJSON(t, h, http.MethodPut, "/semesters/"+sem.ID, types.UpdateSemesterRequest{
		Name:    &name,
		Courses: []types.CourseInput{{Name: "Calculus", Credits: 3, Grade: "B"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated types.Semester
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, 3.0, updated.GPA)
	assert.Equal(t, sem.Date, updated.Date)

	// delete
	w = doJSON(t, h, http.MethodDelete, "/semesters/"+sem.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, h, http.MethodGet, "/semesters/"+sem.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = doJSON(t, h, http.MethodDelete, "/semesters/"+sem.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSemester_Errors(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed JSON", `{"name": `, http.StatusBadRequest},
		{"unknown field", `{"name": "Fall", "courses": [], "extra": 1}`, http.StatusBadRequest},
		{"missing name", `{"courses": [{"name": "A", "credits": 3, "grade": "A"}]}`, http.StatusBadRequest},
		{"blank name", `{"name": "   ", "courses": [{"name": "A", "credits": 3, "grade": "A"}]}`, http.StatusBadRequest},
		{"no valid courses", `{"name": "Fall", "courses": [{"name": "A", "credits": 0, "grade": "A"}]}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/semesters", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestUpdateSemester_Errors(t *testing.T) {
	h := newTestServer(t).Handler()
	sem := createSemester(t, h, "Fall 2025", types.CourseInput{Name: "Calculus", Credits: 3, Grade: "A"})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"unknown grade", `{"courses": [{"name": "Calculus", "credits": 3, "grade": "A"}, {"name": "Typo", "credits": 3, "grade": "Z"}]}`, http.StatusBadRequest},
		{"blank name", `{"name": "  "}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/semesters/"+sem.ID, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := doJSON(t, h, http.MethodGet, "/semesters/"+sem.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored types.Semester
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.Equal(t, sem, stored)
}

func TestHandleGetSemester_PathValue(t *testing.T) {
	s := newTestServer(t)
	sem, err := s.tracker.AddSemester(context.Background(), &types.CreateSemesterRequest{
		Name:    "Spring",
		Courses: []types.CourseInput{{Name: "Art", Credits: 2, Grade: "A+"}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/semesters/"+sem.ID, nil)
	req.SetPathValue("id", sem.ID)
	w := httptest.NewRecorder()
	s.handleGetSemester(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got types.Semester
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *sem, got)
}

func TestStandingAndAnalytics(t *testing.T) {
	h := newTestServer(t).Handler()
	createSemester(t, h, "One", types.CourseInput{Name: "A", Credits: 15, Grade: "B"})
	createSemester(t, h, "Two", types.CourseInput{Name: "B", Credits: 18, Grade: "A"})

	w := doJSON(t, h, http.MethodGet, "/standing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st analytics.Standing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.InDelta(t, 117.0/33, st.CGPA, 1e-9)
	assert.Equal(t, 33.0, st.TotalCredits)
	assert.Equal(t, grading.ClassSecondUpper, st.Class.Label)

	w = doJSON(t, h, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum analytics.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, analytics.TrendImproving, sum.Trend)
}

func TestGoalEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	createSemester(t, h, "One", types.CourseInput{Name: "A", Credits: 30, Grade: "B"})

	w := doJSON(t, h, http.MethodPost, "/goal", types.GoalRequest{TargetCGPA: 3.5, RemainingCredits: 30})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var goal grading.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))
	assert.InDelta(t, 4.0, goal.Required, 1e-9)
	assert.Equal(t, grading.DifficultyVeryDifficult, goal.Difficulty)

	w = doJSON(t, h, http.MethodPost, "/goal", types.GoalRequest{TargetCGPA: 3.5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsAndReset(t *testing.T) {
	h := newTestServer(t).Handler()
	createSemester(t, h, "One", types.CourseInput{Name: "A", Credits: 3, Grade: "A"})

	scale := 5.0
	w := doJSON(t, h, http.MethodPut, "/settings", types.UpdateSettingsRequest{GradingScale: &scale})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var settings types.AppSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, 5.0, settings.GradingScale)

	bad := 7.0
	w = doJSON(t, h, http.MethodPut, "/settings", types.UpdateSettingsRequest{GradingScale: &bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, h, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/settings", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.Equal(t, types.DefaultSettings(), settings)

	w = doJSON(t, h, http.MethodGet, "/semesters", nil)
	assert.Contains(t, w.Body.String(), `"count":0`)
}

func TestExportEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	createSemester(t, h, "One", types.CourseInput{Name: "Calculus", Credits: 3, Grade: "A"})

	req := httptest.NewRequest(http.MethodGet, "/export.xlsx", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transcript_2026-06-01.xlsx")

	f, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/semesters", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules:         []ratelimit.Rule{{Method: "POST", Path: "/reset", Limit: 1, Window: time.Hour}},
	})
	t.Cleanup(s.rateLimiter.Stop)
	h := s.Handler()

	w := doJSON(t, h, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = doJSON(t, h, http.MethodPost, "/reset", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.168.1.7:54321"
	assert.Equal(t, "192.168.1.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-addr"
	assert.Equal(t, "not-an-addr", s.extractClientID(req))
}

func TestNew(t *testing.T) {
	s := New(Config{Port: 9999}, tracker.New(store.NewMemoryStore(), nil), nil)
	t.Cleanup(s.rateLimiter.Stop)
	assert.Equal(t, ":9999", s.httpServer.Addr)
	assert.NotNil(t, s.httpServer.Handler)
}
