package grading

import (
	"math/rand"
	"testing"
	"time"

	"github.com/jonathan/academic-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestScaleFor(t *testing.T) {
	assert.Equal(t, Scale5, ScaleFor(5.0))
	assert.Equal(t, Scale4, ScaleFor(4.0))
	assert.Equal(t, Scale4, ScaleFor(10.0), "unknown ceilings fall back to 4.0")
	assert.Equal(t, Scale4, ScaleFor(0))
	assert.Equal(t, 5.0, Scale5.Ceiling())
	assert.Equal(t, 4.0, Scale4.Ceiling())
	assert.Equal(t, "5.0", Scale5.String())
}

func TestGradeScale_Tables(t *testing.T) {
	assert.Equal(t, map[string]float64{
		"A+": 5.0, "A": 4.5, "B+": 4.0, "B": 3.5, "C+": 3.0,
		"C": 2.5, "D+": 2.0, "D": 1.5, "F": 0.0,
	}, GradeScale(5.0))

	assert.Equal(t, map[string]float64{
		"A+": 4.0, "A": 4.0, "B+": 3.5, "B": 3.0, "C+": 2.5,
		"C": 2.0, "D+": 1.5, "D": 1.0, "F": 0.0,
	}, GradeScale(4.0))

	assert.Equal(t, GradeScale(4.0), GradeScale(7.5))
}

func TestScale_Points(t *testing.T) {
	points, ok := Scale4.Points("F")
	assert.True(t, ok, "F is a recognized grade")
	assert.Equal(t, 0.0, points)

	points, ok = Scale4.Points("E")
	assert.False(t, ok)
	assert.Equal(t, 0.0, points)

	points, ok = Scale5.Points("B+")
	assert.True(t, ok)
	assert.Equal(t, 4.0, points)
}

func TestScale_TableIsACopy(t *testing.T) {
	table := Scale4.Table()
	table["A"] = 99
	points, _ := Scale4.Points("A")
	assert.Equal(t, 4.0, points)
}

func TestScale_Grades(t *testing.T) {
	assert.Equal(t, []string{"A+", "A", "B+", "B", "C+", "C", "D+", "D", "F"}, Scale5.Grades())
}

func TestComputeGPA(t *testing.T) {
	tests := []struct {
		name    string
		courses []types.Course
		want    float64
	}{
		{name: "empty", courses: nil, want: 0},
		{
			name: "weighted average",
			courses: []types.Course{
				{Credits: 3, Grade: "A", GradePoint: 4.0},
				{Credits: 4, Grade: "B+", GradePoint: 3.5},
			},
			want: 26.0 / 7.0,
		},
		{
			name:    "zero credits only",
			courses: []types.Course{{Credits: 0, GradePoint: 4.0}},
			want:    0,
		},
		{
			name: "zero credit course has no weight",
			courses: []types.Course{
				{Credits: 3, GradePoint: 3.0},
				{Credits: 0, GradePoint: 4.0},
			},
			want: 3.0,
		},
		{
			name: "explicit F counts its credits",
			courses: []types.Course{
				{Credits: 3, Grade: "A", GradePoint: 4.0},
				{Credits: 3, Grade: "F", GradePoint: 0},
			},
			want: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeGPA(tt.courses), tolerance)
		})
	}
}

func TestComputeGPA_DoesNotMutateInput(t *testing.T) {
	courses := []types.Course{{ID: "c1", Credits: 3, GradePoint: 4}}
	_ = ComputeGPA(courses)
	assert.Equal(t, []types.Course{{ID: "c1", Credits: 3, GradePoint: 4}}, courses)
}

func TestComputeGPA_WithinGradePointRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	grades := Scale5.Grades()

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(8)
		courses := make([]types.Course, n)
		lo, hi := 1e9, -1e9
		for j := range courses {
			g := grades[rng.Intn(len(grades))]
			p, _ := Scale5.Points(g)
			courses[j] = types.Course{Credits: float64(1 + rng.Intn(5)), Grade: g, GradePoint: p}
			lo = min(lo, p)
			hi = max(hi, p)
		}

		gpa := ComputeGPA(courses)
		assert.GreaterOrEqual(t, gpa, lo-tolerance)
		assert.LessOrEqual(t, gpa, hi+tolerance)
	}
}

func TestComputeCGPA(t *testing.T) {
	assert.Equal(t, 0.0, ComputeCGPA(nil))
	assert.Equal(t, 0.0, ComputeCGPA([]types.Semester{{GPA: 3.0, TotalCredits: 0}}))

	semesters := []types.Semester{
		{GPA: 3.0, TotalCredits: 15},
		{GPA: 3.8, TotalCredits: 18},
	}
	assert.InDelta(t, 113.4/33.0, ComputeCGPA(semesters), tolerance)
	assert.InDelta(t, 3.4364, ComputeCGPA(semesters), 1e-4)
}

func TestComputeCGPA_MatchesFlattenedGPA(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	grades := Scale4.Grades()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 100; round++ {
		var semesters []types.Semester
		var all []types.Course

		semesterCount := 1 + rng.Intn(6)
		for s := 0; s < semesterCount; s++ {
			var courses []types.Course
			courseCount := 1 + rng.Intn(7)
			for c := 0; c < courseCount; c++ {
				courses = append(courses, types.Course{
					Name:    "course",
					Credits: float64(1 + rng.Intn(4)),
					Grade:   grades[rng.Intn(len(grades))],
				})
			}
			sem := BuildSemester(types.SemesterDraft{Name: "s", Courses: courses}, Scale4, "id", now)
			semesters = append(semesters, sem)
			all = append(all, sem.Courses...)
		}

		assert.InDelta(t, ComputeGPA(all), ComputeCGPA(semesters), 1e-9)
	}
}

func TestRequiredGPA(t *testing.T) {
	assert.InDelta(t, 4.5, RequiredGPA(3.0, 30, 3.5, 15), tolerance)
	assert.Equal(t, 0.0, RequiredGPA(3.0, 30, 3.5, 0))
	assert.Equal(t, 0.0, RequiredGPA(3.0, 30, 3.5, -5))

	for _, remaining := range []float64{1, 3, 12.5, 60} {
		assert.InDelta(t, 3.2, RequiredGPA(3.2, 45, 3.2, remaining), tolerance)
	}

	assert.Less(t, RequiredGPA(3.9, 100, 2.0, 10), 0.0, "already exceeded target goes negative")
}

func TestAssessGoal(t *testing.T) {
	tests := []struct {
		name       string
		required   float64
		scale      Scale
		difficulty string
		achievable bool
	}{
		{"above ceiling", 4.5, Scale4, DifficultyImpossible, false},
		{"at ceiling", 4.0, Scale4, DifficultyVeryDifficult, true},
		{"just above 90 percent", 3.61, Scale4, DifficultyVeryDifficult, true},
		{"exactly 90 percent", 3.6, Scale4, DifficultyChallenging, true},
		{"exactly 75 percent", 3.0, Scale4, DifficultyRealistic, true},
		{"realistic", 2.0, Scale4, DifficultyRealistic, true},
		{"negative", -1.0, Scale4, DifficultyRealistic, true},
		{"five point scale challenging", 4.0, Scale5, DifficultyChallenging, true},
		{"five point scale impossible", 5.01, Scale5, DifficultyImpossible, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := AssessGoal(tt.required, tt.scale)
			assert.Equal(t, tt.difficulty, g.Difficulty)
			assert.Equal(t, tt.achievable, g.Achievable)
			assert.Equal(t, tt.required, g.Required)
			assert.NotEmpty(t, g.Color)
		})
	}
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		cgpa  float64
		scale Scale
		want  string
	}{
		{3.6, Scale4, ClassFirst},
		{3.5999, Scale4, ClassSecondUpper},
		{3.0, Scale4, ClassSecondUpper},
		{2.0, Scale4, ClassSecondLower},
		{1.5, Scale4, ClassThird},
		{1.0, Scale4, ClassPass},
		{0.99, Scale4, ClassFail},
		{4.5, Scale5, ClassFirst},
		{4.49, Scale5, ClassSecondUpper},
		{3.5, Scale5, ClassSecondUpper},
		{2.5, Scale5, ClassSecondLower},
		{2.0, Scale5, ClassThird},
		{1.5, Scale5, ClassPass},
		{1.49, Scale5, ClassFail},
		{0, Scale5, ClassFail},
	}

	for _, tt := range tests {
		got := Classify(tt.cgpa, tt.scale)
		assert.Equal(t, tt.want, got.Label, "cgpa=%v scale=%s", tt.cgpa, tt.scale)
		assert.NotEmpty(t, got.Color)
	}
}

func TestClassify_ColorsStablePerLabel(t *testing.T) {
	assert.Equal(t, Classify(3.9, Scale4).Color, Classify(4.8, Scale5).Color)
	assert.Equal(t, "#e74c3c", Classify(0, Scale4).Color)
}

func TestValidCourses(t *testing.T) {
	courses := []types.Course{
		{ID: "1", Name: "Calculus", Credits: 3, Grade: "A"},
		{ID: "2", Name: "", Credits: 3, Grade: "A"},
		{ID: "3", Name: "Physics", Credits: 0, Grade: "B"},
		{ID: "4", Name: "Chemistry", Credits: 3, Grade: "E"},
		{ID: "5", Name: "History", Credits: 2, Grade: "F"},
		{ID: "6", Name: "   ", Credits: 2, Grade: "B"},
	}

	valid := ValidCourses(courses, Scale4)
	require.Len(t, valid, 2)
	assert.Equal(t, "1", valid[0].ID)
	assert.Equal(t, "5", valid[1].ID)
}

func TestBuildSemester(t *testing.T) {
	now := time.Date(2024, 12, 20, 10, 30, 0, 0, time.UTC)
	draft := types.SemesterDraft{
		Name: "Fall 2024",
		Courses: []types.Course{
			{ID: "c1", Name: "Calculus", Credits: 3, Grade: "A"},
			{ID: "c2", Name: "Physics", Credits: 4, Grade: "B+"},
			{ID: "c3", Name: "Draft row", Credits: 0, Grade: ""},
		},
	}

	sem := BuildSemester(draft, Scale4, "sem-1", now)

	assert.Equal(t, "sem-1", sem.ID)
	assert.Equal(t, "Fall 2024", sem.Name)
	assert.Equal(t, "2024-12-20T10:30:00Z", sem.Date)
	require.Len(t, sem.Courses, 2)
	assert.Equal(t, 4.0, sem.Courses[0].GradePoint)
	assert.Equal(t, 3.5, sem.Courses[1].GradePoint)
	assert.Equal(t, 7.0, sem.TotalCredits)
	assert.InDelta(t, 3.714285714, sem.GPA, 1e-8)

	assert.Equal(t, 0.0, draft.Courses[0].GradePoint, "draft is not mutated")
}

func TestBuildSemester_NoValidCourses(t *testing.T) {
	sem := BuildSemester(types.SemesterDraft{Name: "Empty", Courses: []types.Course{{Name: "x"}}}, Scale4, "s", time.Now())
	assert.Empty(t, sem.Courses)
	assert.Equal(t, 0.0, sem.GPA)
	assert.Equal(t, 0.0, sem.TotalCredits)
}

func TestRecompute_UsesNewScale(t *testing.T) {
	sem := types.Semester{
		ID:   "s1",
		Date: "2024-01-01T00:00:00Z",
		Courses: []types.Course{
			{Name: "Calculus", Credits: 3, Grade: "A", GradePoint: 4.0},
			{Name: "Physics", Credits: 3, Grade: "B", GradePoint: 3.0},
		},
		GPA:          3.5,
		TotalCredits: 6,
	}

	got := Recompute(sem, Scale5)
	assert.Equal(t, 4.5, got.Courses[0].GradePoint)
	assert.Equal(t, 3.5, got.Courses[1].GradePoint)
	assert.InDelta(t, 4.0, got.GPA, tolerance)
	assert.Equal(t, "2024-01-01T00:00:00Z", got.Date)

	assert.Equal(t, 4.0, sem.Courses[0].GradePoint, "input semester is not mutated")
	assert.Equal(t, 3.5, sem.GPA)
}

func TestRecompute_UnknownGradeExcludedFromTotals(t *testing.T) {
	sem := types.Semester{
		ID: "s1",
		Courses: []types.Course{
			{Name: "Calculus", Credits: 3, Grade: "A"},
			{Name: "Typo", Credits: 3, Grade: "Z"},
		},
	}

	got := Recompute(sem, Scale4)
	require.Len(t, got.Courses, 2)
	assert.Equal(t, 0.0, got.Courses[1].GradePoint)
	assert.InDelta(t, 4.0, got.GPA, tolerance)
	assert.Equal(t, 3.0, got.TotalCredits)
}

func TestTotalSemesterCredits(t *testing.T) {
	assert.Equal(t, 33.0, TotalSemesterCredits([]types.Semester{{TotalCredits: 15}, {TotalCredits: 18}}))
	assert.Equal(t, 0.0, TotalSemesterCredits(nil))
}
