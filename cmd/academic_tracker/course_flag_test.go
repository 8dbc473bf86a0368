package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/academic-tracker/internal/types"
)

func TestParseCourse(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    types.CourseInput
		wantErr bool
	}{
		{"simple", "Calculus:3:A", types.CourseInput{Name: "Calculus", Credits: 3, Grade: "A"}, false},
		{"lowercase grade", "Physics:4:b+", types.CourseInput{Name: "Physics", Credits: 4, Grade: "B+"}, false},
		{"colon in name", "CS 101: Intro:3.5:A+", types.CourseInput{Name: "CS 101: Intro", Credits: 3.5, Grade: "A+"}, false},
		{"spaces trimmed", " Art : 2 : C ", types.CourseInput{Name: "Art", Credits: 2, Grade: "C"}, false},
		{"incomplete row kept", ":0:", types.CourseInput{}, false},
		{"missing grade", "Calculus:3", types.CourseInput{}, true},
		{"no separators", "Calculus", types.CourseInput{}, true},
		{"bad credits", "Calculus:three:A", types.CourseInput{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCourse(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCourseList_SetAndReset(t *testing.T) {
	var list courseList
	require.NoError(t, list.Set("Calculus:3:A"))
	require.NoError(t, list.Set("Physics:4:B"))
	assert.Len(t, list, 2)
	assert.Equal(t, "course", list.Type())
	assert.Equal(t, "[Calculus:3:A,Physics:4:B]", list.String())

	assert.Error(t, list.Set("broken"))
	assert.Len(t, list, 2)

	list.Reset()
	assert.Empty(t, list)
	assert.Equal(t, "[]", list.String())
}
