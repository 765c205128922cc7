package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleProgress(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             float64
	}{
		{"no topics", 0, 0, 0},
		{"nothing done", 0, 4, 0},
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"half", 2, 4, 50},
		{"all", 7, 7, 100},
		{"clamped", 9, 7, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ModuleProgress(tt.completed, tt.total))
		})
	}
}

func TestOverallProgress(t *testing.T) {
	assert.Equal(t, float64(0), OverallProgress(nil))
	assert.Equal(t, float64(50), OverallProgress([]float64{100, 0}))
	assert.InDelta(t, 44.333, OverallProgress([]float64{33, 100, 0}), 0.001)
}

func TestMarkCompleted(t *testing.T) {
	topics := []string{"Variables", "Loops", "Functions"}

	next, changed := MarkCompleted(topics, nil, "Loops")
	assert.True(t, changed)
	assert.Equal(t, []string{"Loops"}, next)

	again, changed := MarkCompleted(topics, next, "Loops")
	assert.False(t, changed)
	assert.Equal(t, next, again)

	_, changed = MarkCompleted(topics, next, "Classes")
	assert.False(t, changed)
}

func TestMarkCompletedDoesNotAlias(t *testing.T) {
	topics := []string{"a", "b", "c"}
	completed := make([]string, 1, 4)
	completed[0] = "a"

	next, _ := MarkCompleted(topics, completed, "b")
	next[0] = "z"
	assert.Equal(t, "a", completed[0])
}

func TestCountCompletedIgnoresUnknownTopics(t *testing.T) {
	assert.Equal(t, 1, CountCompleted([]string{"a", "b"}, []string{"a", "x"}))
}
