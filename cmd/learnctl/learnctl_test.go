package main

import (
	"bytes"
	"strings"
	"testing"

	"learnpath_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFormats(t *testing.T) {
	v := map[string]interface{}{"course_title": "Python", "overallProgress": 12.5}

	var buf bytes.Buffer
	require.NoError(t, write(&buf, "json", v))
	assert.JSONEq(t, `{"course_title":"Python","overallProgress":12.5}`, buf.String())

	buf.Reset()
	require.NoError(t, write(&buf, "yaml", v))
	assert.Contains(t, buf.String(), "course_title: Python")
	assert.Contains(t, buf.String(), "overallProgress: 12.5")

	assert.Error(t, write(&buf, "xml", v))
}

func TestPlayQuiz(t *testing.T) {
	quiz := &model.Quiz{Title: "Loops", Questions: []model.QuizQuestion{
		{Question: "Which loops forever?", Options: []string{"while True", "for x in []"}, CorrectAnswer: "while True"},
		{Question: "Which exits?", Options: []string{"pass", "break"}, CorrectAnswer: "break", Explanation: "break leaves the loop"},
	}}

	var out bytes.Buffer
	err := playQuiz(strings.NewReader("7\n1\n1\n"), &out, quiz)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Enter a number from 1 to 2")
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, `Incorrect. The answer is "break".`)
	assert.Contains(t, text, "Score: 1/2 (50%)")
}

func TestPlayQuizAbandoned(t *testing.T) {
	quiz := &model.Quiz{Questions: []model.QuizQuestion{{Question: "?", Options: []string{"a"}, CorrectAnswer: "a"}}}
	assert.Error(t, playQuiz(strings.NewReader(""), &bytes.Buffer{}, quiz))
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, bad := range []string{"0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
