package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"learnpath_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pythonRoadmap = `{
  "course_title": "Python",
  "description": "Learn Python from scratch",
  "duration": "4 weeks",
  "level": "beginner",
  "modules": {
    "module_2": {
      "module_title": "Control Flow",
      "description": "Branching and loops",
      "sub_module_2": {"title": "Loops", "description": "for and while"},
      "sub_module_1": {"title": "Conditionals", "description": "if and else"}
    },
    "module_1": {
      "module_title": "Basics",
      "description": "Syntax and types",
      "sub_module_1": {"title": "Variables", "description": "names and values"},
      "sub_module_10": {"title": "Strings", "description": "text"},
      "sub_module_2": {"title": "Numbers", "description": "int and float"}
    }
  }
}`

const variablesContent = `{
  "content": {
    "title": "Variables",
    "description": "Names bound to values",
    "details": "A variable is created the first time you assign to it.",
    "level": "Beginner",
    "estimated_time": "15 minutes",
    "examples": ["x = 1", "name = \"ada\""],
    "related_concepts": ["types"]
  },
  "other_resources": ["https://docs.python.org/3/tutorial/"],
  "youtube_links": [{"title": "Variables", "channel": "PyCasts", "description": "intro", "url": "https://youtu.be/x"}]
}`

const variablesQuiz = `{
  "title": "Variables quiz",
  "description": "Check yourself",
  "questions": [
    {"question": "Which creates a variable?", "options": ["x = 1", "x == 1"], "correct_answer": "x = 1", "explanation": "Assignment binds a name."}
  ]
}`

type upstream struct {
	status int
	body   string
	got    map[string]interface{}
	auth   string
}

func newTestClient(t *testing.T, u *upstream) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &u.got)
		u.auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		_, _ = w.Write([]byte(u.body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClientWithHTTP(config.GenerationConfig{
		BaseURL:       srv.URL,
		APIKey:        "secret",
		RoadmapPath:   "/api/generate-roadmap",
		ContentPath:   "/api/generate-content",
		QuizPath:      "/api/generate-quiz",
		Timeout:       5 * time.Second,
		MaxModules:    10,
		MaxSubModules: 10,
	}, srv.Client())
	require.NoError(t, err)
	return c
}

func TestGenerateRoadmapOrdersByNumericKey(t *testing.T) {
	u := &upstream{status: http.StatusOK, body: pythonRoadmap}
	c := newTestClient(t, u)

	res, err := c.GenerateRoadmap(context.Background(), RoadmapRequest{
		CourseTitle: "Python",
		Profile:     Profile{Age: 20, CurrentEducation: "undergraduate", CurrentKnowledge: "none"},
	})
	require.NoError(t, err)

	rm := res.Value
	assert.Equal(t, "Python", rm.CourseTitle)
	assert.Equal(t, "Beginner", rm.Level)
	require.Len(t, rm.Modules, 2)
	assert.Equal(t, "Basics", rm.Modules[0].Title)
	assert.Equal(t, []string{"Variables", "Numbers", "Strings"}, rm.Modules[0].Topics)
	assert.Equal(t, "Control Flow", rm.Modules[1].Title)
	assert.Equal(t, []string{"Conditionals", "Loops"}, rm.Modules[1].Topics)
	assert.JSONEq(t, pythonRoadmap, string(res.Raw))

	assert.Equal(t, "Bearer secret", u.auth)
	assert.Equal(t, "Python", u.got["course_title"])
	profile, ok := u.got["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "undergraduate", profile["current_education"])
}

func TestGenerateRoadmapRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>`,
		"missing modules": `{"course_title": "Python"}`,
		"bad module key":  `{"course_title": "P", "modules": {"chapter_1": {"module_title": "A"}}}`,
		"zero padded key": `{"course_title": "P", "modules": {"module_01": {"module_title": "A"}}}`,
		"blank module":    `{"course_title": "P", "modules": {"module_1": {"module_title": "  "}}}`,
		"blank topic":     `{"course_title": "P", "modules": {"module_1": {"module_title": "A", "sub_module_1": {"title": " "}}}}`,
		"duplicate topic": `{"course_title": "P", "modules": {"module_1": {"module_title": "A", "sub_module_1": {"title": "X"}, "sub_module_2": {"title": "X"}}}}`,
		"unknown level":   `{"course_title": "P", "level": "expert", "modules": {"module_1": {"module_title": "A"}}}`,
		"stray field":     `{"course_title": "P", "modules": {"module_1": {"module_title": "A", "topics": []}}}`,
		"too many modules": `{"course_title": "P", "modules": {
			"module_1": {"module_title": "A"}, "module_2": {"module_title": "A"}, "module_3": {"module_title": "A"},
			"module_4": {"module_title": "A"}, "module_5": {"module_title": "A"}, "module_6": {"module_title": "A"},
			"module_7": {"module_title": "A"}, "module_8": {"module_title": "A"}, "module_9": {"module_title": "A"},
			"module_10": {"module_title": "A"}, "module_11": {"module_title": "A"}}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, &upstream{status: http.StatusOK, body: body})
			_, err := c.GenerateRoadmap(context.Background(), RoadmapRequest{CourseTitle: "P"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse), "got %v", err)

			var me *MalformedError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, http.StatusBadGateway, me.HTTPStatus())
		})
	}
}

func TestGenerateRoadmapEmptyLevelMeansAllLevels(t *testing.T) {
	body := `{"course_title": "Go", "modules": {"module_1": {"module_title": "Intro", "sub_module_1": {"title": "Setup"}}}}`
	c := newTestClient(t, &upstream{status: http.StatusOK, body: body})

	res, err := c.GenerateRoadmap(context.Background(), RoadmapRequest{CourseTitle: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "All Levels", res.Value.Level)
}

func TestGenerateRoadmapRespectsSubModuleLimit(t *testing.T) {
	u := &upstream{status: http.StatusOK, body: pythonRoadmap}
	c := newTestClient(t, u)
	c.cfg.MaxSubModules = 2
	s, err := compileSchemas(c.cfg.MaxModules, 2)
	require.NoError(t, err)
	c.schemas = s

	_, err = c.GenerateRoadmap(context.Background(), RoadmapRequest{CourseTitle: "Python"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUpstreamStatusIsPropagated(t *testing.T) {
	c := newTestClient(t, &upstream{status: http.StatusServiceUnavailable, body: `{"error": "model overloaded"}`})

	_, err := c.GenerateContent(context.Background(), "Variables")
	require.Error(t, err)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusServiceUnavailable, ue.HTTPStatus())
	assert.Equal(t, "model overloaded", ue.Message)
	assert.Equal(t, KindContent, ue.Kind)
}

func TestUnreachableUpstreamIsBadGateway(t *testing.T) {
	c, err := NewClientWithHTTP(config.GenerationConfig{
		BaseURL:     "http://127.0.0.1:1",
		ContentPath: "/api/generate-content",
	}, &http.Client{Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.GenerateContent(context.Background(), "Variables")
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 0, ue.StatusCode)
	assert.Equal(t, http.StatusBadGateway, ue.HTTPStatus())
}

func TestGenerateContent(t *testing.T) {
	u := &upstream{status: http.StatusOK, body: variablesContent}
	c := newTestClient(t, u)

	res, err := c.GenerateContent(context.Background(), "Variables")
	require.NoError(t, err)
	assert.Equal(t, "Variables", u.got["topic"])

	content := res.Value
	assert.Equal(t, "Variables", content.Title)
	assert.Equal(t, "15 minutes", content.EstimatedTime)
	assert.Equal(t, []string{"x = 1", "name = \"ada\""}, content.Examples)
	assert.Equal(t, []string{"https://docs.python.org/3/tutorial/"}, content.OtherResources)
	require.Len(t, content.YoutubeLinks, 1)
	assert.Equal(t, "PyCasts", content.YoutubeLinks[0].Channel)
}

func TestGenerateContentRejectsMissingContent(t *testing.T) {
	c := newTestClient(t, &upstream{status: http.StatusOK, body: `{"other_resources": []}`})

	_, err := c.GenerateContent(context.Background(), "Variables")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateQuiz(t *testing.T) {
	c := newTestClient(t, &upstream{status: http.StatusOK, body: variablesQuiz})

	res, err := c.GenerateQuiz(context.Background(), "Variables")
	require.NoError(t, err)
	require.Len(t, res.Value.Questions, 1)
	assert.Equal(t, "x = 1", res.Value.Questions[0].CorrectAnswer)
}

func TestGenerateQuizRejectsAnswerOutsideOptions(t *testing.T) {
	body := `{"title": "Q", "questions": [{"question": "?", "options": ["a", "b"], "correct_answer": "c"}]}`
	c := newTestClient(t, &upstream{status: http.StatusOK, body: body})

	_, err := c.GenerateQuiz(context.Background(), "Variables")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestNumberedKeys(t *testing.T) {
	m := map[string]json.RawMessage{
		"sub_module_10": nil,
		"sub_module_2":  nil,
		"module_title":  nil,
		"sub_module_1":  nil,
		"description":   nil,
	}
	assert.Equal(t, []string{"sub_module_1", "sub_module_2", "sub_module_10"}, numberedKeys(m, "sub_module"))
}
