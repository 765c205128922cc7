package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"learnpath_backend/internal/app"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/generation"
	"learnpath_backend/internal/service"
	"learnpath_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct{}

func (stubGenerator) GenerateRoadmap(_ context.Context, req generation.RoadmapRequest) (*generation.Result[generation.Roadmap], error) {
	return &generation.Result[generation.Roadmap]{Value: &generation.Roadmap{
		CourseTitle: req.CourseTitle,
		Level:       "Beginner",
		Modules: []generation.Module{
			{Title: "Basics", Topics: []string{"Variables", "Numbers"}},
			{Title: "Control Flow", Topics: []string{"Loops"}},
		},
	}, Raw: []byte(`{}`)}, nil
}

func (stubGenerator) GenerateContent(_ context.Context, topic string) (*generation.Result[generation.Content], error) {
	return &generation.Result[generation.Content]{Value: &generation.Content{
		Title:       topic,
		Description: "About " + topic,
	}, Raw: []byte(`{}`)}, nil
}

func (stubGenerator) GenerateQuiz(_ context.Context, topic string) (*generation.Result[generation.Quiz], error) {
	return &generation.Result[generation.Quiz]{Value: &generation.Quiz{
		Title: topic + " quiz",
		Questions: []generation.Question{
			{Question: "Pick a", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{Question: "Pick b", Options: []string{"a", "b"}, CorrectAnswer: "b"},
		},
	}, Raw: []byte(`{}`)}, nil
}

func newSession(t *testing.T) *Session {
	t.Helper()

	cfg := &config.Config{
		Server:     config.ServerConfig{Mode: "test"},
		JWT:        config.JWTConfig{Secret: "client-test-secret", ExpireTime: time.Hour},
		Generation: config.GenerationConfig{MaxModules: 10, MaxSubModules: 10},
		Storage:    config.StorageConfig{Type: "none"},
	}
	a, err := app.New(cfg, app.Dependencies{DB: testutil.DB(t), Generator: stubGenerator{}})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router)
	t.Cleanup(srv.Close)

	return NewSession(srv.URL, &FileTokenStore{Path: filepath.Join(t.TempDir(), "token")})
}

func TestSessionFlow(t *testing.T) {
	s := newSession(t)
	ctx := context.Background()

	_, err := s.Me(ctx)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	auth, err := s.Signup(ctx, service.SignupRequest{
		Username:         "alice",
		Password:         "password123",
		Email:            "alice@example.com",
		CurrentKnowledge: "none",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", auth.Username)

	stored, err := s.Tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, auth.Token, stored)

	me, err := s.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)

	roadmap, err := s.GenerateRoadmap(ctx, service.GenerateRoadmapRequest{CourseTitle: "Python"})
	require.NoError(t, err)
	require.Len(t, roadmap.Modules, 2)

	cursor := NewRoadmapCursor(roadmap)
	module, topic, ok := cursor.NextIncomplete()
	require.True(t, ok)
	assert.Equal(t, "Variables", topic)

	result, err := s.CompleteTopic(ctx, roadmap.ID, module.ID, topic)
	require.NoError(t, err)
	assert.Equal(t, float64(50), result.ModuleProgress)
	assert.InDelta(t, 25, result.OverallProgress, 1e-9)
	cursor.Apply(module.ID, topic, result)

	_, topic, _ = cursor.NextIncomplete()
	assert.Equal(t, "Numbers", topic)

	fresh, err := s.Roadmap(ctx, roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Variables"}, []string(fresh.Modules[0].CompletedTopics))
	assert.InDelta(t, cursor.Roadmap.OverallProgress, fresh.OverallProgress, 1e-9)

	_, err = s.Roadmap(ctx, roadmap.ID+100)
	assert.True(t, IsNotFound(err))

	_, err = s.Content(ctx, "Loops")
	assert.True(t, IsNotFound(err))
	content, err := s.LoadContent(ctx, "Loops")
	require.NoError(t, err)
	assert.Equal(t, "Loops", content.Topic)
	_, created, err := s.GenerateContent(ctx, "Loops")
	require.NoError(t, err)
	assert.False(t, created)

	quiz, err := s.LoadQuiz(ctx, "Loops")
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 2)

	require.NoError(t, s.DeleteAccount(ctx))
	stored, err = s.Tokens.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSessionReportsServerErrors(t *testing.T) {
	s := newSession(t)

	_, err := s.Signin(context.Background(), "nobody", "password123")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid username or password", apiErr.Message)
}

func TestMemoryTokenStore(t *testing.T) {
	m := NewMemoryTokenStore()
	tok, err := m.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, m.Save("abc"))
	tok, _ = m.Load()
	assert.Equal(t, "abc", tok)

	require.NoError(t, m.Clear())
	tok, _ = m.Load()
	assert.Empty(t, tok)
}

func TestFileTokenStoreMissingFile(t *testing.T) {
	f := &FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "token")}
	tok, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
	require.NoError(t, f.Clear())

	require.NoError(t, f.Save("xyz"))
	tok, err = f.Load()
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)
}

func TestFileTokenStoreRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix file modes")
	}
	path := filepath.Join(t.TempDir(), "learnctl", "token")
	f := &FileTokenStore{Path: path}

	require.NoError(t, f.Save("first"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	dir, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o700), dir.Mode().Perm())

	tok, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "first", tok)

	require.NoError(t, os.Chmod(path, 0o644))
	require.NoError(t, f.Save("second"))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	tok, _ = f.Load()
	assert.Equal(t, "second", tok)

	require.NoError(t, f.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	tok, err = f.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)
}
