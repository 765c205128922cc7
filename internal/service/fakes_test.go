package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"learnpath_backend/internal/config"
	"learnpath_backend/internal/generation"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGenerator struct {
	mu sync.Mutex

	roadmap *generation.Roadmap
	content *generation.Content
	quiz    *generation.Quiz
	err     error

	roadmapReqs []generation.RoadmapRequest
	topics      []string
}

func (f *fakeGenerator) GenerateRoadmap(_ context.Context, req generation.RoadmapRequest) (*generation.Result[generation.Roadmap], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roadmapReqs = append(f.roadmapReqs, req)
	if f.err != nil {
		return nil, f.err
	}
	rm := *f.roadmap
	return &generation.Result[generation.Roadmap]{Value: &rm, Raw: []byte(`{"course_title":"` + req.CourseTitle + `"}`)}, nil
}

func (f *fakeGenerator) GenerateContent(_ context.Context, topic string) (*generation.Result[generation.Content], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, f.err
	}
	c := *f.content
	return &generation.Result[generation.Content]{Value: &c, Raw: []byte(`{"content":{}}`)}, nil
}

func (f *fakeGenerator) GenerateQuiz(_ context.Context, topic string) (*generation.Result[generation.Quiz], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quiz
	return &generation.Result[generation.Quiz]{Value: &q, Raw: []byte(`{"questions":[]}`)}, nil
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.topics) + len(f.roadmapReqs)
}

type fakeArchive struct {
	mu    sync.Mutex
	saved []string
}

func (a *fakeArchive) Save(_ context.Context, kind, subject string, raw []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = append(a.saved, kind+":"+subject)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret-test-secret-test-secret", ExpireTime: time.Hour},
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		Username:         username,
		Email:            username + "@x.com",
		Password:         "unused",
		Age:              20,
		EducationLevel:   model.EducationUndergraduate,
		CurrentKnowledge: "none",
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), u))
	return u
}

func pythonOutline() *generation.Roadmap {
	return &generation.Roadmap{
		CourseTitle: "Python",
		Description: "Learn Python",
		Duration:    "4 weeks",
		Level:       "Beginner",
		Modules: []generation.Module{
			{Title: "Basics", Topics: []string{"Variables", "Numbers", "Strings"}},
			{Title: "Control Flow", Topics: []string{"Conditionals", "Loops"}},
			{Title: "Wrap-up"},
		},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	return testutil.DB(t)
}
