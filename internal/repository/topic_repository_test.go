package repository

import (
	"context"
	"testing"

	"learnpath_backend/internal/model"
	"learnpath_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestModuleContentCreateAndFind(t *testing.T) {
	db := testutil.DB(t)
	repo := NewModuleContentRepository(db)
	ctx := context.Background()

	_, err := repo.FindByTopic(ctx, "Variables")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stored, created, err := repo.Create(ctx, &model.ModuleContent{
		Topic:        "Variables",
		Title:        "Variables",
		Description:  "Names bound to values",
		Examples:     []string{"x = 1"},
		YoutubeLinks: []model.VideoLink{{Title: "Intro", URL: "https://youtu.be/x"}},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, stored.ID)

	again, err := repo.FindByTopic(ctx, "Variables")
	require.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestModuleContentDuplicateTopicReturnsWinner(t *testing.T) {
	db := testutil.DB(t)
	repo := NewModuleContentRepository(db)
	ctx := context.Background()

	winner, created, err := repo.Create(ctx, &model.ModuleContent{Topic: "Loops", Title: "First", Description: "d"})
	require.NoError(t, err)
	require.True(t, created)

	got, created, err := repo.Create(ctx, &model.ModuleContent{Topic: "Loops", Title: "Second", Description: "d"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, winner.ID, got.ID)
	assert.Equal(t, "First", got.Title)
}

func TestQuizCreateKeepsQuestionOrder(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuizRepository(db)
	ctx := context.Background()

	stored, created, err := repo.Create(ctx, &model.Quiz{
		Topic: "Loops",
		Title: "Loops quiz",
		Questions: []model.QuizQuestion{
			{Question: "first?", Options: []string{"a", "b"}, CorrectAnswer: "a"},
			{Question: "second?", Options: []string{"c", "d"}, CorrectAnswer: "d"},
			{Question: "third?", Options: []string{"e", "f"}, CorrectAnswer: "e"},
		},
	})
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, stored.Questions, 3)
	assert.Equal(t, "first?", stored.Questions[0].Question)
	assert.Equal(t, "third?", stored.Questions[2].Question)

	dup, created, err := repo.Create(ctx, &model.Quiz{
		Topic:     "Loops",
		Title:     "Other",
		Questions: []model.QuizQuestion{{Question: "x?", Options: []string{"x", "y"}, CorrectAnswer: "x"}},
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.ID, dup.ID)

	var questions int64
	db.Model(&model.QuizQuestion{}).Count(&questions)
	assert.Equal(t, int64(3), questions, "losing insert must not leave questions behind")
}

func TestUserRepository(t *testing.T) {
	db := testutil.DB(t)
	users := NewUserRepository(db)
	roadmaps := NewRoadmapRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "alice", Email: "a@x.com", Password: "hash", CurrentKnowledge: "none"}
	require.NoError(t, users.Create(ctx, u))

	dup := &model.User{Username: "alice", Email: "b@x.com", Password: "hash", CurrentKnowledge: "none"}
	assert.ErrorIs(t, users.Create(ctx, dup), gorm.ErrDuplicatedKey)

	byName, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, model.EducationOther, byName.EducationLevel)

	require.NoError(t, roadmaps.CreateWithModules(ctx, newRoadmap(u.ID)))
	ids, err := users.RoadmapIDs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	deleted, err := users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err = users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// Roadmaps are left behind.
	left, err := roadmaps.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}
