package repository

import (
	"context"
	"errors"
	"testing"

	"learnpath_backend/internal/model"
	"learnpath_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRoadmap(userID uint) *model.Roadmap {
	return &model.Roadmap{
		UserID:      userID,
		CourseTitle: "Python",
		Description: "Learn Python",
		Duration:    "4 weeks",
		Level:       model.LevelBeginner,
		IsActive:    true,
		Modules: []model.Module{
			{Title: "Basics", Topics: []string{"Variables", "Numbers", "Strings"}},
			{Title: "Control Flow", Topics: []string{"Conditionals", "Loops"}},
		},
	}
}

func findModule(t *testing.T, repo *RoadmapRepository, roadmapID, userID, moduleID uint) *model.Module {
	t.Helper()
	rm, err := repo.FindByIDForUser(context.Background(), roadmapID, userID)
	require.NoError(t, err)
	for i := range rm.Modules {
		if rm.Modules[i].ID == moduleID {
			return &rm.Modules[i]
		}
	}
	t.Fatalf("module %d not in roadmap %d", moduleID, roadmapID)
	return nil
}

func TestCreateWithModulesAndFind(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	ctx := context.Background()

	rm := newRoadmap(7)
	require.NoError(t, repo.CreateWithModules(ctx, rm))
	require.NotZero(t, rm.ID)
	require.Len(t, rm.Modules, 2)
	assert.Equal(t, rm.ID, rm.Modules[1].RoadmapID)

	got, err := repo.FindByIDForUser(ctx, rm.ID, 7)
	require.NoError(t, err)
	require.Len(t, got.Modules, 2)
	assert.Equal(t, "Basics", got.Modules[0].Title)
	assert.Equal(t, "Control Flow", got.Modules[1].Title)
	assert.Equal(t, []string{"Variables", "Numbers", "Strings"}, []string(got.Modules[0].Topics))
	assert.Empty(t, got.Modules[0].CompletedTopics)
	assert.NotNil(t, got.Modules[0].CompletedTopics)

	_, err = repo.FindByIDForUser(ctx, rm.ID, 8)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateWithModulesRollsBack(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	ctx := context.Background()

	boom := errors.New("boom")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_modules", func(tx *gorm.DB) {
		if tx.Statement.Table == "modules" {
			tx.AddError(boom)
		}
	}))

	err := repo.CreateWithModules(ctx, newRoadmap(1))
	require.ErrorIs(t, err, boom)

	var roadmaps, modules int64
	db.Model(&model.Roadmap{}).Count(&roadmaps)
	db.Model(&model.Module{}).Count(&modules)
	assert.Zero(t, roadmaps)
	assert.Zero(t, modules)
}

func TestListByUser(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithModules(ctx, newRoadmap(1)))
	require.NoError(t, repo.CreateWithModules(ctx, newRoadmap(1)))
	require.NoError(t, repo.CreateWithModules(ctx, newRoadmap(2)))

	list, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Len(t, list[0].Modules, 2)

	empty, err := repo.ListByUser(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSaveModuleProgress(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	ctx := context.Background()

	rm := newRoadmap(1)
	require.NoError(t, repo.CreateWithModules(ctx, rm))

	mod := findModule(t, repo, rm.ID, 1, rm.Modules[1].ID)

	mod.CompletedTopics = []string{"Loops"}
	mod.Progress = 50
	overall, err := repo.SaveModuleProgress(ctx, mod)
	require.NoError(t, err)
	assert.Equal(t, 25.0, overall)
	assert.Equal(t, 1, mod.Version)

	got, err := repo.FindByIDForUser(ctx, rm.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 25.0, got.OverallProgress)
	assert.Equal(t, 50.0, got.Modules[1].Progress)
	assert.Equal(t, []string{"Loops"}, []string(got.Modules[1].CompletedTopics))
}

func TestSaveModuleProgressRejectsStaleVersion(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	ctx := context.Background()

	rm := newRoadmap(1)
	require.NoError(t, repo.CreateWithModules(ctx, rm))

	first := findModule(t, repo, rm.ID, 1, rm.Modules[0].ID)
	second := findModule(t, repo, rm.ID, 1, rm.Modules[0].ID)

	first.CompletedTopics = []string{"Variables"}
	first.Progress = 33
	_, err := repo.SaveModuleProgress(ctx, first)
	require.NoError(t, err)

	second.CompletedTopics = []string{"Numbers"}
	second.Progress = 33
	_, err = repo.SaveModuleProgress(ctx, second)
	assert.ErrorIs(t, err, ErrStaleVersion)

	got := findModule(t, repo, rm.ID, 1, rm.Modules[0].ID)
	assert.Equal(t, []string{"Variables"}, []string(got.CompletedTopics))
}
