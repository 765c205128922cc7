package repository

import (
	"context"
	"errors"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/progress"

	"gorm.io/gorm"
)

// ErrStaleVersion means another writer updated the module after it was read.
var ErrStaleVersion = errors.New("module version is stale")

type RoadmapRepository struct {
	DB *gorm.DB
}

func NewRoadmapRepository(db *gorm.DB) *RoadmapRepository {
	return &RoadmapRepository{DB: db}
}

func orderedModules(db *gorm.DB) *gorm.DB {
	return db.Order("position asc, id asc")
}

// CreateWithModules inserts the roadmap and its modules in one transaction.
// Either everything is written or nothing is.
func (r *RoadmapRepository) CreateWithModules(ctx context.Context, roadmap *model.Roadmap) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules := roadmap.Modules
		if err := tx.Omit("Modules").Create(roadmap).Error; err != nil {
			return err
		}
		for i := range modules {
			modules[i].RoadmapID = roadmap.ID
			modules[i].Position = i
			if modules[i].CompletedTopics == nil {
				modules[i].CompletedTopics = []string{}
			}
		}
		if len(modules) > 0 {
			if err := tx.Create(&modules).Error; err != nil {
				return err
			}
		}
		roadmap.Modules = modules
		return nil
	})
}

func (r *RoadmapRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Roadmap, error) {
	var roadmap model.Roadmap
	err := r.DB.WithContext(ctx).
		Preload("Modules", orderedModules).
		Where("id = ? AND user_id = ?", id, userID).
		First(&roadmap).Error
	return &roadmap, err
}

func (r *RoadmapRepository) ListByUser(ctx context.Context, userID uint) ([]model.Roadmap, error) {
	roadmaps := []model.Roadmap{}
	err := r.DB.WithContext(ctx).
		Preload("Modules", orderedModules).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&roadmaps).Error
	return roadmaps, err
}

// SaveModuleProgress writes the module's completed topics and progress if
// its version still matches, then recomputes the roadmap's overall progress.
// Both writes happen in one transaction. On success module.Version is bumped
// and the new overall progress is returned.
func (r *RoadmapRepository) SaveModuleProgress(ctx context.Context, module *model.Module) (float64, error) {
	var overall float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Module{}).
			Where("id = ? AND version = ?", module.ID, module.Version).
			Updates(map[string]interface{}{
				"completed_topics": module.CompletedTopics,
				"progress":         module.Progress,
				"version":          module.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleVersion
		}

		var values []float64
		if err := tx.Model(&model.Module{}).
			Where("roadmap_id = ?", module.RoadmapID).
			Order("position asc").
			Pluck("progress", &values).Error; err != nil {
			return err
		}
		overall = progress.OverallProgress(values)

		return tx.Model(&model.Roadmap{}).
			Where("id = ?", module.RoadmapID).
			Update("overall_progress", overall).Error
	})
	if err != nil {
		return 0, err
	}
	module.Version++
	return overall, nil
}
