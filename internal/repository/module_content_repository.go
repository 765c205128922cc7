package repository

import (
	"context"
	"errors"
	"learnpath_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleContentRepository struct {
	DB *gorm.DB
}

func NewModuleContentRepository(db *gorm.DB) *ModuleContentRepository {
	return &ModuleContentRepository{DB: db}
}

func (r *ModuleContentRepository) FindByTopic(ctx context.Context, topic string) (*model.ModuleContent, error) {
	var content model.ModuleContent
	err := r.DB.WithContext(ctx).Where("topic = ?", topic).First(&content).Error
	return &content, err
}

// Create stores content for its topic. If another request stored the same
// topic first, the existing row is returned with created=false.
func (r *ModuleContentRepository) Create(ctx context.Context, content *model.ModuleContent) (*model.ModuleContent, bool, error) {
	err := r.DB.WithContext(ctx).Create(content).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindByTopic(ctx, content.Topic)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Read back so the caller sees exactly what later reads will return.
	stored, err := r.FindByTopic(ctx, content.Topic)
	if err != nil {
		return nil, false, err
	}
	return stored, true, nil
}
