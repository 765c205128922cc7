package repository

import (
	"context"
	"errors"
	"learnpath_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByTopic(ctx context.Context, topic string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("topic = ?", topic).
		First(&quiz).Error
	return &quiz, err
}

// Create stores the quiz and its questions in one transaction. A lost race on
// the topic's unique index yields the winner's quiz with created=false.
func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) (*model.Quiz, bool, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questions := quiz.Questions
		if err := tx.Omit("Questions").Create(quiz).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			questions[i].Position = i
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		quiz.Questions = questions
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		existing, findErr := r.FindByTopic(ctx, quiz.Topic)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	stored, err := r.FindByTopic(ctx, quiz.Topic)
	if err != nil {
		return nil, false, err
	}
	return stored, true, nil
}
