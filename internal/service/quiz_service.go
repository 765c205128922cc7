package service

import (
	"context"
	"errors"
	"learnpath_backend/internal/generation"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/cache"
	"learnpath_backend/pkg/logger"
	"learnpath_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quizCacheKind = "quiz"

type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, topic string) (*generation.Result[generation.Quiz], error)
}

type QuizStore interface {
	FindByTopic(ctx context.Context, topic string) (*model.Quiz, error)
	Create(ctx context.Context, quiz *model.Quiz) (*model.Quiz, bool, error)
}

type QuizService struct {
	Repo      QuizStore
	Cache     cache.TopicCache
	Generator QuizGenerator
	Archive   Archiver
}

func NewQuizService(repo QuizStore, topicCache cache.TopicCache, gen QuizGenerator, archive Archiver) *QuizService {
	if topicCache == nil {
		topicCache = cache.Nop{}
	}
	return &QuizService{Repo: repo, Cache: topicCache, Generator: gen, Archive: archive}
}

func (s *QuizService) Get(ctx context.Context, topic string) (*model.Quiz, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.Invalidf("Topic is required")
	}
	return s.lookup(ctx, topic)
}

func (s *QuizService) GetOrGenerate(ctx context.Context, topic string) (*model.Quiz, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, false, util.Invalidf("Topic is required")
	}

	quiz, err := s.lookup(ctx, topic)
	if err == nil {
		return quiz, false, nil
	}
	if !errors.Is(err, util.ErrQuizNotFound) {
		return nil, false, err
	}

	res, err := s.Generator.GenerateQuiz(ctx, topic)
	if err != nil {
		return nil, false, err
	}
	s.Archive.Save(ctx, generation.KindQuiz, topic, res.Raw)

	row := &model.Quiz{
		Topic:       topic,
		Title:       res.Value.Title,
		Description: res.Value.Description,
	}
	for _, q := range res.Value.Questions {
		row.Questions = append(row.Questions, model.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}

	stored, created, err := s.Repo.Create(ctx, row)
	if err != nil {
		return nil, false, err
	}
	if !created {
		logger.Log.Info("Quiz for topic was stored by a concurrent request", zap.String("topic", topic))
	}
	s.remember(ctx, stored)
	return stored, created, nil
}

func (s *QuizService) lookup(ctx context.Context, topic string) (*model.Quiz, error) {
	var cached model.Quiz
	err := s.Cache.Get(ctx, quizCacheKind, topic, &cached)
	switch {
	case err == nil:
		monitoring.CacheLookups.WithLabelValues(quizCacheKind, "hit").Inc()
		return &cached, nil
	case errors.Is(err, cache.ErrMiss):
		monitoring.CacheLookups.WithLabelValues(quizCacheKind, "miss").Inc()
	default:
		monitoring.CacheLookups.WithLabelValues(quizCacheKind, "error").Inc()
		logger.Log.Warn("Topic cache read failed", zap.String("kind", quizCacheKind), zap.Error(err))
	}

	quiz, err := s.Repo.FindByTopic(ctx, topic)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	} else if err != nil {
		return nil, err
	}
	s.remember(ctx, quiz)
	return quiz, nil
}

func (s *QuizService) remember(ctx context.Context, quiz *model.Quiz) {
	if err := s.Cache.Set(ctx, quizCacheKind, quiz.Topic, quiz); err != nil {
		logger.Log.Warn("Topic cache write failed", zap.String("kind", quizCacheKind), zap.Error(err))
	}
}
