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

const contentCacheKind = "module_content"

type ContentGenerator interface {
	GenerateContent(ctx context.Context, topic string) (*generation.Result[generation.Content], error)
}

type ContentStore interface {
	FindByTopic(ctx context.Context, topic string) (*model.ModuleContent, error)
	Create(ctx context.Context, content *model.ModuleContent) (*model.ModuleContent, bool, error)
}

// swagger:model TopicRequest
type TopicRequest struct {
	Topic string `json:"topic" binding:"required,notblank,max=255"`
}

// ContentService serves lesson material per topic, generating it the first
// time a topic is asked for.
type ContentService struct {
	Repo      ContentStore
	Cache     cache.TopicCache
	Generator ContentGenerator
	Archive   Archiver
}

func NewContentService(repo ContentStore, topicCache cache.TopicCache, gen ContentGenerator, archive Archiver) *ContentService {
	if topicCache == nil {
		topicCache = cache.Nop{}
	}
	return &ContentService{Repo: repo, Cache: topicCache, Generator: gen, Archive: archive}
}

// Get returns stored content without ever calling the generation service.
func (s *ContentService) Get(ctx context.Context, topic string) (*model.ModuleContent, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.Invalidf("Topic is required")
	}
	return s.lookup(ctx, topic)
}

// GetOrGenerate returns the stored content for topic, or generates and stores
// it. created reports whether this call produced the stored row.
func (s *ContentService) GetOrGenerate(ctx context.Context, topic string) (*model.ModuleContent, bool, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, false, util.Invalidf("Topic is required")
	}

	content, err := s.lookup(ctx, topic)
	if err == nil {
		return content, false, nil
	}
	if !errors.Is(err, util.ErrContentNotFound) {
		return nil, false, err
	}

	res, err := s.Generator.GenerateContent(ctx, topic)
	if err != nil {
		return nil, false, err
	}
	s.Archive.Save(ctx, generation.KindContent, topic, res.Raw)

	g := res.Value
	row := &model.ModuleContent{
		Topic:           topic,
		Title:           g.Title,
		Description:     g.Description,
		Details:         g.Details,
		Level:           g.Level,
		EstimatedTime:   g.EstimatedTime,
		Examples:        nonNil(g.Examples),
		RelatedConcepts: nonNil(g.RelatedConcepts),
		OtherResources:  nonNil(g.OtherResources),
		YoutubeLinks:    videoLinks(g.YoutubeLinks),
	}

	stored, created, err := s.Repo.Create(ctx, row)
	if err != nil {
		return nil, false, err
	}
	if !created {
		logger.Log.Info("Content for topic was stored by a concurrent request", zap.String("topic", topic))
	}
	s.remember(ctx, stored)
	return stored, created, nil
}

func (s *ContentService) lookup(ctx context.Context, topic string) (*model.ModuleContent, error) {
	var cached model.ModuleContent
	err := s.Cache.Get(ctx, contentCacheKind, topic, &cached)
	switch {
	case err == nil:
		monitoring.CacheLookups.WithLabelValues(contentCacheKind, "hit").Inc()
		return &cached, nil
	case errors.Is(err, cache.ErrMiss):
		monitoring.CacheLookups.WithLabelValues(contentCacheKind, "miss").Inc()
	default:
		monitoring.CacheLookups.WithLabelValues(contentCacheKind, "error").Inc()
		logger.Log.Warn("Topic cache read failed", zap.String("kind", contentCacheKind), zap.Error(err))
	}

	content, err := s.Repo.FindByTopic(ctx, topic)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrContentNotFound
	} else if err != nil {
		return nil, err
	}
	s.remember(ctx, content)
	return content, nil
}

func (s *ContentService) remember(ctx context.Context, content *model.ModuleContent) {
	if err := s.Cache.Set(ctx, contentCacheKind, content.Topic, content); err != nil {
		logger.Log.Warn("Topic cache write failed", zap.String("kind", contentCacheKind), zap.Error(err))
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func videoLinks(in []generation.Video) []model.VideoLink {
	out := make([]model.VideoLink, 0, len(in))
	for _, v := range in {
		out = append(out, model.VideoLink{
			Title:       v.Title,
			Channel:     v.Channel,
			Description: v.Description,
			URL:         v.URL,
		})
	}
	return out
}
