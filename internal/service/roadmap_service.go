package service

import (
	"context"
	"errors"
	"learnpath_backend/internal/generation"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/progress"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/logger"
	"learnpath_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxProgressAttempts bounds the read-modify-write loop in MarkTopicComplete.
const maxProgressAttempts = 3

type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, req generation.RoadmapRequest) (*generation.Result[generation.Roadmap], error)
}

// Archiver keeps raw generation payloads. Save never fails the request.
type Archiver interface {
	Save(ctx context.Context, kind, subject string, raw []byte)
}

type RoadmapStore interface {
	CreateWithModules(ctx context.Context, roadmap *model.Roadmap) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Roadmap, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Roadmap, error)
	SaveModuleProgress(ctx context.Context, module *model.Module) (float64, error)
}

// swagger:model GenerateRoadmapRequest
type GenerateRoadmapRequest struct {
	CourseTitle string             `json:"course_title" binding:"required,notblank,max=255"`
	Profile     generation.Profile `json:"profile"`
}

// RoadmapOutline is a roadmap written by the client instead of generated.
// swagger:model RoadmapOutline
type RoadmapOutline struct {
	CourseTitle string          `json:"course_title" binding:"required,notblank,max=255"`
	Description string          `json:"description"`
	Duration    string          `json:"duration" binding:"max=100"`
	Level       string          `json:"level"`
	Modules     []ModuleOutline `json:"modules" binding:"required,min=1,dive"`
}

// swagger:model ModuleOutline
type ModuleOutline struct {
	Title       string   `json:"module_title" binding:"required,notblank,max=255"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// swagger:model ProgressRequest
type ProgressRequest struct {
	RoadmapID uint   `json:"roadmapId" binding:"required"`
	ModuleID  uint   `json:"moduleId" binding:"required"`
	Topic     string `json:"topic" binding:"required,notblank"`
}

// swagger:model ProgressResult
type ProgressResult struct {
	Message         string  `json:"message"`
	ModuleProgress  float64 `json:"moduleProgress"`
	OverallProgress float64 `json:"overallProgress"`
	Changed         bool    `json:"-"`
}

type RoadmapService struct {
	Roadmaps      RoadmapStore
	UserRepo      *repository.UserRepository
	Generator     RoadmapGenerator
	Archive       Archiver
	MaxModules    int
	MaxSubModules int
}

func NewRoadmapService(roadmaps RoadmapStore, userRepo *repository.UserRepository, gen RoadmapGenerator, archive Archiver, maxModules, maxSubModules int) *RoadmapService {
	return &RoadmapService{
		Roadmaps:      roadmaps,
		UserRepo:      userRepo,
		Generator:     gen,
		Archive:       archive,
		MaxModules:    maxModules,
		MaxSubModules: maxSubModules,
	}
}

// Generate asks the generation service for a roadmap and stores it for the
// user. Profile fields the caller leaves empty come from the stored profile.
func (s *RoadmapService) Generate(ctx context.Context, userID uint, req GenerateRoadmapRequest) (*model.Roadmap, error) {
	title := strings.TrimSpace(req.CourseTitle)
	if title == "" {
		return nil, util.Invalidf("course_title is required")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	profile := req.Profile
	if profile.Age == 0 {
		profile.Age = user.Age
	}
	if strings.TrimSpace(profile.CurrentEducation) == "" {
		profile.CurrentEducation = string(user.EducationLevel)
	}
	if strings.TrimSpace(profile.CurrentKnowledge) == "" {
		profile.CurrentKnowledge = user.CurrentKnowledge
	}

	res, err := s.Generator.GenerateRoadmap(ctx, generation.RoadmapRequest{CourseTitle: title, Profile: profile})
	if err != nil {
		return nil, err
	}
	s.Archive.Save(ctx, generation.KindRoadmap, title, res.Raw)

	generated := res.Value
	roadmap := &model.Roadmap{
		UserID:      userID,
		CourseTitle: generated.CourseTitle,
		Description: generated.Description,
		Duration:    generated.Duration,
		Level:       model.RoadmapLevel(generated.Level),
		IsActive:    true,
	}
	for _, m := range generated.Modules {
		roadmap.Modules = append(roadmap.Modules, model.Module{
			Title:           m.Title,
			Description:     m.Description,
			Topics:          m.Topics,
			CompletedTopics: []string{},
		})
	}

	return s.store(ctx, roadmap)
}

// Import stores a client-written roadmap after applying the same limits as
// generated ones.
func (s *RoadmapService) Import(ctx context.Context, userID uint, outline RoadmapOutline) (*model.Roadmap, error) {
	title := strings.TrimSpace(outline.CourseTitle)
	if title == "" {
		return nil, util.Invalidf("course_title is required")
	}
	level, ok := generation.NormalizeLevel(outline.Level)
	if !ok {
		return nil, util.Invalidf("unknown level %q", outline.Level)
	}
	if len(outline.Modules) == 0 {
		return nil, util.Invalidf("a roadmap needs at least one module")
	}
	if len(outline.Modules) > s.MaxModules {
		return nil, util.Invalidf("a roadmap can have at most %d modules", s.MaxModules)
	}

	roadmap := &model.Roadmap{
		UserID:      userID,
		CourseTitle: title,
		Description: outline.Description,
		Duration:    outline.Duration,
		Level:       model.RoadmapLevel(level),
		IsActive:    true,
	}
	for i, m := range outline.Modules {
		moduleTitle := strings.TrimSpace(m.Title)
		if moduleTitle == "" {
			return nil, util.Invalidf("module %d has no title", i+1)
		}
		if len(m.Topics) > s.MaxSubModules {
			return nil, util.Invalidf("module %d has more than %d topics", i+1, s.MaxSubModules)
		}
		topics := make([]string, 0, len(m.Topics))
		for _, t := range m.Topics {
			t = strings.TrimSpace(t)
			if t == "" {
				return nil, util.Invalidf("module %d has a blank topic", i+1)
			}
			if progress.Contains(topics, t) {
				return nil, util.Invalidf("module %d repeats topic %q", i+1, t)
			}
			topics = append(topics, t)
		}
		roadmap.Modules = append(roadmap.Modules, model.Module{
			Title:           moduleTitle,
			Description:     m.Description,
			Topics:          topics,
			CompletedTopics: []string{},
		})
	}

	return s.store(ctx, roadmap)
}

func (s *RoadmapService) store(ctx context.Context, roadmap *model.Roadmap) (*model.Roadmap, error) {
	if err := s.Roadmaps.CreateWithModules(ctx, roadmap); err != nil {
		return nil, err
	}
	logger.Log.Info("Roadmap created",
		zap.Uint("roadmapId", roadmap.ID),
		zap.Uint("userId", roadmap.UserID),
		zap.Int("modules", len(roadmap.Modules)),
	)
	return s.Roadmaps.FindByIDForUser(ctx, roadmap.ID, roadmap.UserID)
}

func (s *RoadmapService) List(ctx context.Context, userID uint) ([]model.Roadmap, error) {
	return s.Roadmaps.ListByUser(ctx, userID)
}

// Get returns the roadmap only if userID owns it. A roadmap owned by someone
// else looks exactly like a missing one.
func (s *RoadmapService) Get(ctx context.Context, userID, roadmapID uint) (*model.Roadmap, error) {
	roadmap, err := s.Roadmaps.FindByIDForUser(ctx, roadmapID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRoadmapNotFound
	} else if err != nil {
		return nil, err
	}
	return roadmap, nil
}

// MarkTopicComplete records topic as done in the module and refreshes the
// module and roadmap percentages. Completing a topic twice is a no-op.
func (s *RoadmapService) MarkTopicComplete(ctx context.Context, userID uint, req ProgressRequest) (*ProgressResult, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, util.Invalidf("topic is required")
	}

	for attempt := 1; attempt <= maxProgressAttempts; attempt++ {
		roadmap, err := s.Get(ctx, userID, req.RoadmapID)
		if err != nil {
			return nil, err
		}

		module := findModule(roadmap.Modules, req.ModuleID)
		if module == nil {
			return nil, util.ErrModuleNotFound
		}
		if !progress.Contains(module.Topics, topic) {
			return nil, util.ErrInvalidTopic
		}

		completed, changed := progress.MarkCompleted(module.Topics, module.CompletedTopics, topic)
		if !changed {
			return &ProgressResult{
				Message:         "Topic already completed",
				ModuleProgress:  module.Progress,
				OverallProgress: roadmap.OverallProgress,
			}, nil
		}

		module.CompletedTopics = completed
		module.Progress = progress.ModuleProgress(progress.CountCompleted(module.Topics, completed), len(module.Topics))

		overall, err := s.Roadmaps.SaveModuleProgress(ctx, module)
		if errors.Is(err, repository.ErrStaleVersion) {
			monitoring.ProgressConflicts.Inc()
			logger.Log.Debug("Progress update lost a race, retrying",
				zap.Uint("moduleId", module.ID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return nil, err
		}

		return &ProgressResult{
			Message:         "Progress updated successfully",
			ModuleProgress:  module.Progress,
			OverallProgress: overall,
			Changed:         true,
		}, nil
	}

	return nil, util.ErrConcurrentUpdate
}

func findModule(modules []model.Module, id uint) *model.Module {
	for i := range modules {
		if modules[i].ID == id {
			return &modules[i]
		}
	}
	return nil
}
