package client

import (
	"errors"
	"fmt"
	"math"

	"learnpath_backend/internal/model"
	"learnpath_backend/internal/progress"
	"learnpath_backend/internal/service"
)

var (
	ErrNoSelection     = errors.New("no option selected")
	ErrAlreadyAnswered = errors.New("question already answered")
	ErrQuizFinished    = errors.New("quiz finished")
)

// QuizRun walks through a quiz one question at a time and keeps the score.
type QuizRun struct {
	Quiz *model.Quiz

	current  int
	selected string
	answered bool
	score    int
	done     bool
}

func NewQuizRun(quiz *model.Quiz) *QuizRun {
	return &QuizRun{Quiz: quiz, done: len(quiz.Questions) == 0}
}

// Current returns the question on screen, nil once the quiz is finished.
func (r *QuizRun) Current() *model.QuizQuestion {
	if r.done {
		return nil
	}
	return &r.Quiz.Questions[r.current]
}

// Index is the zero-based position of the current question.
func (r *QuizRun) Index() int { return r.current }

func (r *QuizRun) Selected() string { return r.selected }

// Select picks an option for the current question. The choice is locked once
// the answer is submitted.
func (r *QuizRun) Select(option string) error {
	q := r.Current()
	if q == nil {
		return ErrQuizFinished
	}
	if r.answered {
		return ErrAlreadyAnswered
	}
	if !progress.Contains(q.Options, option) {
		return fmt.Errorf("%q is not an option", option)
	}
	r.selected = option
	return nil
}

// Submit checks the selected option and returns whether it was correct.
func (r *QuizRun) Submit() (bool, error) {
	q := r.Current()
	if q == nil {
		return false, ErrQuizFinished
	}
	if r.answered {
		return false, ErrAlreadyAnswered
	}
	if r.selected == "" {
		return false, ErrNoSelection
	}
	r.answered = true
	correct := r.selected == q.CorrectAnswer
	if correct {
		r.score++
	}
	return correct, nil
}

// Next moves past an answered question. It returns false when the quiz is over.
func (r *QuizRun) Next() bool {
	if r.done || !r.answered {
		return !r.done
	}
	r.selected = ""
	r.answered = false
	if r.current < len(r.Quiz.Questions)-1 {
		r.current++
		return true
	}
	r.done = true
	return false
}

func (r *QuizRun) Done() bool { return r.done }
func (r *QuizRun) Score() int { return r.score }
func (r *QuizRun) Total() int { return len(r.Quiz.Questions) }

// Percentage is the score as a whole percentage of all questions.
func (r *QuizRun) Percentage() int {
	if r.Total() == 0 {
		return 0
	}
	return int(math.Round(100 * float64(r.score) / float64(r.Total())))
}

// RoadmapCursor tracks the module selected in a roadmap view and keeps the
// local copy in step with progress updates.
type RoadmapCursor struct {
	Roadmap  *model.Roadmap
	selected int
}

func NewRoadmapCursor(roadmap *model.Roadmap) *RoadmapCursor {
	return &RoadmapCursor{Roadmap: roadmap}
}

func (c *RoadmapCursor) Select(moduleID uint) error {
	for i := range c.Roadmap.Modules {
		if c.Roadmap.Modules[i].ID == moduleID {
			c.selected = i
			return nil
		}
	}
	return fmt.Errorf("module %d is not in this roadmap", moduleID)
}

// Module returns the selected module, nil for a roadmap without modules.
func (c *RoadmapCursor) Module() *model.Module {
	if len(c.Roadmap.Modules) == 0 {
		return nil
	}
	return &c.Roadmap.Modules[c.selected]
}

// NextTopic is the first topic of the selected module not yet completed.
func (c *RoadmapCursor) NextTopic() (string, bool) {
	m := c.Module()
	if m == nil {
		return "", false
	}
	return nextTopic(m)
}

// NextIncomplete finds the first unfinished topic in roadmap order.
func (c *RoadmapCursor) NextIncomplete() (*model.Module, string, bool) {
	for i := range c.Roadmap.Modules {
		m := &c.Roadmap.Modules[i]
		if topic, ok := nextTopic(m); ok {
			return m, topic, true
		}
	}
	return nil, "", false
}

// Apply records a successful progress update in the local copy.
func (c *RoadmapCursor) Apply(moduleID uint, topic string, result *service.ProgressResult) {
	for i := range c.Roadmap.Modules {
		m := &c.Roadmap.Modules[i]
		if m.ID != moduleID {
			continue
		}
		m.CompletedTopics, _ = progress.MarkCompleted(m.Topics, m.CompletedTopics, topic)
		m.Progress = result.ModuleProgress
	}
	c.Roadmap.OverallProgress = result.OverallProgress
}

func nextTopic(m *model.Module) (string, bool) {
	for _, t := range m.Topics {
		if !progress.Contains(m.CompletedTopics, t) {
			return t, true
		}
	}
	return "", false
}
