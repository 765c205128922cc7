// Package generation talks to the external service that writes roadmaps,
// lesson content and quizzes. Every response is validated against a JSON
// schema before it is decoded; anything unexpected is rejected.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"learnpath_backend/internal/config"
	"learnpath_backend/pkg/logger"
	"learnpath_backend/pkg/monitoring"
	"learnpath_backend/pkg/tracing"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	KindRoadmap = "roadmap"
	KindContent = "content"
	KindQuiz    = "quiz"
)

const maxResponseBytes = 4 << 20

// Result carries a decoded artifact together with the raw response body.
type Result[T any] struct {
	Value *T
	Raw   []byte
}

type Client struct {
	cfg     config.GenerationConfig
	http    *http.Client
	schemas *schemas
}

func NewClient(cfg config.GenerationConfig) (*Client, error) {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

func NewClientWithHTTP(cfg config.GenerationConfig, hc *http.Client) (*Client, error) {
	if cfg.MaxModules <= 0 {
		cfg.MaxModules = 10
	}
	if cfg.MaxSubModules <= 0 {
		cfg.MaxSubModules = 10
	}
	s, err := compileSchemas(cfg.MaxModules, cfg.MaxSubModules)
	if err != nil {
		return nil, err
	}
	return &Client{cfg: cfg, http: hc, schemas: s}, nil
}

func (c *Client) GenerateRoadmap(ctx context.Context, req RoadmapRequest) (*Result[Roadmap], error) {
	raw, err := c.post(ctx, KindRoadmap, c.cfg.RoadmapPath, req)
	if err != nil {
		return nil, err
	}
	if err := validate(KindRoadmap, c.schemas.roadmap, raw); err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindRoadmap, "malformed").Inc()
		return nil, err
	}
	roadmap, err := decodeRoadmap(raw, c.cfg.MaxSubModules)
	if err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindRoadmap, "malformed").Inc()
		return nil, err
	}
	if roadmap.CourseTitle == "" {
		roadmap.CourseTitle = strings.TrimSpace(req.CourseTitle)
	}
	monitoring.GenerationRequests.WithLabelValues(KindRoadmap, "ok").Inc()
	return &Result[Roadmap]{Value: roadmap, Raw: raw}, nil
}

func (c *Client) GenerateContent(ctx context.Context, topic string) (*Result[Content], error) {
	raw, err := c.post(ctx, KindContent, c.cfg.ContentPath, topicRequest{Topic: topic})
	if err != nil {
		return nil, err
	}
	if err := validate(KindContent, c.schemas.content, raw); err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindContent, "malformed").Inc()
		return nil, err
	}
	content, err := decodeContent(raw)
	if err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindContent, "malformed").Inc()
		return nil, err
	}
	monitoring.GenerationRequests.WithLabelValues(KindContent, "ok").Inc()
	return &Result[Content]{Value: content, Raw: raw}, nil
}

func (c *Client) GenerateQuiz(ctx context.Context, topic string) (*Result[Quiz], error) {
	raw, err := c.post(ctx, KindQuiz, c.cfg.QuizPath, topicRequest{Topic: topic})
	if err != nil {
		return nil, err
	}
	if err := validate(KindQuiz, c.schemas.quiz, raw); err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindQuiz, "malformed").Inc()
		return nil, err
	}
	quiz, err := decodeQuiz(raw)
	if err != nil {
		monitoring.GenerationRequests.WithLabelValues(KindQuiz, "malformed").Inc()
		return nil, err
	}
	monitoring.GenerationRequests.WithLabelValues(KindQuiz, "ok").Inc()
	return &Result[Quiz]{Value: quiz, Raw: raw}, nil
}

// post sends one request and returns the raw 2xx body. There is no retry: a
// failed call is reported to the caller as is.
func (c *Client) post(ctx context.Context, kind, path string, payload interface{}) ([]byte, error) {
	ctx, span := tracing.Tracer.Start(ctx, "generation."+kind, oteltrace.WithSpanKind(oteltrace.SpanKindClient))
	defer span.End()

	start := time.Now()
	defer func() {
		monitoring.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + path
	span.SetAttributes(attribute.String("generation.url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		monitoring.GenerationRequests.WithLabelValues(kind, "unreachable").Inc()
		logger.Log.Warn("Generation service unreachable", zap.String("kind", kind), zap.Error(err))
		return nil, &UpstreamError{Kind: kind, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		monitoring.GenerationRequests.WithLabelValues(kind, "unreachable").Inc()
		return nil, &UpstreamError{Kind: kind, Message: fmt.Sprintf("read response: %v", err)}
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, resp.Status)
		monitoring.GenerationRequests.WithLabelValues(kind, "upstream_error").Inc()
		return nil, &UpstreamError{Kind: kind, StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}

	logger.Log.Debug("Generation request completed",
		zap.String("kind", kind),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return body, nil
}

// upstreamMessage pulls {"error": "..."} or {"detail": "..."} out of an
// error body, falling back to a truncated copy of the body.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		for _, m := range []string{parsed.Error, parsed.Detail, parsed.Message} {
			if m != "" {
				return m
			}
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = http.StatusText(http.StatusBadGateway)
	}
	return msg
}
