// Package client is a Go client for the learnpath API. A Session carries the
// server address and a TokenStore, so callers never touch global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"learnpath_backend/internal/model"
	"learnpath_backend/internal/service"
)

var ErrNotSignedIn = errors.New("not signed in")

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Session struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
}

// NewSession talks to baseURL (for example http://localhost:5000). Generation
// calls can take minutes, hence the long timeout.
func NewSession(baseURL string, tokens TokenStore) *Session {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Session{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 3 * time.Minute},
		Tokens:  tokens,
	}
}

func (s *Session) do(ctx context.Context, method, path string, auth bool, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.BaseURL+"/api"+path, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token, err := s.Tokens.Load()
		if err != nil {
			return 0, fmt.Errorf("load token: %w", err)
		}
		if token == "" {
			return 0, ErrNotSignedIn
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

type messageResponse struct {
	Message string `json:"message"`
}

// Signup creates the account and keeps the returned token.
func (s *Session) Signup(ctx context.Context, req service.SignupRequest) (*service.AuthResponse, error) {
	var out service.AuthResponse
	if _, err := s.do(ctx, http.MethodPost, "/user/signup", false, req, &out); err != nil {
		return nil, err
	}
	return &out, s.Tokens.Save(out.Token)
}

func (s *Session) Signin(ctx context.Context, username, password string) (*service.AuthResponse, error) {
	var out service.AuthResponse
	req := service.SigninRequest{Username: username, Password: password}
	if _, err := s.do(ctx, http.MethodPost, "/user/signin", false, req, &out); err != nil {
		return nil, err
	}
	return &out, s.Tokens.Save(out.Token)
}

func (s *Session) Signout() error {
	return s.Tokens.Clear()
}

func (s *Session) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if _, err := s.do(ctx, http.MethodGet, "/user/me", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProfile(ctx context.Context, req service.UpdateProfileRequest) (*model.User, error) {
	var out model.User
	if _, err := s.do(ctx, http.MethodPut, "/user/profile", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	req := service.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	_, err := s.do(ctx, http.MethodPut, "/user/password", true, req, nil)
	return err
}

func (s *Session) TouchActivity(ctx context.Context) (*model.User, error) {
	var out model.User
	if _, err := s.do(ctx, http.MethodPut, "/user/activity", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes the account and forgets the token.
func (s *Session) DeleteAccount(ctx context.Context) error {
	if _, err := s.do(ctx, http.MethodDelete, "/user", true, nil, nil); err != nil {
		return err
	}
	return s.Tokens.Clear()
}

func (s *Session) GenerateRoadmap(ctx context.Context, req service.GenerateRoadmapRequest) (*model.Roadmap, error) {
	var out model.Roadmap
	if _, err := s.do(ctx, http.MethodPost, "/roadmap", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ImportRoadmap(ctx context.Context, outline service.RoadmapOutline) (*model.Roadmap, error) {
	var out model.Roadmap
	if _, err := s.do(ctx, http.MethodPost, "/roadmap/import", true, outline, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Roadmaps(ctx context.Context) ([]model.Roadmap, error) {
	var out []model.Roadmap
	if _, err := s.do(ctx, http.MethodGet, "/roadmap", true, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Session) Roadmap(ctx context.Context, id uint) (*model.Roadmap, error) {
	var out model.Roadmap
	if _, err := s.do(ctx, http.MethodGet, fmt.Sprintf("/roadmap/%d", id), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) CompleteTopic(ctx context.Context, roadmapID, moduleID uint, topic string) (*service.ProgressResult, error) {
	var out service.ProgressResult
	req := service.ProgressRequest{RoadmapID: roadmapID, ModuleID: moduleID, Topic: topic}
	if _, err := s.do(ctx, http.MethodPost, "/roadmap/progress", true, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) Content(ctx context.Context, topic string) (*model.ModuleContent, error) {
	var out model.ModuleContent
	if _, err := s.do(ctx, http.MethodGet, "/module-content/"+url.PathEscape(topic), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateContent reports created=true when this call produced the content.
func (s *Session) GenerateContent(ctx context.Context, topic string) (*model.ModuleContent, bool, error) {
	var out struct {
		messageResponse
		Content *model.ModuleContent `json:"content"`
	}
	status, err := s.do(ctx, http.MethodPost, "/module-content/generate", true, service.TopicRequest{Topic: topic}, &out)
	if err != nil {
		return nil, false, err
	}
	return out.Content, status == http.StatusCreated, nil
}

// LoadContent reads stored content and falls back to generating it.
func (s *Session) LoadContent(ctx context.Context, topic string) (*model.ModuleContent, error) {
	content, err := s.Content(ctx, topic)
	if IsNotFound(err) {
		content, _, err = s.GenerateContent(ctx, topic)
	}
	return content, err
}

func (s *Session) Quiz(ctx context.Context, topic string) (*model.Quiz, error) {
	var out model.Quiz
	if _, err := s.do(ctx, http.MethodGet, "/quiz/"+url.PathEscape(topic), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GenerateQuiz(ctx context.Context, topic string) (*model.Quiz, bool, error) {
	var out struct {
		messageResponse
		Quiz *model.Quiz `json:"quiz"`
	}
	status, err := s.do(ctx, http.MethodPost, "/quiz/generate", true, service.TopicRequest{Topic: topic}, &out)
	if err != nil {
		return nil, false, err
	}
	return out.Quiz, status == http.StatusCreated, nil
}

func (s *Session) LoadQuiz(ctx context.Context, topic string) (*model.Quiz, error) {
	quiz, err := s.Quiz(ctx, topic)
	if IsNotFound(err) {
		quiz, _, err = s.GenerateQuiz(ctx, topic)
	}
	return quiz, err
}
