package service

import (
	"context"
	"errors"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/database"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minAge = 5
	maxAge = 100
)

// swagger:model SignupRequest
type SignupRequest struct {
	Username         string               `json:"username" binding:"required,notblank,max=100"`
	Password         string               `json:"password" binding:"required,min=6,max=72"`
	Email            string               `json:"email" binding:"required,email,max=255"`
	Age              int                  `json:"age" binding:"omitempty,min=5,max=100"`
	EducationLevel   model.EducationLevel `json:"educationLevel" binding:"omitempty,oneof=primary middle high undergraduate graduate other"`
	CurrentKnowledge string               `json:"currentKnowledge" binding:"required,notblank"`
}

// swagger:model SigninRequest
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the user plus a freshly issued token.
// swagger:model AuthResponse
type AuthResponse struct {
	*model.User
	Token string `json:"token"`
}

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Password == "" || req.Email == "" || strings.TrimSpace(req.CurrentKnowledge) == "" {
		return nil, util.Invalidf("All required fields must be filled")
	}
	if req.Age != 0 && (req.Age < minAge || req.Age > maxAge) {
		return nil, util.Invalidf("age must be between %d and %d", minAge, maxAge)
	}
	if req.EducationLevel == "" {
		req.EducationLevel = model.EducationOther
	}
	if !req.EducationLevel.Valid() {
		return nil, util.Invalidf("invalid education level %q", req.EducationLevel)
	}

	if err := s.checkAvailable(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:         req.Username,
		Email:            req.Email,
		Password:         string(hashedPassword),
		Age:              req.Age,
		EducationLevel:   req.EducationLevel,
		CurrentKnowledge: req.CurrentKnowledge,
		LastActive:       database.Now(),
		RoadmapIDs:       []uint{},
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent signup; report which field clashed.
			if err := s.checkAvailable(ctx, req.Username, req.Email); err != nil {
				return nil, err
			}
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string) error {
	_, err := s.UserRepo.FindByUsername(ctx, username)
	if err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = s.UserRepo.FindByEmail(ctx, email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Signin checks the credentials and records the login as activity. Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResponse, error) {
	user, err := s.UserRepo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	user.LastActive = database.Now()
	if err := s.UserRepo.UpdateLastActive(ctx, user.ID, user.LastActive); err != nil {
		return nil, err
	}

	ids, err := s.UserRepo.RoadmapIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.RoadmapIDs = ids

	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (*AuthResponse, error) {
	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: user, Token: token}, nil
}
