package service

import (
	"context"
	"errors"
	"learnpath_backend/internal/model"
	"learnpath_backend/internal/repository"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/database"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UpdateProfileRequest only touches the fields that are present.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Email                *string               `json:"email" binding:"omitempty,email,max=255"`
	Age                  *int                  `json:"age" binding:"omitempty,min=5,max=100"`
	EducationLevel       *model.EducationLevel `json:"educationLevel" binding:"omitempty,oneof=primary middle high undergraduate graduate other"`
	PreferredContentType *string               `json:"preferredContentType" binding:"omitempty,max=64"`
	CurrentKnowledge     *string               `json:"currentKnowledge" binding:"omitempty,notblank"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=72"`
}

// UserService handles profile reads and changes for the signed-in user.
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

// GetProfile loads the user with the ids of their roadmaps.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	ids, err := s.UserRepo.RoadmapIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RoadmapIDs = ids
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, util.Invalidf("email must not be empty")
		}
		if email != user.Email {
			other, err := s.UserRepo.FindByEmail(ctx, email)
			if err == nil && other.ID != user.ID {
				return nil, util.ErrEmailRegistered
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = email
		}
	}
	if req.Age != nil {
		if *req.Age < minAge || *req.Age > maxAge {
			return nil, util.Invalidf("age must be between %d and %d", minAge, maxAge)
		}
		user.Age = *req.Age
	}
	if req.EducationLevel != nil {
		if !req.EducationLevel.Valid() {
			return nil, util.Invalidf("invalid education level %q", *req.EducationLevel)
		}
		user.EducationLevel = *req.EducationLevel
	}
	if req.PreferredContentType != nil {
		user.PreferredContentType = strings.TrimSpace(*req.PreferredContentType)
	}
	if req.CurrentKnowledge != nil {
		if strings.TrimSpace(*req.CurrentKnowledge) == "" {
			return nil, util.Invalidf("currentKnowledge must not be empty")
		}
		user.CurrentKnowledge = *req.CurrentKnowledge
	}

	if err := s.UserRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEmailRegistered
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID uint, req ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return util.Invalidf("All fields must be filled")
	}

	user, err := s.UserRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrUserNotFound
	} else if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return util.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hashedPassword))
}

// DeleteAccount removes the user. Their roadmaps stay in the store.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	deleted, err := s.UserRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrUserNotFound
	}
	return nil
}

// TouchActivity stamps lastActive with the current time.
func (s *UserService) TouchActivity(ctx context.Context, userID uint) (*model.User, error) {
	if err := s.UserRepo.UpdateLastActive(ctx, userID, database.Now()); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
