package repository

import (
	"context"
	"learnpath_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return &user, err
}

// Exists reports whether a user row with id is present.
func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, hash string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", hash).
		Error
}

func (r *UserRepository) UpdateLastActive(ctx context.Context, userID uint, at time.Time) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_active", at).
		Error
}

// Delete removes the user row and reports whether one existed. Roadmaps keep
// their user_id.
func (r *UserRepository) Delete(ctx context.Context, userID uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&model.User{}, userID)
	return res.RowsAffected > 0, res.Error
}

// RoadmapIDs lists the ids of the user's roadmaps, oldest first.
func (r *UserRepository) RoadmapIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.WithContext(ctx).Model(&model.Roadmap{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("id", &ids).
		Error
	return ids, err
}
