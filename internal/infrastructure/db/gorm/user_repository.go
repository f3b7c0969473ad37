package gormdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/entities"
	"task-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	model := newUserModel(user.GetUser())
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, apperrors.WrapGorm(err, "user not found", "email already in use")
	}
	return model.toEntity(), nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("looking up user", err)
	}
	return model.toEntity(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("looking up user", err)
	}
	return model.toEntity(), nil
}

func (r *UserRepository) Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	model := newUserModel(user.GetUser())
	// Save with Select("*") so cleared fields (tokens, avatar) are written too.
	err := r.db.WithContext(ctx).Model(&UserModel{Id: model.Id}).Select("*").Omit("id", "created_at").Updates(model).Error
	if err != nil {
		return nil, apperrors.WrapGorm(err, "user not found", "email already in use")
	}
	return r.FindById(ctx, model.Id)
}

// DeleteWithTasks removes the user and every owned task in one transaction.
func (r *UserRepository) DeleteWithTasks(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", id).Delete(&TaskModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&UserModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return apperrors.WrapGorm(err, "user not found", "email already in use")
}
