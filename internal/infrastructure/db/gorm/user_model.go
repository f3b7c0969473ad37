package gormdb

import (
	"time"

	"github.com/google/uuid"

	"task-service/internal/domain/entities"
)

type UserModel struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string   `gorm:"not null"`
	Email     string   `gorm:"uniqueIndex;not null"`
	Password  string   `gorm:"not null"`
	Age       int      `gorm:"default:0"`
	Tokens    []string `gorm:"serializer:json;type:text"`
	Avatar    []byte
}

func (UserModel) TableName() string {
	return "users"
}

func newUserModel(user *entities.User) *UserModel {
	return &UserModel{
		Id:        user.Id,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		Age:       user.Age,
		Tokens:    user.Tokens,
		Avatar:    user.Avatar,
	}
}

func (m *UserModel) toEntity() *entities.User {
	tokens := m.Tokens
	if tokens == nil {
		tokens = make([]string, 0)
	}
	return &entities.User{
		Id:        m.Id,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Age:       m.Age,
		Tokens:    tokens,
		Avatar:    m.Avatar,
	}
}
