// internal/service/user/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"foodsy/internal/service/user/domain"
)

// UserModel 对应数据库中的 users 表
type UserModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Username  string `gorm:"size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:128"`
	Address   string `gorm:"size:255"`
	City      string `gorm:"size:64"`
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository 是 UserRepository 的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := &UserModel{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Address:   user.Address,
		City:      user.City,
		Latitude:  user.Latitude,
		Longitude: user.Longitude,
		CreatedAt: user.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// email 上有唯一索引，重复注册映射为领域错误
		if pkgerrors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
			return domain.ErrEmailTaken
		}
		return pkgerrors.Wrapf(err, "create user %s", user.ID)
	}
	return nil
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, pkgerrors.Wrapf(err, "find user %s", id)
	}
	return &domain.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Address:   model.Address,
		City:      model.City,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
	}, nil
}
