// internal/service/video/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"foodsy/internal/service/video/domain"
)

// VideoModel 短视频元数据持久化对象
type VideoModel struct {
	ID           string `gorm:"primaryKey;size:64"`
	Title        string `gorm:"size:255;not null"`
	URL          string `gorm:"size:512;not null"`
	ThumbnailURL string `gorm:"size:512"`
	ShopID       int64  `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (VideoModel) TableName() string {
	return "short_videos"
}

func toDomainVideo(m *VideoModel) *domain.ShortVideo {
	return &domain.ShortVideo{
		ID:           m.ID,
		Title:        m.Title,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
		ShopID:       m.ShopID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainVideo(v *domain.ShortVideo) *VideoModel {
	return &VideoModel{
		ID:           v.ID,
		Title:        v.Title,
		URL:          v.URL,
		ThumbnailURL: v.ThumbnailURL,
		ShopID:       v.ShopID,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// GormVideoRepository 基于 gorm 的视频仓储实现
type GormVideoRepository struct {
	db *gorm.DB
}

func NewGormVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

func (r *GormVideoRepository) Create(ctx context.Context, video *domain.ShortVideo) error {
	if err := r.db.WithContext(ctx).Create(fromDomainVideo(video)).Error; err != nil {
		return pkgerrors.Wrap(err, "failed to create video")
	}
	return nil
}

func (r *GormVideoRepository) Update(ctx context.Context, video *domain.ShortVideo) error {
	result := r.db.WithContext(ctx).Model(&VideoModel{}).
		Where("id = ?", video.ID).
		Updates(fromDomainVideo(video))
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to update video")
	}
	if result.RowsAffected == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *GormVideoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&VideoModel{})
	if result.Error != nil {
		return pkgerrors.Wrap(result.Error, "failed to delete video")
	}
	if result.RowsAffected == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *GormVideoRepository) FindByID(ctx context.Context, id string) (*domain.ShortVideo, error) {
	var model VideoModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, pkgerrors.Wrap(err, "failed to find video")
	}
	return toDomainVideo(&model), nil
}

func (r *GormVideoRepository) ListAll(ctx context.Context) ([]*domain.ShortVideo, error) {
	var models []VideoModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "failed to list videos")
	}
	videos := make([]*domain.ShortVideo, 0, len(models))
	for i := range models {
		videos = append(videos, toDomainVideo(&models[i]))
	}
	return videos, nil
}
