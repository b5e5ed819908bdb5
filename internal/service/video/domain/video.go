// internal/service/video/domain/video.go
package domain

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidVideo  = errors.New("invalid video")
	ErrVideoNotFound = errors.New("video not found")
)

// ShortVideo 是短视频元数据。视频文件本身存在外部对象存储，这里只存 URL。
type ShortVideo struct {
	ID           string
	Title        string
	URL          string
	ThumbnailURL string
	ShopID       int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (v *ShortVideo) Validate() error {
	if strings.TrimSpace(v.Title) == "" {
		return errors.Wrap(ErrInvalidVideo, "title is required")
	}
	if strings.TrimSpace(v.URL) == "" {
		return errors.Wrap(ErrInvalidVideo, "video url is required")
	}
	return nil
}

// VideoRepository 视频元数据仓储接口
type VideoRepository interface {
	Create(ctx context.Context, video *ShortVideo) error
	Update(ctx context.Context, video *ShortVideo) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*ShortVideo, error)
	ListAll(ctx context.Context) ([]*ShortVideo, error)
}
