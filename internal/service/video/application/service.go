// internal/service/video/application/service.go
package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foodsy/internal/service/video/domain"
)

// SaveVideoRequest 管理端创建/更新视频的请求体
type SaveVideoRequest struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	ShopID       int64  `json:"shopId"`
}

// VideoView 对外返回的视频视图
type VideoView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	ShopID       int64     `json:"shopId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toVideoView(v *domain.ShortVideo) *VideoView {
	return &VideoView{
		ID:           v.ID,
		Title:        v.Title,
		URL:          v.URL,
		ThumbnailURL: v.ThumbnailURL,
		ShopID:       v.ShopID,
		CreatedAt:    v.CreatedAt,
	}
}

// VideoService 短视频用例层
type VideoService struct {
	videoRepo domain.VideoRepository
	tracer    trace.Tracer
}

func NewVideoService(videoRepo domain.VideoRepository) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		tracer:    otel.Tracer("video-application-service"),
	}
}

func (s *VideoService) CreateVideo(ctx context.Context, req *SaveVideoRequest) (*VideoView, error) {
	ctx, span := s.tracer.Start(ctx, "VideoService.CreateVideo")
	defer span.End()

	now := time.Now()
	video := &domain.ShortVideo{
		ID:           uuid.New().String(),
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		ShopID:       req.ShopID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := video.Validate(); err != nil {
		return nil, err
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("video.id", video.ID))
	return toVideoView(video), nil
}

func (s *VideoService) UpdateVideo(ctx context.Context, id string, req *SaveVideoRequest) (*VideoView, error) {
	ctx, span := s.tracer.Start(ctx, "VideoService.UpdateVideo")
	defer span.End()

	video, err := s.videoRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	video.Title = req.Title
	video.URL = req.URL
	video.ThumbnailURL = req.ThumbnailURL
	video.ShopID = req.ShopID
	video.UpdatedAt = time.Now()
	if err := video.Validate(); err != nil {
		return nil, err
	}
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return toVideoView(video), nil
}

func (s *VideoService) DeleteVideo(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "VideoService.DeleteVideo")
	defer span.End()

	return s.videoRepo.Delete(ctx, id)
}

// ListVideos 按创建时间倒序返回全部视频
func (s *VideoService) ListVideos(ctx context.Context) ([]*VideoView, error) {
	ctx, span := s.tracer.Start(ctx, "VideoService.ListVideos")
	defer span.End()

	videos, err := s.videoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, toVideoView(v))
	}
	return views, nil
}
