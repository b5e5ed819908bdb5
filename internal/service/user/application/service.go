// internal/service/user/application/service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"foodsy/internal/pkg/logger"
	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/user/domain"
)

const userEntityType = "users"

// RegisterUserRequest 注册请求体。
type RegisterUserRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// UserView 查询/注册返回的用户视图。
type UserView struct {
	UserID    string   `json:"userId"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

// UserService 负责用户注册与查询。
type UserService struct {
	userRepo  domain.UserRepository
	allocator sequence.Allocator
	tracer    trace.Tracer
}

func NewUserService(repo domain.UserRepository, allocator sequence.Allocator, tracer trace.Tracer) *UserService {
	return &UserService{userRepo: repo, allocator: allocator, tracer: tracer}
}

// Register 注册用户：校验 -> 分配当日序号 -> 生成用户号 -> 落库。
// 和订单号走同一个分配器，entityType 不同所以互不竞争。
func (s *UserService) Register(ctx context.Context, req *RegisterUserRequest) (*UserView, error) {
	ctx, span := s.tracer.Start(ctx, "user.Register")
	defer span.End()

	now := time.Now().UTC()
	user := &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		Address:   req.Address,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: now,
	}
	if err := user.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	seq, err := s.allocator.Next(ctx, userEntityType, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sequence allocation failed")
		return nil, err
	}
	user.ID = sequence.Format(sequence.PrefixFromName(user.Username), now, seq)
	span.SetAttributes(attribute.String("user.id", user.ID))

	if err := s.userRepo.Create(ctx, user); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().Str("user_id", user.ID).Msg("user registered")
	return toUserView(user), nil
}

// Get 用户资料查询。
func (s *UserService) Get(ctx context.Context, id string) (*UserView, error) {
	ctx, span := s.tracer.Start(ctx, "user.Get")
	defer span.End()

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toUserView(user), nil
}

func toUserView(u *domain.User) *UserView {
	return &UserView{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Address:   u.Address,
		City:      u.City,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
