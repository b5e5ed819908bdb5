// internal/service/offer/application/service.go
package application

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"foodsy/internal/pkg/logger"
	"foodsy/internal/service/offer/domain"
)

// OfferService 定义了优惠服务提供的所有业务用例
type OfferService struct {
	offerRepo domain.OfferRepository
	engine    domain.RuleEngine
	tracer    trace.Tracer
}

func NewOfferService(repo domain.OfferRepository, engine domain.RuleEngine, tracer trace.Tracer) *OfferService {
	return &OfferService{
		offerRepo: repo,
		engine:    engine,
		tracer:    tracer,
	}
}

// CreateOffer 新建优惠。规则表达式在这里编译校验，坏规则不落库。
func (s *OfferService) CreateOffer(ctx context.Context, req *SaveOfferRequest) (*OfferView, error) {
	ctx, span := s.tracer.Start(ctx, "offer.CreateOffer")
	defer span.End()

	offer := req.toDomain()
	if err := offer.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.engine.Compile(offer.Rule); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.offerRepo.Create(ctx, offer); err != nil {
		span.RecordError(err)
		return nil, err
	}
	logger.Ctx(ctx).Info().Str("code", offer.Code).Msg("offer created")
	return toOfferView(offer), nil
}

// UpdateOffer 更新优惠内容，规则同样先编译。
func (s *OfferService) UpdateOffer(ctx context.Context, id int64, req *SaveOfferRequest) (*OfferView, error) {
	ctx, span := s.tracer.Start(ctx, "offer.UpdateOffer")
	defer span.End()

	existing, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated := req.toDomain()
	updated.ID = existing.ID
	updated.Code = existing.Code // code 不可变
	if err := updated.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.engine.Compile(updated.Rule); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.offerRepo.Update(ctx, updated); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toOfferView(updated), nil
}

// DeleteOffer 删除优惠。
func (s *OfferService) DeleteOffer(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "offer.DeleteOffer")
	defer span.End()
	return s.offerRepo.Delete(ctx, id)
}

// ListOffers 管理端优惠列表。
func (s *OfferService) ListOffers(ctx context.Context) ([]*OfferView, error) {
	ctx, span := s.tracer.Start(ctx, "offer.ListOffers")
	defer span.End()

	offers, err := s.offerRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	views := make([]*OfferView, 0, len(offers))
	for _, o := range offers {
		views = append(views, toOfferView(o))
	}
	return views, nil
}

// BestFor 返回当前小计/件数下可用的最大优惠，没有则返回 nil。
// 单条规则评估失败只跳过那条优惠，不影响其余。
func (s *OfferService) BestFor(ctx context.Context, subtotalPaise int64, itemCount int) (*domain.Offer, error) {
	ctx, span := s.tracer.Start(ctx, "offer.BestFor")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("order.subtotal_paise", subtotalPaise),
		attribute.Int("order.item_count", itemCount),
	)

	live, err := s.offerRepo.ListLive(ctx, time.Now().UTC())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	input := domain.EligibilityInput{SubtotalPaise: subtotalPaise, ItemCount: itemCount}
	var best *domain.Offer
	for _, offer := range live {
		ok, err := s.engine.Evaluate(offer.Rule, input)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("code", offer.Code).Msg("skipping offer with failing rule")
			continue
		}
		if !ok {
			continue
		}
		// 优惠不能超过小计
		if offer.DiscountPaise > subtotalPaise {
			continue
		}
		if best == nil || offer.DiscountPaise > best.DiscountPaise {
			best = offer
		}
	}
	if best != nil {
		span.SetAttributes(attribute.String("offer.code", best.Code))
	}
	return best, nil
}
