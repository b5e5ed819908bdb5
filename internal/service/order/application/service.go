// internal/service/order/application/service.go
package application

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"foodsy/internal/pkg/geo"
	"foodsy/internal/pkg/logger"
	"foodsy/internal/pkg/sequence"
	"foodsy/internal/service/order/domain"
	"foodsy/internal/service/order/domain/port"
)

const orderEntityType = "orders"

var (
	ordersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodsy_orders_placed_total",
		Help: "Orders successfully placed.",
	})
	orderPlacementFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodsy_order_placement_failures_total",
		Help: "Order placements aborted, by reason.",
	}, []string{"reason"})
)

// OrderApplicationService 负责下单和订单生命周期的业务编排。
type OrderApplicationService struct {
	orderRepo domain.OrderRepository
	allocator sequence.Allocator
	notifier  port.StatusNotifier
	offers    port.OfferService // 可以为 nil（优惠功能关闭时）
	tracer    trace.Tracer
}

func NewOrderApplicationService(orderRepo domain.OrderRepository, allocator sequence.Allocator, notifier port.StatusNotifier, offers port.OfferService, tracer trace.Tracer) *OrderApplicationService {
	return &OrderApplicationService{
		orderRepo: orderRepo,
		allocator: allocator,
		notifier:  notifier,
		offers:    offers,
		tracer:    tracer,
	}
}

// PlaceOrder 是下单用例：校验 -> 报价 -> 优惠 -> 分配序号 -> 落库 -> 通知。
// 序号分配失败会中止整个流程，绝不退化为随机订单号。
func (s *OrderApplicationService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "order.PlaceOrder")
	defer span.End()

	items := req.toDomainItems()

	// 1. 校验类失败直接拒绝，不占用序号
	if err := domain.ValidateCheckout(req.MobileNumber, items); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout validation failed")
		orderPlacementFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	// 2. 配送报价：两组坐标都有才算配送，否则按自提（0 公里 0 费用）
	quote := domain.PickupQuote()
	if req.Shop != nil && req.Dropoff != nil {
		var err error
		quote, err = domain.QuoteDelivery(
			geo.LatLng{Lat: req.Shop.Latitude, Lng: req.Shop.Longitude},
			geo.LatLng{Lat: req.Dropoff.Latitude, Lng: req.Dropoff.Longitude},
		)
		if err != nil {
			span.RecordError(err)
			orderPlacementFailures.WithLabelValues("validation").Inc()
			return nil, err
		}
	}
	span.SetAttributes(
		attribute.Int("delivery.distance_km", quote.DistanceKm),
		attribute.Int64("delivery.fee_paise", quote.FeePaise),
	)

	// 3. 询问优惠（可选，失败只降级不阻断下单）
	subtotal := domain.Subtotal(items)
	var discount int64
	var offerCode string
	if s.offers != nil {
		applied, err := s.offers.BestFor(ctx, subtotal, len(items))
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).Msg("offer lookup failed, placing order without discount")
			span.AddEvent("offer lookup failed")
		} else if applied != nil {
			discount = applied.DiscountPaise
			offerCode = applied.Code
			span.SetAttributes(attribute.String("offer.code", offerCode))
		}
	}

	// 4. 序号与订单号。分配器内部已做有限重试，这里失败就中止。
	now := time.Now().UTC()
	seq, err := s.allocator.Next(ctx, orderEntityType, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "sequence allocation failed")
		orderPlacementFailures.WithLabelValues("allocation").Inc()
		return nil, err
	}
	orderID := sequence.Format(sequence.OrderPrefix, now, seq)

	orderEntity, err := domain.NewOrder(orderID, req.UserID, req.MobileNumber, items, quote, discount, offerCode)
	if err != nil {
		span.RecordError(err)
		orderPlacementFailures.WithLabelValues("validation").Inc()
		return nil, err
	}

	// 5. 落库
	if err := s.orderRepo.Create(ctx, orderEntity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist order")
		orderPlacementFailures.WithLabelValues("persistence").Inc()
		return nil, err
	}

	// 6. 通知下游。投递失败不影响已落库的订单。
	s.notifyStatus(ctx, orderEntity)

	ordersPlacedTotal.Inc()
	logger.Ctx(ctx).Info().
		Str("order_id", orderEntity.ID).
		Str("user_id", orderEntity.UserID).
		Int64("total_paise", orderEntity.TotalPaise).
		Msg("order placed")

	return &PlaceOrderResponse{
		OrderID:     orderEntity.ID,
		Status:      orderEntity.Status,
		Subtotal:    orderEntity.SubtotalPaise,
		Discount:    orderEntity.DiscountPaise,
		OfferCode:   orderEntity.OfferCode,
		DistanceKm:  orderEntity.DistanceKm,
		DeliveryFee: orderEntity.DeliveryFee,
		TotalAmount: orderEntity.TotalPaise,
		Message:     "Order created successfully!",
	}, nil
}

// UpdateStatus 管理端推进订单状态。
func (s *OrderApplicationService) UpdateStatus(ctx context.Context, orderID string, next domain.Status) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.String("order.next_status", string(next)),
	)

	orderEntity, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := orderEntity.TransitionTo(next); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, orderEntity.Status); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to persist status")
		return nil, err
	}

	s.notifyStatus(ctx, orderEntity)
	logger.Ctx(ctx).Info().Str("order_id", orderID).Str("status", string(next)).Msg("order status updated")
	return toOrderView(orderEntity), nil
}

// GetOrder 订单跟踪查询。
func (s *OrderApplicationService) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.GetOrder")
	defer span.End()

	orderEntity, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return toOrderView(orderEntity), nil
}

// ListOrders 管理端订单列表，按创建时间倒序。
func (s *OrderApplicationService) ListOrders(ctx context.Context) ([]*OrderView, error) {
	ctx, span := s.tracer.Start(ctx, "order.ListOrders")
	defer span.End()

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views, nil
}

func (s *OrderApplicationService) notifyStatus(ctx context.Context, o *domain.Order) {
	event := &domain.OrderStatusChanged{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		TotalPaise: o.TotalPaise,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.notifier.NotifyStatusChanged(ctx, event); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("order_id", o.ID).Msg("failed to publish status event")
	}
}
