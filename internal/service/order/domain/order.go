// internal/service/order/domain/order.go
package domain

import (
	"regexp"
	"time"

	"github.com/pkg/errors"
)

// 收货手机号必须是恰好 10 位数字
var mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

// Item 是订单中的一个条目（值对象）。
type Item struct {
	ProductID  string
	Name       string
	PricePaise int64
	Quantity   int
}

// Order 是订单聚合的根实体
type Order struct {
	ID            string // 形如 ORD-20260228-001
	UserID        string
	MobileNumber  string
	Items         []Item
	SubtotalPaise int64 // 条目小计，服务端重算，不信任客户端
	DiscountPaise int64
	OfferCode     string
	DistanceKm    int
	DeliveryFee   int64 // paise
	TotalPaise    int64 // subtotal - discount + deliveryFee
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateCheckout 校验下单入参。校验失败立即拒绝，不进入序号分配。
func ValidateCheckout(mobileNumber string, items []Item) error {
	if !mobileNumberPattern.MatchString(mobileNumber) {
		return errors.Wrap(ErrInvalidArgument, "mobile number must be exactly 10 numeric digits")
	}
	if len(items) == 0 {
		return errors.Wrap(ErrInvalidArgument, "cart is empty")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return errors.Wrap(ErrInvalidArgument, "item quantity must be at least 1")
		}
		if item.PricePaise < 0 {
			return errors.Wrap(ErrInvalidArgument, "item price must be non-negative")
		}
	}
	return nil
}

// Subtotal 按条目重算小计。
func Subtotal(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.PricePaise * int64(item.Quantity)
	}
	return total
}

// 工厂函数: NewOrder 创建一个已通过校验的订单实例，初始状态为 Confirmed。
func NewOrder(id, userID, mobileNumber string, items []Item, quote DeliveryQuote, discountPaise int64, offerCode string) (*Order, error) {
	if id == "" || userID == "" {
		return nil, errors.Wrap(ErrInvalidArgument, "order id and user id are required")
	}
	if err := ValidateCheckout(mobileNumber, items); err != nil {
		return nil, err
	}

	subtotal := Subtotal(items)
	if discountPaise < 0 || discountPaise > subtotal {
		return nil, errors.Wrap(ErrInvalidArgument, "discount out of range")
	}

	now := time.Now().UTC()
	return &Order{
		ID:            id,
		UserID:        userID,
		MobileNumber:  mobileNumber,
		Items:         items,
		SubtotalPaise: subtotal,
		DiscountPaise: discountPaise,
		OfferCode:     offerCode,
		DistanceKm:    quote.DistanceKm,
		DeliveryFee:   quote.FeePaise,
		TotalPaise:    subtotal - discountPaise + quote.FeePaise,
		Status:        StatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// TransitionTo 将订单推进到下一个状态，只允许向前流转。
func (o *Order) TransitionTo(next Status) error {
	if !next.IsValid() {
		return errors.Wrapf(ErrInvalidArgument, "unknown status %q", next)
	}
	if !o.Status.CanTransitionTo(next) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", o.Status, next)
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}
