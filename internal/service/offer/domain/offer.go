// internal/service/offer/domain/offer.go
package domain

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrInvalidOffer  = errors.New("invalid offer")
	// ErrInvalidRule 规则表达式编译失败。保存时就拦下来，绝不让坏规则活到结算时。
	ErrInvalidRule = errors.New("invalid eligibility rule")
)

// Offer 是一条促销优惠。
// Rule 是一个 CEL 表达式，变量为 subtotal（paise，int）和 itemCount（int），
// 例如 "subtotal >= 50000 && itemCount >= 2"。为空表示无条件可用。
type Offer struct {
	ID            int64
	Code          string
	Description   string
	DiscountPaise int64
	Rule          string
	Active        bool
	ValidFrom     time.Time
	ValidTo       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate 检查字段有效性（不含规则编译，规则由 RuleEngine 校验）。
func (o *Offer) Validate() error {
	if o.Code == "" {
		return errors.Wrap(ErrInvalidOffer, "code is required")
	}
	if o.DiscountPaise <= 0 {
		return errors.Wrap(ErrInvalidOffer, "discount must be positive")
	}
	if !o.ValidTo.IsZero() && !o.ValidFrom.IsZero() && o.ValidTo.Before(o.ValidFrom) {
		return errors.Wrap(ErrInvalidOffer, "validity window is inverted")
	}
	return nil
}

// IsLive 判断优惠当前是否生效（启用且在有效期内；零值时间表示不设界）。
func (o *Offer) IsLive(now time.Time) bool {
	if !o.Active {
		return false
	}
	if !o.ValidFrom.IsZero() && now.Before(o.ValidFrom) {
		return false
	}
	if !o.ValidTo.IsZero() && now.After(o.ValidTo) {
		return false
	}
	return true
}
