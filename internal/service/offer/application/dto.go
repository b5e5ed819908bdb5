// internal/service/offer/application/dto.go
package application

import (
	"time"

	"foodsy/internal/service/offer/domain"
)

// SaveOfferRequest 管理端创建/更新优惠的请求体。
type SaveOfferRequest struct {
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Discount    int64      `json:"discount"` // paise
	Rule        string     `json:"rule,omitempty"`
	Active      bool       `json:"active"`
	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidTo     *time.Time `json:"validTo,omitempty"`
}

// OfferView 查询返回的优惠视图。
type OfferView struct {
	ID          int64      `json:"id"`
	Code        string     `json:"code"`
	Description string     `json:"description"`
	Discount    int64      `json:"discount"`
	Rule        string     `json:"rule,omitempty"`
	Active      bool       `json:"active"`
	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidTo     *time.Time `json:"validTo,omitempty"`
}

func (r *SaveOfferRequest) toDomain() *domain.Offer {
	offer := &domain.Offer{
		Code:          r.Code,
		Description:   r.Description,
		DiscountPaise: r.Discount,
		Rule:          r.Rule,
		Active:        r.Active,
	}
	if r.ValidFrom != nil {
		offer.ValidFrom = *r.ValidFrom
	}
	if r.ValidTo != nil {
		offer.ValidTo = *r.ValidTo
	}
	return offer
}

func toOfferView(o *domain.Offer) *OfferView {
	view := &OfferView{
		ID:          o.ID,
		Code:        o.Code,
		Description: o.Description,
		Discount:    o.DiscountPaise,
		Rule:        o.Rule,
		Active:      o.Active,
	}
	if !o.ValidFrom.IsZero() {
		from := o.ValidFrom
		view.ValidFrom = &from
	}
	if !o.ValidTo.IsZero() {
		to := o.ValidTo
		view.ValidTo = &to
	}
	return view
}
