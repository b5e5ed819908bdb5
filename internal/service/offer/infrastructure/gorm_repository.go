// internal/service/offer/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"foodsy/internal/service/offer/domain"
)

// OfferModel 对应数据库中的 offers 表。
// 有效期两端可空：领域层的零值时间在这里落成 NULL，ListLive 的 IS NULL 分支才接得住。
type OfferModel struct {
	gorm.Model
	Code          string `gorm:"uniqueIndex;size:32"`
	Description   string `gorm:"size:255"`
	DiscountPaise int64  `gorm:"not null"`
	Rule          string `gorm:"type:text"`
	Active        bool   `gorm:"index"`
	ValidFrom     *time.Time
	ValidTo       *time.Time
}

// TableName 指定 GORM 应该使用的表名
func (OfferModel) TableName() string {
	return "offers"
}

func toDomainOffer(model *OfferModel) *domain.Offer {
	offer := &domain.Offer{
		ID:            int64(model.ID),
		Code:          model.Code,
		Description:   model.Description,
		DiscountPaise: model.DiscountPaise,
		Rule:          model.Rule,
		Active:        model.Active,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
	if model.ValidFrom != nil {
		offer.ValidFrom = *model.ValidFrom
	}
	if model.ValidTo != nil {
		offer.ValidTo = *model.ValidTo
	}
	return offer
}

func fromDomainOffer(dmn *domain.Offer) *OfferModel {
	return &OfferModel{
		Model:         gorm.Model{ID: uint(dmn.ID)},
		Code:          dmn.Code,
		Description:   dmn.Description,
		DiscountPaise: dmn.DiscountPaise,
		Rule:          dmn.Rule,
		Active:        dmn.Active,
		ValidFrom:     nullableTime(dmn.ValidFrom),
		ValidTo:       nullableTime(dmn.ValidTo),
	}
}

// nullableTime 零值时间表示不设界，存为 NULL。
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// GormOfferRepository 是 OfferRepository 的 GORM 实现
type GormOfferRepository struct {
	db *gorm.DB
}

func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

func (r *GormOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	model := fromDomainOffer(offer)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return pkgerrors.Wrapf(err, "create offer %s", offer.Code)
	}
	offer.ID = int64(model.ID)
	return nil
}

func (r *GormOfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	result := r.db.WithContext(ctx).Model(&OfferModel{}).Where("id = ?", offer.ID).Updates(map[string]interface{}{
		"description":    offer.Description,
		"discount_paise": offer.DiscountPaise,
		"rule":           offer.Rule,
		"active":         offer.Active,
		"valid_from":     nullableTime(offer.ValidFrom),
		"valid_to":       nullableTime(offer.ValidTo),
	})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "update offer %d", offer.ID)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *GormOfferRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OfferModel{}, id)
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "delete offer %d", id)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

func (r *GormOfferRepository) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var model OfferModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, pkgerrors.Wrapf(err, "find offer %d", id)
	}
	return toDomainOffer(&model), nil
}

func (r *GormOfferRepository) ListAll(ctx context.Context) ([]*domain.Offer, error) {
	var models []OfferModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list offers")
	}
	return toDomainOffers(models), nil
}

// ListLive 有效期判断交给 SQL，零值时间按“不设界”处理
func (r *GormOfferRepository) ListLive(ctx context.Context, now time.Time) ([]*domain.Offer, error) {
	var models []OfferModel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("(valid_from IS NULL OR valid_from <= ?)", now).
		Where("(valid_to IS NULL OR valid_to >= ?)", now).
		Find(&models).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list live offers")
	}
	return toDomainOffers(models), nil
}

func toDomainOffers(models []OfferModel) []*domain.Offer {
	offers := make([]*domain.Offer, 0, len(models))
	for i := range models {
		offers = append(offers, toDomainOffer(&models[i]))
	}
	return offers
}
