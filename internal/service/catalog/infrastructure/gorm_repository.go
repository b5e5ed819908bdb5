// internal/service/catalog/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"foodsy/internal/service/catalog/domain"
)

// ProductModel 对应数据库中的 products 表
type ProductModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:512"`
	Category    string `gorm:"size:64;index"`
	PricePaise  int64  `gorm:"not null"`
	ImageURL    string `gorm:"size:512"`
	ShopID      int64  `gorm:"index"`
	Available   bool   `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定 GORM 应该使用的表名
func (ProductModel) TableName() string {
	return "products"
}

// ShopModel 对应数据库中的 shops 表
type ShopModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"size:128;not null"`
	Type      domain.ShopType `gorm:"size:16"`
	Address   string          `gorm:"size:255"`
	City      string          `gorm:"size:64"`
	Latitude  float64
	Longitude float64
	CreatedAt time.Time
}

// TableName 指定 GORM 应该使用的表名
func (ShopModel) TableName() string {
	return "shops"
}

func toDomainProduct(m *ProductModel) *domain.Product {
	return &domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		PricePaise:  m.PricePaise,
		ImageURL:    m.ImageURL,
		ShopID:      m.ShopID,
		Available:   m.Available,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromDomainProduct(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PricePaise:  p.PricePaise,
		ImageURL:    p.ImageURL,
		ShopID:      p.ShopID,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// GormProductRepository 是 ProductRepository 的 GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := r.db.WithContext(ctx).Create(fromDomainProduct(product)).Error; err != nil {
		return pkgerrors.Wrapf(err, "create product %s", product.ID)
	}
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	result := r.db.WithContext(ctx).Model(&ProductModel{}).Where("id = ?", product.ID).Updates(map[string]interface{}{
		"name":        product.Name,
		"description": product.Description,
		"category":    product.Category,
		"price_paise": product.PricePaise,
		"image_url":   product.ImageURL,
		"shop_id":     product.ShopID,
		"available":   product.Available,
	})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "update product %s", product.ID)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		return pkgerrors.Wrapf(result.Error, "delete product %s", id)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, pkgerrors.Wrapf(err, "find product %s", id)
	}
	return toDomainProduct(&model), nil
}

func (r *GormProductRepository) List(ctx context.Context, category string) ([]*domain.Product, error) {
	var models []ProductModel
	query := r.db.WithContext(ctx).Where("available = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list products")
	}
	products := make([]*domain.Product, 0, len(models))
	for i := range models {
		products = append(products, toDomainProduct(&models[i]))
	}
	return products, nil
}

// GormShopRepository 是 ShopRepository 的 GORM 实现
type GormShopRepository struct {
	db *gorm.DB
}

func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

func (r *GormShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	model := &ShopModel{
		Name:      shop.Name,
		Type:      shop.Type,
		Address:   shop.Address,
		City:      shop.City,
		Latitude:  shop.Latitude,
		Longitude: shop.Longitude,
		CreatedAt: shop.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return pkgerrors.Wrapf(err, "create shop %s", shop.Name)
	}
	shop.ID = model.ID
	return nil
}

func (r *GormShopRepository) FindByID(ctx context.Context, id int64) (*domain.Shop, error) {
	var model ShopModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShopNotFound
		}
		return nil, pkgerrors.Wrapf(err, "find shop %d", id)
	}
	return toDomainShop(&model), nil
}

func (r *GormShopRepository) ListAll(ctx context.Context) ([]*domain.Shop, error) {
	var models []ShopModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "list shops")
	}
	shops := make([]*domain.Shop, 0, len(models))
	for i := range models {
		shops = append(shops, toDomainShop(&models[i]))
	}
	return shops, nil
}

func toDomainShop(m *ShopModel) *domain.Shop {
	return &domain.Shop{
		ID:        m.ID,
		Name:      m.Name,
		Type:      m.Type,
		Address:   m.Address,
		City:      m.City,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		CreatedAt: m.CreatedAt,
	}
}
