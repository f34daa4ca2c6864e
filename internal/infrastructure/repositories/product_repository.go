package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aswin1661/looms-petals/domain"
)

// ProductRepositoryImpl implements domain.ProductRepository using GORM
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// DBProduct represents the database model for Product
type DBProduct struct {
	ID            uint   `gorm:"primaryKey"`
	Name          string `gorm:"size:255"`
	Description   string
	Price         float64
	DiscountPrice *float64
	Category      string `gorm:"index;size:64"`
	Subcategory   string `gorm:"size:64"`
	Brand         string `gorm:"index;size:64"`
	ImageURL      string
	Images        []string `gorm:"serializer:json"`
	Stock         int
	Sizes         []string `gorm:"serializer:json"`
	Colors        []string `gorm:"serializer:json"`
	Status        string   `gorm:"size:32"`
	Type          string   `gorm:"size:32"`
	IsFeatured    bool     `gorm:"index"`
	IsActive      bool     `gorm:"index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBProduct) TableName() string { return "products" }

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository
func (r *ProductRepositoryImpl) Create(ctx context.Context, p *domain.Product) error {
	row := r.domainToDB(p)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	p.ID = row.ID
	p.CreatedAt = row.CreatedAt
	p.UpdatedAt = row.UpdatedAt
	return nil
}

// Update implements domain.ProductRepository
func (r *ProductRepositoryImpl) Update(ctx context.Context, p *domain.Product) error {
	row := r.domainToDB(p)
	res := r.db.WithContext(ctx).Model(&DBProduct{}).Where("id = ?", p.ID).
		Select("*").Omit("id", "created_at").Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// FindByID implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var row DBProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&row), nil
}

// List implements domain.ProductRepository. Results come back newest first.
func (r *ProductRepositoryImpl) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	q := r.db.WithContext(ctx).Model(&DBProduct{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var rows []DBProduct
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, r.dbToDomain(&rows[i]))
	}
	return products, nil
}

// Deactivate implements domain.ProductRepository
func (r *ProductRepositoryImpl) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&DBProduct{}).Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryImpl) domainToDB(p *domain.Product) *DBProduct {
	return &DBProduct{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Brand:         p.Brand,
		ImageURL:      p.ImageURL,
		Images:        p.Images,
		Stock:         p.Stock,
		Sizes:         p.Sizes,
		Colors:        p.Colors,
		Status:        p.Status,
		Type:          p.Type,
		IsFeatured:    p.IsFeatured,
		IsActive:      p.IsActive,
	}
}

func (r *ProductRepositoryImpl) dbToDomain(row *DBProduct) *domain.Product {
	return &domain.Product{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Price:         row.Price,
		DiscountPrice: row.DiscountPrice,
		Category:      row.Category,
		Subcategory:   row.Subcategory,
		Brand:         row.Brand,
		ImageURL:      row.ImageURL,
		Images:        row.Images,
		Stock:         row.Stock,
		Sizes:         row.Sizes,
		Colors:        row.Colors,
		Status:        row.Status,
		Type:          row.Type,
		IsFeatured:    row.IsFeatured,
		IsActive:      row.IsActive,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
