package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sellx/internal/model"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	// FindForSale resolves a scanner lookup key: exact product code, then
	// exact barcode, then — only when manual search is on — a
	// case-insensitive name substring.
	FindForSale(ctx context.Context, key string, manualSearch bool) (*model.Product, error)
	// AdjustStock applies a signed delta to a product's stock level.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("barcode = ? AND active", barcode).First(&p).Error
	return &p, err
}

func (r *productRepo) FindForSale(ctx context.Context, key string, manualSearch bool) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("(code = ? OR barcode = ?) AND active", key, key).
		First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !manualSearch {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Where("name ILIKE ? AND active", "%"+key+"%").
		Order("name").
		First(&p).Error
	return &p, err
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error
}
