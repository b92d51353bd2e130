package repository

import (
	"context"

	"gorm.io/gorm"

	"sellx/internal/dto"
	"sellx/internal/model"
)

type SaleRepository interface {
	// Create inserts the full sale aggregate. A sale-number collision with a
	// concurrent register surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, s *model.Sale) error
	// MaxSaleNumber reads the current maximum sequence number (0 when no
	// sales exist). Deliberately not transactional with Create — the
	// finalization protocol retries on conflict instead.
	MaxSaleNumber(ctx context.Context) (int64, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) MaxSaleNumber(ctx context.Context) (int64, error) {
	var num int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(sale_number), 0) FROM sales").
		Scan(&num).Error
	return num, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").Preload("Payments").
		Order("sale_number DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
