package service

import (
	"context"

	"github.com/shopspring/decimal"

	"sellx/internal/dto"
	"sellx/internal/repository"
)

type SalesService interface {
	List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type salesService struct {
	repo repository.SaleRepository
}

func NewSalesService(repo repository.SaleRepository) SalesService {
	return &salesService{repo: repo}
}

// List returns a paginated list of sales, filtered by date and status.
// Default filter: today's completed sales.
func (s *salesService) List(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = "completed"
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i], decimal.Zero))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
