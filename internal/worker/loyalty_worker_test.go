package worker

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"sellx/internal/model"
	"sellx/internal/repository"
)

type recordingCustomerRepo struct {
	credited map[uuid.UUID]int64
}

var _ repository.CustomerRepository = (*recordingCustomerRepo)(nil)

func (r *recordingCustomerRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.Customer, error) {
	return nil, nil
}

func (r *recordingCustomerRepo) AddPoints(_ context.Context, id uuid.UUID, delta int64) error {
	if r.credited == nil {
		r.credited = map[uuid.UUID]int64{}
	}
	r.credited[id] += delta
	return nil
}

func TestLoyaltyWorker_AccruesFlooredPoints(t *testing.T) {
	repo := &recordingCustomerRepo{}
	w := NewLoyaltyWorker(repo, decimal.NewFromInt(100))
	customerID := uuid.New()
	cid := customerID.String()

	// 250 / 100 = 2.5 → 2 points.
	w.Handle(context.Background(), SaleCompletedJob{
		SaleNumber: 7,
		CustomerID: &cid,
		Total:      "250.00",
		Status:     model.SaleStatusCompleted,
	})

	assert.Equal(t, int64(2), repo.credited[customerID])
}

func TestLoyaltyWorker_SkipsNonQualifyingJobs(t *testing.T) {
	repo := &recordingCustomerRepo{}
	w := NewLoyaltyWorker(repo, decimal.NewFromInt(100))
	cid := uuid.New().String()

	// Anonymous sale.
	w.Handle(context.Background(), SaleCompletedJob{Total: "500.00", Status: model.SaleStatusCompleted})
	// Future order: points accrue on fulfillment, not on the advance.
	w.Handle(context.Background(), SaleCompletedJob{CustomerID: &cid, Total: "500.00", Status: model.SaleStatusFuture})
	// Below one accrual unit.
	w.Handle(context.Background(), SaleCompletedJob{CustomerID: &cid, Total: "99.99", Status: model.SaleStatusCompleted})
	// Garbage total.
	w.Handle(context.Background(), SaleCompletedJob{CustomerID: &cid, Total: "abc", Status: model.SaleStatusCompleted})

	assert.Empty(t, repo.credited)
}
