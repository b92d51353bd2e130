package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"sellx/internal/model"
	"sellx/internal/repository"
)

// LoyaltyWorker credits loyalty points for completed sales with an attached
// customer: one point per accrualAmount of currency spent, rounded down.
// Accrual is best-effort and asynchronous — a failure here never touches the
// committed sale.
type LoyaltyWorker struct {
	customers     repository.CustomerRepository
	accrualAmount decimal.Decimal
}

func NewLoyaltyWorker(customers repository.CustomerRepository, accrualAmount decimal.Decimal) *LoyaltyWorker {
	return &LoyaltyWorker{customers: customers, accrualAmount: accrualAmount}
}

func (w *LoyaltyWorker) Handle(ctx context.Context, job SaleCompletedJob) {
	if job.CustomerID == nil || job.Status != model.SaleStatusCompleted {
		return
	}
	if w.accrualAmount.LessThanOrEqual(decimal.Zero) {
		return
	}

	customerID, err := uuid.Parse(*job.CustomerID)
	if err != nil {
		log.Error().Str("customer_id", *job.CustomerID).Msg("malformed customer id in sale_completed job")
		return
	}
	total, err := decimal.NewFromString(job.Total)
	if err != nil {
		log.Error().Str("total", job.Total).Msg("malformed total in sale_completed job")
		return
	}

	points := total.Div(w.accrualAmount).Floor().IntPart()
	if points <= 0 {
		return
	}
	if err := w.customers.AddPoints(ctx, customerID, points); err != nil {
		log.Warn().
			Err(err).
			Int64("sale_number", job.SaleNumber).
			Str("customer_id", customerID.String()).
			Msg("loyalty accrual failed")
		return
	}
	log.Info().
		Int64("sale_number", job.SaleNumber).
		Int64("points", points).
		Msg("loyalty points accrued")
}
