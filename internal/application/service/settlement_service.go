package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/pkg/apperror"
	"github.com/kayatek/servis-api/pkg/numbering"
	"github.com/kayatek/servis-api/pkg/pricing"
)

// Salesperson commission rate applied once when a sale completes.
var commissionRate = decimal.NewFromFloat(0.015)

// SettlementService handles quote approval, sale creation, payment
// application and commission accrual.
type SettlementService struct {
	quoteRepo      repository.QuoteRepository
	saleRepo       repository.SaleRepository
	paymentRepo    repository.PaymentRepository
	commissionRepo repository.CommissionRepository
	txManager      repository.TransactionManager
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	quoteRepo repository.QuoteRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	commissionRepo repository.CommissionRepository,
	txManager repository.TransactionManager,
) *SettlementService {
	return &SettlementService{
		quoteRepo:      quoteRepo,
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		commissionRepo: commissionRepo,
		txManager:      txManager,
	}
}

// DueDateFromTerm derives a due date from a free-text payment term. The
// first integer found in the term is read as a day count ("30 gün vade"
// gives date+30); terms without a number, like "Peşin", fall due on the
// sale date itself.
func DueDateFromTerm(term string, date time.Time) time.Time {
	for _, field := range strings.Fields(term) {
		if days, err := strconv.Atoi(field); err == nil && days >= 0 {
			return date.AddDate(0, 0, days)
		}
	}
	return date
}

// QuoteGrandTotal computes the VAT-inclusive amount a quote settles for.
func QuoteGrandTotal(quote *entity.Quote) decimal.Decimal {
	var subtotal decimal.Decimal
	if quote.OverrideTotal != nil {
		discount := decimal.Zero
		if quote.OverrideDiscountPct != nil {
			discount = *quote.OverrideDiscountPct
		}
		subtotal = pricing.OverridePayable(*quote.OverrideTotal, discount)
	} else {
		totals := make([]decimal.Decimal, 0, len(quote.Lines))
		for _, l := range quote.Lines {
			totals = append(totals, pricing.LineTotal(l.Quantity, l.ListPrice, l.DiscountPct))
		}
		subtotal = pricing.Subtotal(totals)
	}
	return pricing.ComputeTotals(subtotal).GrandTotal
}

// ApproveQuote converts a sent quote into a binding sale. The quote must be
// in Sent status. The sale number count and the insert run in one
// transaction, as does the quote status flip, so approval is all-or-nothing.
func (s *SettlementService) ApproveQuote(ctx context.Context, quoteID uuid.UUID) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		quote, err := s.quoteRepo.GetWithLines(txCtx, quoteID)
		if err != nil {
			return err
		}
		if quote == nil {
			return apperror.NewNotFoundError("Quote")
		}
		if !quote.Status.CanApprove() {
			return apperror.NewInvalidTransitionError(
				fmt.Sprintf("Quote in status %s cannot be approved", quote.Status))
		}

		now := time.Now()
		count, err := s.saleRepo.CountByDay(txCtx, now)
		if err != nil {
			return err
		}

		sale = &entity.Sale{
			UserID:       quote.UserID,
			Number:       numbering.SaleNumber(numbering.SalePrefix(quote.CustomerName), now, int(count)+1),
			CustomerName: quote.CustomerName,
			Currency:     quote.Currency,
			Date:         now,
			DueDate:      DueDateFromTerm(quote.PaymentTerm, now),
			Amount:       QuoteGrandTotal(quote),
			PaidAmount:   decimal.Zero,
		}
		if err := s.saleRepo.Create(txCtx, sale); err != nil {
			return err
		}

		quote.Status = enum.QuoteStatusApproved
		quote.ApprovedAt = &now
		quote.SaleID = &sale.ID
		return s.quoteRepo.Update(txCtx, quote)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ApplyPaymentInput represents the input for applying a payment
type ApplyPaymentInput struct {
	Amount decimal.Decimal
	PaidAt time.Time
}

// ApplyPayment records a payment against a sale and accrues the salesperson
// commission the first time the paid total covers the sale amount. The sale
// row is locked for the duration of the transaction so concurrent payments
// cannot both observe an incomplete sale; the unique index on the commission
// table backstops the same guarantee.
func (s *SettlementService) ApplyPayment(ctx context.Context, saleID uuid.UUID, input *ApplyPaymentInput) (*entity.Sale, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var sale *entity.Sale
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		sale, err = s.saleRepo.GetByIDForUpdate(txCtx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if err := s.paymentRepo.Create(txCtx, &entity.Payment{
			SaleID: sale.ID,
			Amount: input.Amount,
			PaidAt: paidAt,
		}); err != nil {
			return err
		}

		sale.PaidAmount = sale.PaidAmount.Add(input.Amount)

		if !sale.Completed && sale.PaidAmount.GreaterThanOrEqual(sale.Amount) {
			sale.Completed = true
			record := &entity.CommissionRecord{
				UserID:      sale.UserID,
				SaleID:      sale.ID,
				Amount:      sale.Amount.Mul(commissionRate).Round(2),
				AccruedAt:   paidAt,
				PeriodMonth: int(paidAt.Month()),
				PeriodYear:  paidAt.Year(),
			}
			if err := s.commissionRepo.Create(txCtx, record); err != nil {
				return err
			}
		}

		return s.saleRepo.Update(txCtx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSale retrieves a sale with its payment history
func (s *SettlementService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SettlementService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, userID, params)
}

// ListCommissions retrieves commission records with period filtering
func (s *SettlementService) ListCommissions(ctx context.Context, userID uuid.UUID, params *repository.CommissionFilterParams) ([]entity.CommissionRecord, int64, error) {
	return s.commissionRepo.List(ctx, userID, params)
}
