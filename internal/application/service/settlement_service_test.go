package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
)

type settlementFixture struct {
	svc            *SettlementService
	quoteRepo      *mockQuoteRepo
	lineRepo       *mockQuoteLineRepo
	saleRepo       *mockSaleRepo
	paymentRepo    *mockPaymentRepo
	commissionRepo *mockCommissionRepo
}

func newSettlementFixture() *settlementFixture {
	lineRepo := newMockQuoteLineRepo()
	quoteRepo := newMockQuoteRepo(lineRepo)
	saleRepo := newMockSaleRepo()
	paymentRepo := &mockPaymentRepo{}
	commissionRepo := &mockCommissionRepo{}
	return &settlementFixture{
		svc:            NewSettlementService(quoteRepo, saleRepo, paymentRepo, commissionRepo, passthroughTxManager{}),
		quoteRepo:      quoteRepo,
		lineRepo:       lineRepo,
		saleRepo:       saleRepo,
		paymentRepo:    paymentRepo,
		commissionRepo: commissionRepo,
	}
}

func (f *settlementFixture) seedSentQuote(t *testing.T, customerName, term string) *entity.Quote {
	t.Helper()
	quote := &entity.Quote{
		UserID:       uuid.New(),
		Number:       "TEK-2024-001",
		CustomerName: customerName,
		Currency:     "TRY",
		PaymentTerm:  term,
		Status:       enum.QuoteStatusSent,
	}
	require.NoError(t, f.quoteRepo.Create(context.Background(), quote))
	require.NoError(t, f.lineRepo.CreateBatch(context.Background(), []entity.QuoteLine{
		{
			QuoteID:     quote.ID,
			ProductName: "Ekran Paneli",
			Quantity:    1,
			ListPrice:   decimal.NewFromInt(100),
			DiscountPct: decimal.NewFromInt(10),
		},
		{
			QuoteID:     quote.ID,
			ProductName: "Montaj",
			Quantity:    1,
			ListPrice:   decimal.NewFromInt(90),
			DiscountPct: decimal.Zero,
		},
	}))
	return quote
}

func TestApproveQuote(t *testing.T) {
	f := newSettlementFixture()
	quote := f.seedSentQuote(t, "Acme Bilişim", "30 gün vade")

	sale, err := f.svc.ApproveQuote(context.Background(), quote.ID)
	require.NoError(t, err)

	// 90 + 90 net, plus 20% VAT
	assert.Equal(t, "216.00", sale.Amount.StringFixed(2))
	assert.Equal(t, "Acme Bilişim", sale.CustomerName)
	assert.Contains(t, sale.Number, "ACM-")
	assert.Equal(t, sale.Date.AddDate(0, 0, 30).Format("2006-01-02"), sale.DueDate.Format("2006-01-02"))
	assert.False(t, sale.Completed)

	updated, err := f.quoteRepo.GetByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusApproved, updated.Status)
	require.NotNil(t, updated.SaleID)
	assert.Equal(t, sale.ID, *updated.SaleID)
	assert.NotNil(t, updated.ApprovedAt)
}

func TestApproveQuoteInvalidStatus(t *testing.T) {
	f := newSettlementFixture()

	for _, status := range []enum.QuoteStatus{enum.QuoteStatusDraft, enum.QuoteStatusApproved} {
		quote := f.seedSentQuote(t, "Acme", "Peşin")
		quote.Status = status
		require.NoError(t, f.quoteRepo.Update(context.Background(), quote))

		_, err := f.svc.ApproveQuote(context.Background(), quote.ID)
		assert.Error(t, err, "status %s", status)
	}
}

func TestApproveQuoteNotFound(t *testing.T) {
	f := newSettlementFixture()

	_, err := f.svc.ApproveQuote(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestApplyPaymentPartialThenComplete(t *testing.T) {
	f := newSettlementFixture()
	quote := f.seedSentQuote(t, "Acme", "Peşin")
	sale, err := f.svc.ApproveQuote(context.Background(), quote.ID)
	require.NoError(t, err)

	// Partial payment: no completion, no commission.
	sale, err = f.svc.ApplyPayment(context.Background(), sale.ID, &ApplyPaymentInput{
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "100.00", sale.PaidAmount.StringFixed(2))
	assert.False(t, sale.Completed)
	assert.Empty(t, f.commissionRepo.records)

	// Covering payment: completion flips, commission accrues once.
	paidAt := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	sale, err = f.svc.ApplyPayment(context.Background(), sale.ID, &ApplyPaymentInput{
		Amount: decimal.NewFromInt(116),
		PaidAt: paidAt,
	})
	require.NoError(t, err)
	assert.Equal(t, "216.00", sale.PaidAmount.StringFixed(2))
	assert.True(t, sale.Completed)

	require.Len(t, f.commissionRepo.records, 1)
	record := f.commissionRepo.records[0]
	// 1.5% of 216.00
	assert.Equal(t, "3.24", record.Amount.StringFixed(2))
	assert.Equal(t, sale.ID, record.SaleID)
	assert.Equal(t, sale.UserID, record.UserID)
	assert.Equal(t, 3, record.PeriodMonth)
	assert.Equal(t, 2024, record.PeriodYear)
}

func TestApplyPaymentCommissionAccruesOnce(t *testing.T) {
	f := newSettlementFixture()
	quote := f.seedSentQuote(t, "Acme", "Peşin")
	sale, err := f.svc.ApproveQuote(context.Background(), quote.ID)
	require.NoError(t, err)

	_, err = f.svc.ApplyPayment(context.Background(), sale.ID, &ApplyPaymentInput{
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	// Further payments on a completed sale accrue nothing more.
	sale2, err := f.svc.ApplyPayment(context.Background(), sale.ID, &ApplyPaymentInput{
		Amount: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.True(t, sale2.Completed)
	assert.Equal(t, "350.00", sale2.PaidAmount.StringFixed(2))
	assert.Len(t, f.commissionRepo.records, 1)
	assert.Len(t, f.paymentRepo.payments, 2)
}

func TestApplyPaymentRejectsNonPositive(t *testing.T) {
	f := newSettlementFixture()
	quote := f.seedSentQuote(t, "Acme", "Peşin")
	sale, err := f.svc.ApproveQuote(context.Background(), quote.ID)
	require.NoError(t, err)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := f.svc.ApplyPayment(context.Background(), sale.ID, &ApplyPaymentInput{Amount: amount})
		assert.Error(t, err, "amount %s", amount)
	}
	assert.Empty(t, f.paymentRepo.payments)
}

func TestDueDateFromTerm(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		term string
		want time.Time
	}{
		{"30 gün vade", date.AddDate(0, 0, 30)},
		{"60 gün", date.AddDate(0, 0, 60)},
		{"Peşin", date},
		{"", date},
		{"vade yok", date},
		{"7", date.AddDate(0, 0, 7)},
	}

	for _, tt := range tests {
		got := DueDateFromTerm(tt.term, date)
		assert.Equal(t, tt.want, got, "term %q", tt.term)
	}
}

func TestQuoteGrandTotalOverride(t *testing.T) {
	total := decimal.NewFromInt(500)
	discount := decimal.NewFromInt(10)
	quote := &entity.Quote{
		OverrideTotal:       &total,
		OverrideDiscountPct: &discount,
	}

	// 500 * 0.90 = 450 payable, plus 20% VAT
	assert.Equal(t, "540.00", QuoteGrandTotal(quote).StringFixed(2))
}
