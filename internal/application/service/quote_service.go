package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/pkg/apperror"
	"github.com/kayatek/servis-api/pkg/numbering"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// DocumentRenderer renders a quote document into attachable bytes.
// A render failure aborts the send; nothing is persisted or mailed.
type DocumentRenderer interface {
	Render(doc *entity.QuoteDocument) ([]byte, error)
}

// QuoteMailer delivers a quote email with the rendered document attached.
// Delivery is best-effort: a mail failure after a successful render does not
// roll the send back.
type QuoteMailer interface {
	SendQuoteEmail(to string, cc []string, subject, body string, attachment []byte, filename string) error
}

// QuoteService handles quote lifecycle operations
type QuoteService struct {
	quoteRepo     repository.QuoteRepository
	lineRepo      repository.QuoteLineRepository
	sentQuoteRepo repository.SentQuoteRepository
	txManager     repository.TransactionManager
	builder       *DocumentBuilder
	renderer      DocumentRenderer
	mailer        QuoteMailer
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	lineRepo repository.QuoteLineRepository,
	sentQuoteRepo repository.SentQuoteRepository,
	txManager repository.TransactionManager,
	builder *DocumentBuilder,
	renderer DocumentRenderer,
	mailer QuoteMailer,
) *QuoteService {
	return &QuoteService{
		quoteRepo:     quoteRepo,
		lineRepo:      lineRepo,
		sentQuoteRepo: sentQuoteRepo,
		txManager:     txManager,
		builder:       builder,
		renderer:      renderer,
		mailer:        mailer,
	}
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	UserID              uuid.UUID
	CustomerID          *uuid.UUID
	CustomerName        string
	CustomerEmail       string
	Currency            string
	PaymentTerm         string
	Note                *string
	OverrideTotal       *decimal.Decimal
	OverrideDiscountPct *decimal.Decimal
	Lines               []QuoteLineInput
}

// QuoteLineInput represents a line item input
type QuoteLineInput struct {
	ProductName string
	Quantity    int
	ListPrice   decimal.Decimal
	DiscountPct decimal.Decimal
}

func validateLines(lines []QuoteLineInput) error {
	if len(lines) == 0 {
		return apperror.NewBadRequestError("A quote requires at least one line")
	}
	for _, l := range lines {
		if l.ProductName == "" {
			return apperror.NewBadRequestError("Line product name is required")
		}
		if l.Quantity < 1 {
			return apperror.NewBadRequestError("Line quantity must be at least 1")
		}
		if l.ListPrice.IsNegative() {
			return apperror.NewBadRequestError("Line list price cannot be negative")
		}
		if l.DiscountPct.IsNegative() || l.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.NewBadRequestError("Line discount must be between 0 and 100")
		}
	}
	return nil
}

// CreateQuote creates a new draft quote with a freshly minted document
// number. The year count and the insert run in one transaction so the number
// sequence stays gapless under concurrent creates.
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
	if input.CustomerName == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "TRY"
	}

	var quote *entity.Quote
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		now := time.Now()
		count, err := s.quoteRepo.CountByYear(txCtx, now.Year())
		if err != nil {
			return err
		}

		quote = &entity.Quote{
			UserID:              input.UserID,
			CustomerID:          input.CustomerID,
			Number:              numbering.QuoteNumber(now.Year(), int(count)+1),
			CustomerName:        input.CustomerName,
			CustomerEmail:       input.CustomerEmail,
			Currency:            currency,
			PaymentTerm:         input.PaymentTerm,
			Status:              enum.QuoteStatusDraft,
			Note:                input.Note,
			OverrideTotal:       input.OverrideTotal,
			OverrideDiscountPct: input.OverrideDiscountPct,
		}
		if err := s.quoteRepo.Create(txCtx, quote); err != nil {
			return err
		}

		lines := make([]entity.QuoteLine, 0, len(input.Lines))
		for _, l := range input.Lines {
			lines = append(lines, entity.QuoteLine{
				QuoteID:     quote.ID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				ListPrice:   l.ListPrice,
				DiscountPct: l.DiscountPct,
			})
		}
		if err := s.lineRepo.CreateBatch(txCtx, lines); err != nil {
			return err
		}
		quote.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// GetQuote retrieves a quote with its lines
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotes retrieves quotes with filtering and pagination
func (s *QuoteService) ListQuotes(ctx context.Context, userID uuid.UUID, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	return s.quoteRepo.List(ctx, userID, params)
}

// UpdateQuoteInput represents the input for updating a quote
type UpdateQuoteInput struct {
	CustomerName        *string
	CustomerEmail       *string
	Currency            *string
	PaymentTerm         *string
	Note                *string
	OverrideTotal       *decimal.Decimal
	OverrideDiscountPct *decimal.Decimal
	Lines               []QuoteLineInput
}

// UpdateQuote updates a quote that has not yet been approved. The document
// number never changes; lines are replaced wholesale when provided.
func (s *QuoteService) UpdateQuote(ctx context.Context, id uuid.UUID, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status == enum.QuoteStatusApproved {
		return nil, apperror.NewInvalidTransitionError("An approved quote cannot be edited")
	}

	if input.CustomerName != nil {
		quote.CustomerName = *input.CustomerName
	}
	if input.CustomerEmail != nil {
		quote.CustomerEmail = *input.CustomerEmail
	}
	if input.Currency != nil {
		quote.Currency = *input.Currency
	}
	if input.PaymentTerm != nil {
		quote.PaymentTerm = *input.PaymentTerm
	}
	if input.Note != nil {
		quote.Note = input.Note
	}
	if input.OverrideTotal != nil {
		quote.OverrideTotal = input.OverrideTotal
	}
	if input.OverrideDiscountPct != nil {
		quote.OverrideDiscountPct = input.OverrideDiscountPct
	}

	if input.Lines != nil {
		if err := validateLines(input.Lines); err != nil {
			return nil, err
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.quoteRepo.Update(txCtx, quote); err != nil {
			return err
		}
		if input.Lines == nil {
			return nil
		}
		if err := s.lineRepo.DeleteByQuoteID(txCtx, quote.ID); err != nil {
			return err
		}
		lines := make([]entity.QuoteLine, 0, len(input.Lines))
		for _, l := range input.Lines {
			lines = append(lines, entity.QuoteLine{
				QuoteID:     quote.ID,
				ProductName: l.ProductName,
				Quantity:    l.Quantity,
				ListPrice:   l.ListPrice,
				DiscountPct: l.DiscountPct,
			})
		}
		if err := s.lineRepo.CreateBatch(txCtx, lines); err != nil {
			return err
		}
		quote.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// DeleteQuote deletes a quote that has not been approved
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}
	if quote.Status == enum.QuoteStatusApproved {
		return apperror.NewInvalidTransitionError("An approved quote cannot be deleted")
	}
	return s.quoteRepo.Delete(ctx, id)
}

// SendQuoteInput represents the input for sending a quote
type SendQuoteInput struct {
	Recipient string
	CC        []string
	SentBy    uuid.UUID
}

// SendResult reports the outcome of a send. The status transition and the
// archive record are committed even when mail delivery fails; MailError
// carries the delivery failure, if any, for the caller to surface.
type SendResult struct {
	Quote     *entity.Quote
	MailSent  bool
	MailError string
}

// SendQuote renders the quote document, transitions the quote to Sent,
// archives the send, and emails the document. Rendering failures abort the
// whole operation; mail failures do not.
func (s *QuoteService) SendQuote(ctx context.Context, id uuid.UUID, input *SendQuoteInput) (*SendResult, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if !quote.Status.CanSend() {
		return nil, apperror.NewInvalidTransitionError(
			fmt.Sprintf("Quote in status %s cannot be sent", quote.Status))
	}

	recipient := input.Recipient
	if recipient == "" {
		recipient = quote.CustomerEmail
	}
	if recipient == "" {
		return nil, apperror.NewBadRequestError("A recipient email is required")
	}

	doc := s.builder.FromQuote(quote)
	rendered, err := s.renderer.Render(doc)
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to render quote document: "+err.Error())
	}
	filename := quote.Number + ".txt"

	now := time.Now()
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		quote.Status = enum.QuoteStatusSent
		quote.SentAt = &now
		if err := s.quoteRepo.Update(txCtx, quote); err != nil {
			return err
		}
		return s.sentQuoteRepo.Create(txCtx, &entity.SentQuote{
			QuoteID:        quote.ID,
			Recipient:      recipient,
			DocumentNumber: quote.Number,
			Filename:       filename,
			SentBy:         input.SentBy,
			SentAt:         now,
		})
	})
	if err != nil {
		return nil, err
	}

	result := &SendResult{Quote: quote, MailSent: true}

	subject := "Fiyat Teklifi " + quote.Number
	body := fmt.Sprintf("Sayın %s,\n\n%s numaralı fiyat teklifimiz ektedir.\n\nGenel Toplam: %s %s\n",
		quote.CustomerName, quote.Number, doc.GrandTotal, quote.Currency)

	if err := s.mailer.SendQuoteEmail(recipient, input.CC, subject, body, rendered, filename); err != nil {
		log.Printf("quote %s: mail delivery to %s failed: %v", quote.Number, recipient, err)
		result.MailSent = false
		result.MailError = err.Error()
	}
	return result, nil
}

// ListSentQuotes lists the send archive for one quote
func (s *QuoteService) ListSentQuotes(ctx context.Context, quoteID uuid.UUID) ([]entity.SentQuote, error) {
	return s.sentQuoteRepo.ListByQuoteID(ctx, quoteID)
}

// ListArchive lists the full send archive, newest first
func (s *QuoteService) ListArchive(ctx context.Context, params *pagination.PaginationParams) ([]entity.SentQuote, int64, error) {
	return s.sentQuoteRepo.List(ctx, params)
}
