package service

import (
	"context"
	"fmt"
	"log"
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

// TicketService handles service ticket operations
type TicketService struct {
	ticketRepo    repository.TicketRepository
	itemRepo      repository.TicketItemRepository
	quoteRepo     repository.QuoteRepository
	lineRepo      repository.QuoteLineRepository
	sentQuoteRepo repository.SentQuoteRepository
	txManager     repository.TransactionManager
	builder       *DocumentBuilder
	renderer      DocumentRenderer
	mailer        QuoteMailer
}

// NewTicketService creates a new ticket service
func NewTicketService(
	ticketRepo repository.TicketRepository,
	itemRepo repository.TicketItemRepository,
	quoteRepo repository.QuoteRepository,
	lineRepo repository.QuoteLineRepository,
	sentQuoteRepo repository.SentQuoteRepository,
	txManager repository.TransactionManager,
	builder *DocumentBuilder,
	renderer DocumentRenderer,
	mailer QuoteMailer,
) *TicketService {
	return &TicketService{
		ticketRepo:    ticketRepo,
		itemRepo:      itemRepo,
		quoteRepo:     quoteRepo,
		lineRepo:      lineRepo,
		sentQuoteRepo: sentQuoteRepo,
		txManager:     txManager,
		builder:       builder,
		renderer:      renderer,
		mailer:        mailer,
	}
}

// TicketItemInput represents a part or service recorded on a ticket
type TicketItemInput struct {
	Kind        string
	Name        string
	Quantity    int
	Price       decimal.Decimal
	ListPrice   *decimal.Decimal
	DiscountPct *decimal.Decimal
}

// CreateTicketInput represents the input for creating a service ticket
type CreateTicketInput struct {
	UserID            uuid.UUID
	CustomerID        *uuid.UUID
	CustomerName      string
	Product           string
	Notes             string
	AgreedTotal       *decimal.Decimal
	AgreedDiscountPct *decimal.Decimal
	Items             []TicketItemInput
}

func buildTicketItems(ticketID uuid.UUID, inputs []TicketItemInput) ([]entity.TicketItem, error) {
	items := make([]entity.TicketItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Kind != entity.TicketItemPart && in.Kind != entity.TicketItemService {
			return nil, apperror.NewBadRequestError("Item kind must be part or service")
		}
		if in.Name == "" {
			return nil, apperror.NewBadRequestError("Item name is required")
		}
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, entity.TicketItem{
			TicketID:    ticketID,
			Kind:        in.Kind,
			Name:        in.Name,
			Quantity:    qty,
			Price:       in.Price,
			ListPrice:   in.ListPrice,
			DiscountPct: in.DiscountPct,
		})
	}
	return items, nil
}

// CreateTicket opens a new service ticket with a freshly minted ticket
// number. Numbering scans every existing number inside the creating
// transaction, so deleted tickets never cause a reused number.
func (s *TicketService) CreateTicket(ctx context.Context, input *CreateTicketInput) (*entity.ServiceTicket, error) {
	var ticket *entity.ServiceTicket
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		numbers, err := s.ticketRepo.ListNumbers(txCtx)
		if err != nil {
			return err
		}

		ticket = &entity.ServiceTicket{
			UserID:            input.UserID,
			CustomerID:        input.CustomerID,
			Number:            numbering.TicketNumber(numbering.NextTicketSeq(numbers)),
			Status:            enum.TicketStatusOpened,
			CustomerName:      input.CustomerName,
			Product:           input.Product,
			Notes:             input.Notes,
			AgreedTotal:       input.AgreedTotal,
			AgreedDiscountPct: input.AgreedDiscountPct,
		}
		if err := s.ticketRepo.Create(txCtx, ticket); err != nil {
			return err
		}

		if len(input.Items) == 0 {
			return nil
		}
		items, err := buildTicketItems(ticket.ID, input.Items)
		if err != nil {
			return err
		}
		if err := s.itemRepo.CreateBatch(txCtx, items); err != nil {
			return err
		}
		ticket.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// GetTicket retrieves a ticket with its items
func (s *TicketService) GetTicket(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error) {
	ticket, err := s.ticketRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}
	return ticket, nil
}

// ListTickets retrieves tickets with filtering and pagination
func (s *TicketService) ListTickets(ctx context.Context, userID uuid.UUID, params *repository.TicketFilterParams) ([]entity.ServiceTicket, int64, error) {
	return s.ticketRepo.List(ctx, userID, params)
}

// UpdateTicketInput represents the input for updating a ticket
type UpdateTicketInput struct {
	CustomerName      *string
	Product           *string
	Notes             *string
	AgreedTotal       *decimal.Decimal
	AgreedDiscountPct *decimal.Decimal
	Items             []TicketItemInput
}

// UpdateTicket updates ticket fields and, when items are provided, replaces
// the item set wholesale.
func (s *TicketService) UpdateTicket(ctx context.Context, id uuid.UUID, input *UpdateTicketInput) (*entity.ServiceTicket, error) {
	ticket, err := s.ticketRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	if input.CustomerName != nil {
		ticket.CustomerName = *input.CustomerName
	}
	if input.Product != nil {
		ticket.Product = *input.Product
	}
	if input.Notes != nil {
		ticket.Notes = *input.Notes
	}
	if input.AgreedTotal != nil {
		ticket.AgreedTotal = input.AgreedTotal
	}
	if input.AgreedDiscountPct != nil {
		ticket.AgreedDiscountPct = input.AgreedDiscountPct
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.ticketRepo.Update(txCtx, ticket); err != nil {
			return err
		}
		if input.Items == nil {
			return nil
		}
		if err := s.itemRepo.DeleteByTicketID(txCtx, ticket.ID); err != nil {
			return err
		}
		items, err := buildTicketItems(ticket.ID, input.Items)
		if err != nil {
			return err
		}
		if len(items) > 0 {
			if err := s.itemRepo.CreateBatch(txCtx, items); err != nil {
				return err
			}
		}
		ticket.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// DeleteTicket deletes a ticket
func (s *TicketService) DeleteTicket(ctx context.Context, id uuid.UUID) error {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperror.NewNotFoundError("Ticket")
	}
	return s.ticketRepo.Delete(ctx, id)
}

// SetStatus moves a ticket to the requested status. The status vocabulary is
// a flat set, so any member is reachable from any other; a value outside the
// set is not an error but is coerced to OPENED and logged, keeping the row
// in a known state.
func (s *TicketService) SetStatus(ctx context.Context, id uuid.UUID, status enum.TicketStatus) (*entity.ServiceTicket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, apperror.NewNotFoundError("Ticket")
	}

	if !status.IsValid() {
		log.Printf("ticket %s: unknown status %q, forcing %s", ticket.Number, status, enum.TicketStatusOpened)
		status = enum.TicketStatusOpened
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	ticket.Status = status
	return ticket, nil
}

// SendBulkQuoteInput represents the input for quoting a batch of tickets
type SendBulkQuoteInput struct {
	TicketIDs    []uuid.UUID
	Recipient    string
	CC           []string
	CustomerName string
	Currency     string
	PaymentTerm  string
	SentBy       uuid.UUID
}

// BulkQuoteResult reports the outcome of a bulk quote send
type BulkQuoteResult struct {
	Quote        *entity.Quote
	MailSent     bool
	MailError    string
	SweptTickets int
}

// SendBulkQuote bundles the given tickets into a single quote, renders the
// grouped document, sends it, and moves the source tickets to
// AWAITING_APPROVAL. Quote creation, the Sent transition and the archive
// record commit atomically; a render failure persists nothing. The ticket
// sweep afterwards is best-effort: a ticket that fails to move is logged and
// skipped, never rolling back the sent quote.
func (s *TicketService) SendBulkQuote(ctx context.Context, input *SendBulkQuoteInput) (*BulkQuoteResult, error) {
	if len(input.TicketIDs) == 0 {
		return nil, apperror.NewBadRequestError("At least one ticket is required")
	}
	if input.Recipient == "" {
		return nil, apperror.NewBadRequestError("A recipient email is required")
	}

	groups := make([]TicketGroup, 0, len(input.TicketIDs))
	for _, id := range input.TicketIDs {
		ticket, err := s.ticketRepo.GetWithItems(ctx, id)
		if err != nil {
			return nil, err
		}
		if ticket == nil {
			return nil, apperror.NewNotFoundError("Ticket")
		}
		if len(ticket.Items) == 0 && ticket.AgreedTotal == nil {
			return nil, apperror.NewBadRequestError(
				fmt.Sprintf("Ticket %s has no items and no agreed total", ticket.Number))
		}
		groups = append(groups, TicketGroup{
			Ticket:       ticket,
			EncodedLines: EncodeTicketItems(ticket.Items),
		})
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = groups[0].Ticket.CustomerName
	}
	currency := input.Currency
	if currency == "" {
		currency = "TRY"
	}

	var quote *entity.Quote
	var rendered []byte
	var filename string
	var doc *entity.QuoteDocument

	now := time.Now()
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		count, err := s.quoteRepo.CountByYear(txCtx, now.Year())
		if err != nil {
			return err
		}
		number := numbering.QuoteNumber(now.Year(), int(count)+1)

		doc = s.builder.FromTicketGroups(number, customerName, currency, now, groups)
		rendered, err = s.renderer.Render(doc)
		if err != nil {
			return apperror.NewAppError(500, "Failed to render quote document: "+err.Error())
		}
		filename = number + ".txt"

		quote = &entity.Quote{
			UserID:        input.SentBy,
			Number:        number,
			CustomerName:  customerName,
			CustomerEmail: input.Recipient,
			Currency:      currency,
			PaymentTerm:   input.PaymentTerm,
			Status:        enum.QuoteStatusSent,
			SentAt:        &now,
		}
		if err := s.quoteRepo.Create(txCtx, quote); err != nil {
			return err
		}

		lines := flattenTicketLines(quote.ID, groups)
		if err := s.lineRepo.CreateBatch(txCtx, lines); err != nil {
			return err
		}
		quote.Lines = lines

		return s.sentQuoteRepo.Create(txCtx, &entity.SentQuote{
			QuoteID:        quote.ID,
			Recipient:      input.Recipient,
			DocumentNumber: number,
			Filename:       filename,
			SentBy:         input.SentBy,
			SentAt:         now,
		})
	})
	if err != nil {
		return nil, err
	}

	result := &BulkQuoteResult{Quote: quote, MailSent: true}

	subject := "Fiyat Teklifi " + quote.Number
	body := bulkQuoteBody(quote, doc, groups)
	if err := s.mailer.SendQuoteEmail(input.Recipient, input.CC, subject, body, rendered, filename); err != nil {
		log.Printf("bulk quote %s: mail delivery to %s failed: %v", quote.Number, input.Recipient, err)
		result.MailSent = false
		result.MailError = err.Error()
	}

	for _, g := range groups {
		if err := s.ticketRepo.UpdateStatus(ctx, g.Ticket.ID, enum.TicketStatusAwaitingApproval); err != nil {
			log.Printf("bulk quote %s: ticket %s not moved to %s: %v",
				quote.Number, g.Ticket.Number, enum.TicketStatusAwaitingApproval, err)
			continue
		}
		result.SweptTickets++
	}

	return result, nil
}

// flattenTicketLines converts per-ticket items into the quote's line set so
// the quote settles to the same grand total as the grouped document.
// Agreed-total tickets collapse into a single line at the payable amount.
func flattenTicketLines(quoteID uuid.UUID, groups []TicketGroup) []entity.QuoteLine {
	var lines []entity.QuoteLine
	for _, g := range groups {
		if g.Ticket.AgreedTotal != nil {
			discount := decimal.Zero
			if g.Ticket.AgreedDiscountPct != nil {
				discount = *g.Ticket.AgreedDiscountPct
			}
			name := g.Ticket.Number
			if g.Ticket.Product != "" {
				name += " - " + g.Ticket.Product
			}
			lines = append(lines, entity.QuoteLine{
				QuoteID:     quoteID,
				ProductName: name,
				Quantity:    1,
				ListPrice:   pricing.OverridePayable(*g.Ticket.AgreedTotal, discount),
				DiscountPct: decimal.Zero,
			})
			continue
		}
		for _, item := range g.Ticket.Items {
			line := entity.QuoteLine{
				QuoteID:     quoteID,
				ProductName: item.Name,
				Quantity:    item.Quantity,
				ListPrice:   item.Price,
				DiscountPct: decimal.Zero,
			}
			if item.Kind == entity.TicketItemService {
				line.Quantity = 1
			}
			if item.ListPrice != nil && item.DiscountPct != nil {
				line.ListPrice = *item.ListPrice
				line.DiscountPct = *item.DiscountPct
			}
			lines = append(lines, line)
		}
	}
	return lines
}

// bulkQuoteBody writes the email body, embedding each ticket's items in the
// serialized line format under the ticket number.
func bulkQuoteBody(quote *entity.Quote, doc *entity.QuoteDocument, groups []TicketGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sayın %s,\n\n%s numaralı fiyat teklifimiz ektedir.\n\n", quote.CustomerName, quote.Number)
	for _, g := range groups {
		fmt.Fprintf(&b, "%s:\n", g.Ticket.Number)
		for _, line := range g.EncodedLines {
			b.WriteString("  " + line + "\n")
		}
	}
	fmt.Fprintf(&b, "\nGenel Toplam: %s %s\n", doc.GrandTotal, quote.Currency)
	return b.String()
}
