package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
)

type ticketFixture struct {
	svc           *TicketService
	ticketRepo    *mockTicketRepo
	itemRepo      *mockTicketItemRepo
	quoteRepo     *mockQuoteRepo
	lineRepo      *mockQuoteLineRepo
	sentQuoteRepo *mockSentQuoteRepo
	renderer      *mockRenderer
	mailer        *mockMailer
}

func newTicketFixture() *ticketFixture {
	itemRepo := newMockTicketItemRepo()
	ticketRepo := newMockTicketRepo(itemRepo)
	lineRepo := newMockQuoteLineRepo()
	quoteRepo := newMockQuoteRepo(lineRepo)
	sentQuoteRepo := &mockSentQuoteRepo{}
	renderer := &mockRenderer{}
	mailer := &mockMailer{}
	return &ticketFixture{
		svc: NewTicketService(ticketRepo, itemRepo, quoteRepo, lineRepo, sentQuoteRepo,
			passthroughTxManager{}, NewDocumentBuilder(), renderer, mailer),
		ticketRepo:    ticketRepo,
		itemRepo:      itemRepo,
		quoteRepo:     quoteRepo,
		lineRepo:      lineRepo,
		sentQuoteRepo: sentQuoteRepo,
		renderer:      renderer,
		mailer:        mailer,
	}
}

func sampleTicketInput() *CreateTicketInput {
	return &CreateTicketInput{
		UserID:       uuid.New(),
		CustomerName: "Acme Bilişim",
		Product:      "Laptop X200",
		Items: []TicketItemInput{
			{Kind: entity.TicketItemPart, Name: "Ekran Paneli", Quantity: 1, Price: decimal.NewFromInt(90)},
			{Kind: entity.TicketItemService, Name: "Montaj", Price: decimal.NewFromInt(90)},
		},
	}
}

func TestCreateTicket(t *testing.T) {
	f := newTicketFixture()

	ticket, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)
	assert.Equal(t, "KTNTS-01", ticket.Number)
	assert.Equal(t, enum.TicketStatusOpened, ticket.Status)
	assert.Len(t, ticket.Items, 2)

	second, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)
	assert.Equal(t, "KTNTS-02", second.Number)
}

func TestCreateTicketNumberingSkipsGaps(t *testing.T) {
	f := newTicketFixture()

	// An existing high number forces the next mint past it, even with gaps.
	require.NoError(t, f.ticketRepo.Create(context.Background(), &entity.ServiceTicket{
		UserID: uuid.New(),
		Number: "KTNTS-07",
		Status: enum.TicketStatusOpened,
	}))

	ticket, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)
	assert.Equal(t, "KTNTS-08", ticket.Number)
}

func TestCreateTicketRejectsUnknownKind(t *testing.T) {
	f := newTicketFixture()

	input := sampleTicketInput()
	input.Items[0].Kind = "material"
	_, err := f.svc.CreateTicket(context.Background(), input)
	assert.Error(t, err)
}

func TestSetStatus(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(context.Background(), ticket.ID, enum.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusInProgress, updated.Status)

	// The vocabulary is flat: completed back to opened is legal.
	updated, err = f.svc.SetStatus(context.Background(), ticket.ID, enum.TicketStatusOpened)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusOpened, updated.Status)
}

func TestSetStatusUnknownForcedToOpened(t *testing.T) {
	f := newTicketFixture()
	ticket, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)

	_, err = f.svc.SetStatus(context.Background(), ticket.ID, enum.TicketStatusCompleted)
	require.NoError(t, err)

	updated, err := f.svc.SetStatus(context.Background(), ticket.ID, enum.TicketStatus("CANCELLED"))
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusOpened, updated.Status)

	stored, err := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusOpened, stored.Status)
}

func bulkInput(ids []uuid.UUID) *SendBulkQuoteInput {
	return &SendBulkQuoteInput{
		TicketIDs: ids,
		Recipient: "satin.alma@acme.example",
		SentBy:    uuid.New(),
	}
}

func TestSendBulkQuote(t *testing.T) {
	f := newTicketFixture()
	first, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)
	second, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)

	result, err := f.svc.SendBulkQuote(context.Background(), bulkInput([]uuid.UUID{first.ID, second.ID}))
	require.NoError(t, err)
	assert.True(t, result.MailSent)
	assert.Equal(t, 2, result.SweptTickets)

	// One quote minted and already sent.
	assert.Equal(t, enum.QuoteStatusSent, result.Quote.Status)
	assert.NotEmpty(t, result.Quote.Number)
	assert.Len(t, f.sentQuoteRepo.records, 1)

	// Flattened lines cover both tickets' items.
	assert.Len(t, result.Quote.Lines, 4)

	// Both tickets moved to awaiting approval.
	for _, id := range []uuid.UUID{first.ID, second.ID} {
		stored, err := f.ticketRepo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, enum.TicketStatusAwaitingApproval, stored.Status)
	}

	// The email body carries the serialized item lines per ticket.
	require.Len(t, f.mailer.sends, 1)
	body := f.mailer.sends[0].Body
	assert.Contains(t, body, first.Number)
	assert.Contains(t, body, "Parça: Ekran Paneli x1 : 90.00")
	assert.Contains(t, body, "Hizmet: Montaj : 90.00")
}

func TestSendBulkQuoteSweepBestEffort(t *testing.T) {
	f := newTicketFixture()
	first, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)
	second, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)

	f.ticketRepo.failStatusOn[first.ID] = true

	result, err := f.svc.SendBulkQuote(context.Background(), bulkInput([]uuid.UUID{first.ID, second.ID}))
	require.NoError(t, err)

	// The failed sweep is skipped, not fatal; the quote stays sent.
	assert.Equal(t, 1, result.SweptTickets)
	assert.Equal(t, enum.QuoteStatusSent, result.Quote.Status)
	assert.Len(t, f.sentQuoteRepo.records, 1)

	stored, err := f.ticketRepo.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusAwaitingApproval, stored.Status)
}

func TestSendBulkQuoteRenderFailureAborts(t *testing.T) {
	f := newTicketFixture()
	f.renderer.fail = true
	ticket, err := f.svc.CreateTicket(context.Background(), sampleTicketInput())
	require.NoError(t, err)

	_, err = f.svc.SendBulkQuote(context.Background(), bulkInput([]uuid.UUID{ticket.ID}))
	assert.Error(t, err)

	// No quote, no archive, no mail, ticket untouched.
	assert.Empty(t, f.sentQuoteRepo.records)
	assert.Empty(t, f.mailer.sends)
	stored, err := f.ticketRepo.GetByID(context.Background(), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.TicketStatusOpened, stored.Status)
}

func TestSendBulkQuoteAgreedTotalTicket(t *testing.T) {
	f := newTicketFixture()
	agreed := decimal.NewFromInt(500)
	discount := decimal.NewFromInt(10)
	input := sampleTicketInput()
	input.AgreedTotal = &agreed
	input.AgreedDiscountPct = &discount
	ticket, err := f.svc.CreateTicket(context.Background(), input)
	require.NoError(t, err)

	result, err := f.svc.SendBulkQuote(context.Background(), bulkInput([]uuid.UUID{ticket.ID}))
	require.NoError(t, err)

	// The agreed total collapses to a single payable line: 500 less 10%.
	require.Len(t, result.Quote.Lines, 1)
	assert.Equal(t, "450.00", result.Quote.Lines[0].ListPrice.StringFixed(2))
	assert.True(t, result.Quote.Lines[0].DiscountPct.IsZero())
}

func TestSendBulkQuoteValidation(t *testing.T) {
	f := newTicketFixture()

	_, err := f.svc.SendBulkQuote(context.Background(), bulkInput(nil))
	assert.Error(t, err)

	input := bulkInput([]uuid.UUID{uuid.New()})
	_, err = f.svc.SendBulkQuote(context.Background(), input)
	assert.Error(t, err)

	// Empty ticket with no agreed total cannot be quoted.
	empty, err := f.svc.CreateTicket(context.Background(), &CreateTicketInput{
		UserID:       uuid.New(),
		CustomerName: "Acme",
	})
	require.NoError(t, err)
	_, err = f.svc.SendBulkQuote(context.Background(), bulkInput([]uuid.UUID{empty.ID}))
	assert.Error(t, err)
}
