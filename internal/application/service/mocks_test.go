package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// passthroughTxManager runs the function directly; the in-memory mocks have
// no real transactions to join.
type passthroughTxManager struct{}

func (passthroughTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type mockQuoteRepo struct {
	quotes   map[uuid.UUID]*entity.Quote
	lineRepo *mockQuoteLineRepo
}

func newMockQuoteRepo(lineRepo *mockQuoteLineRepo) *mockQuoteRepo {
	return &mockQuoteRepo{
		quotes:   make(map[uuid.UUID]*entity.Quote),
		lineRepo: lineRepo,
	}
}

func (m *mockQuoteRepo) Create(ctx context.Context, quote *entity.Quote) error {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = time.Now()
	}
	cp := *quote
	m.quotes[quote.ID] = &cp
	return nil
}

func (m *mockQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (m *mockQuoteRepo) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := m.GetByID(ctx, id)
	if quote == nil || err != nil {
		return quote, err
	}
	if m.lineRepo != nil {
		quote.Lines = m.lineRepo.lines[id]
	}
	return quote, nil
}

func (m *mockQuoteRepo) Update(ctx context.Context, quote *entity.Quote) error {
	if _, ok := m.quotes[quote.ID]; !ok {
		return errors.New("quote not found")
	}
	cp := *quote
	m.quotes[quote.ID] = &cp
	return nil
}

func (m *mockQuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.quotes, id)
	return nil
}

func (m *mockQuoteRepo) List(ctx context.Context, userID uuid.UUID, params *repository.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var out []entity.Quote
	for _, q := range m.quotes {
		out = append(out, *q)
	}
	return out, int64(len(out)), nil
}

func (m *mockQuoteRepo) CountByYear(ctx context.Context, year int) (int64, error) {
	var n int64
	for _, q := range m.quotes {
		if q.CreatedAt.Year() == year {
			n++
		}
	}
	return n, nil
}

type mockQuoteLineRepo struct {
	lines map[uuid.UUID][]entity.QuoteLine
}

func newMockQuoteLineRepo() *mockQuoteLineRepo {
	return &mockQuoteLineRepo{lines: make(map[uuid.UUID][]entity.QuoteLine)}
}

func (m *mockQuoteLineRepo) CreateBatch(ctx context.Context, lines []entity.QuoteLine) error {
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		m.lines[lines[i].QuoteID] = append(m.lines[lines[i].QuoteID], lines[i])
	}
	return nil
}

func (m *mockQuoteLineRepo) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLine, error) {
	return m.lines[quoteID], nil
}

func (m *mockQuoteLineRepo) DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error {
	delete(m.lines, quoteID)
	return nil
}

type mockSentQuoteRepo struct {
	records []entity.SentQuote
}

func (m *mockSentQuoteRepo) Create(ctx context.Context, record *entity.SentQuote) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockSentQuoteRepo) ListByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.SentQuote, error) {
	var out []entity.SentQuote
	for _, r := range m.records {
		if r.QuoteID == quoteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockSentQuoteRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.SentQuote, int64, error) {
	return m.records, int64(len(m.records)), nil
}

type mockSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newMockSaleRepo() *mockSaleRepo {
	return &mockSaleRepo{sales: make(map[uuid.UUID]*entity.Sale)}
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}
	cp := *sale
	m.sales[sale.ID] = &cp
	return nil
}

func (m *mockSaleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s, ok := m.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *mockSaleRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSaleRepo) GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	return m.GetByID(ctx, id)
}

func (m *mockSaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	if _, ok := m.sales[sale.ID]; !ok {
		return errors.New("sale not found")
	}
	cp := *sale
	m.sales[sale.ID] = &cp
	return nil
}

func (m *mockSaleRepo) List(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range m.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (m *mockSaleRepo) CountByDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	y, mo, d := day.Date()
	for _, s := range m.sales {
		sy, smo, sd := s.CreatedAt.Date()
		if sy == y && smo == mo && sd == d {
			n++
		}
	}
	return n, nil
}

type mockPaymentRepo struct {
	payments []entity.Payment
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *mockPaymentRepo) ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range m.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockCommissionRepo struct {
	records []entity.CommissionRecord
}

func (m *mockCommissionRepo) Create(ctx context.Context, record *entity.CommissionRecord) error {
	for _, r := range m.records {
		if r.SaleID == record.SaleID {
			return errors.New("duplicate commission for sale")
		}
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockCommissionRepo) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.CommissionRecord, error) {
	for _, r := range m.records {
		if r.SaleID == saleID {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCommissionRepo) List(ctx context.Context, userID uuid.UUID, params *repository.CommissionFilterParams) ([]entity.CommissionRecord, int64, error) {
	return m.records, int64(len(m.records)), nil
}

type mockTicketRepo struct {
	tickets      map[uuid.UUID]*entity.ServiceTicket
	itemRepo     *mockTicketItemRepo
	failStatusOn map[uuid.UUID]bool
}

func newMockTicketRepo(itemRepo *mockTicketItemRepo) *mockTicketRepo {
	return &mockTicketRepo{
		tickets:      make(map[uuid.UUID]*entity.ServiceTicket),
		itemRepo:     itemRepo,
		failStatusOn: make(map[uuid.UUID]bool),
	}
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *entity.ServiceTicket) error {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	cp := *ticket
	m.tickets[ticket.ID] = &cp
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error) {
	t, ok := m.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *mockTicketRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error) {
	ticket, err := m.GetByID(ctx, id)
	if ticket == nil || err != nil {
		return ticket, err
	}
	if m.itemRepo != nil {
		ticket.Items = m.itemRepo.items[id]
	}
	return ticket, nil
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *entity.ServiceTicket) error {
	if _, ok := m.tickets[ticket.ID]; !ok {
		return errors.New("ticket not found")
	}
	cp := *ticket
	m.tickets[ticket.ID] = &cp
	return nil
}

func (m *mockTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.tickets, id)
	return nil
}

func (m *mockTicketRepo) List(ctx context.Context, userID uuid.UUID, params *repository.TicketFilterParams) ([]entity.ServiceTicket, int64, error) {
	var out []entity.ServiceTicket
	for _, t := range m.tickets {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (m *mockTicketRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TicketStatus) error {
	if m.failStatusOn[id] {
		return errors.New("status update failed")
	}
	t, ok := m.tickets[id]
	if !ok {
		return errors.New("ticket not found")
	}
	t.Status = status
	return nil
}

func (m *mockTicketRepo) ListNumbers(ctx context.Context) ([]string, error) {
	var out []string
	for _, t := range m.tickets {
		out = append(out, t.Number)
	}
	return out, nil
}

type mockTicketItemRepo struct {
	items map[uuid.UUID][]entity.TicketItem
}

func newMockTicketItemRepo() *mockTicketItemRepo {
	return &mockTicketItemRepo{items: make(map[uuid.UUID][]entity.TicketItem)}
}

func (m *mockTicketItemRepo) CreateBatch(ctx context.Context, items []entity.TicketItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		m.items[items[i].TicketID] = append(m.items[items[i].TicketID], items[i])
	}
	return nil
}

func (m *mockTicketItemRepo) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketItem, error) {
	return m.items[ticketID], nil
}

func (m *mockTicketItemRepo) DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error {
	delete(m.items, ticketID)
	return nil
}

// mockRenderer counts renders and can be set to fail.
type mockRenderer struct {
	fail    bool
	renders int
}

func (m *mockRenderer) Render(doc *entity.QuoteDocument) ([]byte, error) {
	m.renders++
	if m.fail {
		return nil, errors.New("render failed")
	}
	return []byte("rendered " + doc.Number), nil
}

// mockMailer records sends and can be set to fail.
type mockMailer struct {
	fail  bool
	sends []mockMailSend
}

type mockMailSend struct {
	To         string
	Subject    string
	Body       string
	Attachment []byte
	Filename   string
}

func (m *mockMailer) SendQuoteEmail(to string, cc []string, subject, body string, attachment []byte, filename string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sends = append(m.sends, mockMailSend{To: to, Subject: subject, Body: body, Attachment: attachment, Filename: filename})
	return nil
}
