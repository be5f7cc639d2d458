package enum

// TicketStatus is the fixed status vocabulary of a service ticket.
// Unlike QuoteStatus there is no adjacency enforcement: any member of the
// set is accepted, and invalid values are coerced to Opened by the service
// layer rather than rejected.
type TicketStatus string

const (
	TicketStatusOpened           TicketStatus = "OPENED"
	TicketStatusAwaitingApproval TicketStatus = "AWAITING_APPROVAL"
	TicketStatusAwaitingQuote    TicketStatus = "AWAITING_QUOTE"
	TicketStatusQuoteSent        TicketStatus = "QUOTE_SENT"
	TicketStatusInProgress       TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted        TicketStatus = "COMPLETED"
)

var ticketStatuses = map[TicketStatus]struct{}{
	TicketStatusOpened:           {},
	TicketStatusAwaitingApproval: {},
	TicketStatusAwaitingQuote:    {},
	TicketStatusQuoteSent:        {},
	TicketStatusInProgress:       {},
	TicketStatusCompleted:        {},
}

// IsValid reports whether s is a member of the ticket status vocabulary.
func (s TicketStatus) IsValid() bool {
	_, ok := ticketStatuses[s]
	return ok
}

func (s TicketStatus) String() string {
	return string(s)
}
