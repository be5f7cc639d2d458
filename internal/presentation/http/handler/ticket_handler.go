package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/internal/application/service"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/internal/presentation/http/dto/request"
	"github.com/kayatek/servis-api/internal/presentation/http/dto/response"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// TicketHandler handles service ticket HTTP requests
type TicketHandler struct {
	ticketService *service.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *service.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

func ticketItemsFromRequest(reqItems []request.TicketItemRequest) ([]service.TicketItemInput, error) {
	items := make([]service.TicketItemInput, 0, len(reqItems))
	for _, it := range reqItems {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, err
		}
		item := service.TicketItemInput{
			Kind:     it.Kind,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    price,
		}
		if item.ListPrice, err = parseOptionalDecimal(it.ListPrice); err != nil {
			return nil, err
		}
		if item.DiscountPct, err = parseOptionalDecimal(it.DiscountPct); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Create handles opening a service ticket
// @Summary Create Ticket
// @Description Open a new service ticket with a minted ticket number
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateTicketRequest true "Ticket data"
// @Success 201 {object} response.APIResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := ticketItemsFromRequest(req.Items)
	if err != nil {
		response.BadRequest(c, "Invalid item price: "+err.Error())
		return
	}

	input := &service.CreateTicketInput{
		UserID:       *userID,
		CustomerName: req.CustomerName,
		Product:      req.Product,
		Notes:        req.Notes,
		Items:        items,
	}
	if input.AgreedTotal, err = parseOptionalDecimal(req.AgreedTotal); err != nil {
		response.BadRequest(c, "Invalid agreed total")
		return
	}
	if input.AgreedDiscountPct, err = parseOptionalDecimal(req.AgreedDiscountPct); err != nil {
		response.BadRequest(c, "Invalid agreed discount")
		return
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	ticket, err := h.ticketService.CreateTicket(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Ticket created successfully", ticket)
}

// List handles listing tickets
// @Summary List Tickets
// @Description Get all service tickets with pagination and filtering
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	params := &repository.TicketFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status := enum.TicketStatus(s)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	tickets, total, err := h.ticketService.ListTickets(c.Request.Context(), ScopeUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(tickets,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Tickets retrieved successfully", result)
}

// Get handles getting a single ticket
// @Summary Get Ticket
// @Description Get a ticket with its items by ID
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.APIResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket retrieved successfully", ticket)
}

// Update handles updating a ticket
// @Summary Update Ticket
// @Description Update ticket fields and optionally replace its items
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body request.UpdateTicketRequest true "Ticket data"
// @Success 200 {object} response.APIResponse
// @Router /tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req request.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateTicketInput{
		CustomerName: req.CustomerName,
		Product:      req.Product,
		Notes:        req.Notes,
	}
	if input.AgreedTotal, err = parseOptionalDecimal(req.AgreedTotal); err != nil {
		response.BadRequest(c, "Invalid agreed total")
		return
	}
	if input.AgreedDiscountPct, err = parseOptionalDecimal(req.AgreedDiscountPct); err != nil {
		response.BadRequest(c, "Invalid agreed discount")
		return
	}
	if req.Items != nil {
		if input.Items, err = ticketItemsFromRequest(req.Items); err != nil {
			response.BadRequest(c, "Invalid item price: "+err.Error())
			return
		}
	}

	ticket, err := h.ticketService.UpdateTicket(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket updated successfully", ticket)
}

// Delete handles deleting a ticket
// @Summary Delete Ticket
// @Description Delete a service ticket
// @Tags tickets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 204
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	if err := h.ticketService.DeleteTicket(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// SetStatus handles moving a ticket to a new status
// @Summary Set Ticket Status
// @Description Move the ticket to the requested status; unknown values coerce to OPENED
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body request.SetTicketStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /tickets/{id}/status [put]
func (h *TicketHandler) SetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req request.SetTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticket, err := h.ticketService.SetStatus(c.Request.Context(), id, enum.TicketStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket status updated", ticket)
}

// SendBulkQuote handles quoting a batch of tickets
// @Summary Send Bulk Quote
// @Description Bundle tickets into a single quote, send it, and sweep the tickets to AWAITING_APPROVAL
// @Tags tickets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SendBulkQuoteRequest true "Bulk quote data"
// @Success 200 {object} response.APIResponse
// @Router /tickets/bulk-quote [post]
func (h *TicketHandler) SendBulkQuote(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SendBulkQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ticketIDs := make([]uuid.UUID, 0, len(req.TicketIDs))
	for _, raw := range req.TicketIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid ticket ID: "+raw)
			return
		}
		ticketIDs = append(ticketIDs, id)
	}

	result, err := h.ticketService.SendBulkQuote(c.Request.Context(), &service.SendBulkQuoteInput{
		TicketIDs:    ticketIDs,
		Recipient:    req.Recipient,
		CC:           req.CC,
		CustomerName: req.CustomerName,
		Currency:     req.Currency,
		PaymentTerm:  req.PaymentTerm,
		SentBy:       *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Bulk quote sent successfully"
	if !result.MailSent {
		message = "Bulk quote created, but mail delivery failed"
	}
	response.OK(c, message, gin.H{
		"quote":         result.Quote,
		"mail_sent":     result.MailSent,
		"mail_error":    result.MailError,
		"swept_tickets": result.SweptTickets,
	})
}
