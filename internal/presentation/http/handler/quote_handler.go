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

// QuoteHandler handles quote-related HTTP requests
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func quoteLinesFromRequest(reqLines []request.QuoteLineRequest) ([]service.QuoteLineInput, error) {
	lines := make([]service.QuoteLineInput, 0, len(reqLines))
	for _, l := range reqLines {
		listPrice, err := decimal.NewFromString(l.ListPrice)
		if err != nil {
			return nil, err
		}
		discount := decimal.Zero
		if l.DiscountPct != "" {
			if discount, err = decimal.NewFromString(l.DiscountPct); err != nil {
				return nil, err
			}
		}
		lines = append(lines, service.QuoteLineInput{
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			ListPrice:   listPrice,
			DiscountPct: discount,
		})
	}
	return lines, nil
}

// Create handles creating a quote
// @Summary Create Quote
// @Description Create a new draft quote with a minted document number
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateQuoteRequest true "Quote data"
// @Success 201 {object} response.APIResponse
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lines, err := quoteLinesFromRequest(req.Lines)
	if err != nil {
		response.BadRequest(c, "Invalid line price: "+err.Error())
		return
	}

	overrideTotal, err := parseOptionalDecimal(req.OverrideTotal)
	if err != nil {
		response.BadRequest(c, "Invalid override total")
		return
	}
	overrideDiscount, err := parseOptionalDecimal(req.OverrideDiscountPct)
	if err != nil {
		response.BadRequest(c, "Invalid override discount")
		return
	}

	input := &service.CreateQuoteInput{
		UserID:              *userID,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		Currency:            req.Currency,
		PaymentTerm:         req.PaymentTerm,
		Note:                req.Note,
		OverrideTotal:       overrideTotal,
		OverrideDiscountPct: overrideDiscount,
		Lines:               lines,
	}
	if req.CustomerID != nil {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		input.CustomerID = &customerID
	}

	quote, err := h.quoteService.CreateQuote(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote created successfully", quote)
}

// List handles listing quotes
// @Summary List Quotes
// @Description Get all quotes with pagination and filtering
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter (Draft, Sent, Approved)"
// @Success 200 {object} response.APIResponse
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	params := &repository.QuoteFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}

	if s := c.Query("status"); s != "" {
		var status enum.QuoteStatus
		switch s {
		case "Draft":
			status = enum.QuoteStatusDraft
		case "Sent":
			status = enum.QuoteStatusSent
		case "Approved":
			status = enum.QuoteStatusApproved
		default:
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	quotes, total, err := h.quoteService.ListQuotes(c.Request.Context(), ScopeUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(quotes,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Quotes retrieved successfully", result)
}

// Get handles getting a single quote
// @Summary Get Quote
// @Description Get a quote with its lines by ID
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", quote)
}

// Update handles updating a quote
// @Summary Update Quote
// @Description Update a quote that has not been approved
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.UpdateQuoteRequest true "Quote data"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateQuoteInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Currency:      req.Currency,
		PaymentTerm:   req.PaymentTerm,
		Note:          req.Note,
	}
	if input.OverrideTotal, err = parseOptionalDecimal(req.OverrideTotal); err != nil {
		response.BadRequest(c, "Invalid override total")
		return
	}
	if input.OverrideDiscountPct, err = parseOptionalDecimal(req.OverrideDiscountPct); err != nil {
		response.BadRequest(c, "Invalid override discount")
		return
	}
	if req.Lines != nil {
		if input.Lines, err = quoteLinesFromRequest(req.Lines); err != nil {
			response.BadRequest(c, "Invalid line price: "+err.Error())
			return
		}
	}

	quote, err := h.quoteService.UpdateQuote(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote updated successfully", quote)
}

// Delete handles deleting a quote
// @Summary Delete Quote
// @Description Delete a quote that has not been approved
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 204
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.DeleteQuote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Send handles sending a quote to the customer
// @Summary Send Quote
// @Description Render the quote document, mark the quote sent, archive and email it
// @Tags quotes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body request.SendQuoteRequest true "Send options"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/send [post]
func (h *QuoteHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	var req request.SendQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.quoteService.SendQuote(c.Request.Context(), id, &service.SendQuoteInput{
		Recipient: req.Recipient,
		CC:        req.CC,
		SentBy:    *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Quote sent successfully"
	if !result.MailSent {
		message = "Quote marked sent, but mail delivery failed"
	}
	response.OK(c, message, gin.H{
		"quote":      result.Quote,
		"mail_sent":  result.MailSent,
		"mail_error": result.MailError,
	})
}

// ListSent handles listing the send archive for a quote
// @Summary Quote Send History
// @Description List the archived send records of a quote
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} response.APIResponse
// @Router /quotes/{id}/sent [get]
func (h *QuoteHandler) ListSent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	records, err := h.quoteService.ListSentQuotes(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Send history retrieved successfully", records)
}

// ListArchive handles listing the full send archive
// @Summary Send Archive
// @Description List all archived quote sends, newest first
// @Tags quotes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} response.APIResponse
// @Router /quotes/archive [get]
func (h *QuoteHandler) ListArchive(c *gin.Context) {
	params := paginationFromQuery(c)

	records, total, err := h.quoteService.ListArchive(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(records,
		pagination.NewPagination(params.Page, params.PerPage, total))
	response.SuccessWithPagination(c, 200, "Archive retrieved successfully", result)
}
