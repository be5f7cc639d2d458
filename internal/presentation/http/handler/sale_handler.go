package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kayatek/servis-api/internal/application/service"
	"github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/internal/presentation/http/dto/request"
	"github.com/kayatek/servis-api/internal/presentation/http/dto/response"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// SaleHandler handles sale and commission HTTP requests
type SaleHandler struct {
	settlementService *service.SettlementService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(settlementService *service.SettlementService) *SaleHandler {
	return &SaleHandler{settlementService: settlementService}
}

// ApproveQuote handles converting an approved quote into a sale
// @Summary Approve Quote
// @Description Approve a sent quote and open the resulting sale
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quote ID"
// @Success 201 {object} response.APIResponse
// @Router /quotes/{id}/approve [post]
func (h *SaleHandler) ApproveQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quote ID")
		return
	}

	sale, err := h.settlementService.ApproveQuote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quote approved successfully", sale)
}

// List handles listing sales
// @Summary List Sales
// @Description Get all sales with pagination and filtering
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param completed query bool false "Completion filter"
// @Success 200 {object} response.APIResponse
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: paginationFromQuery(c),
		Search:     c.Query("search"),
	}
	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "Invalid completed filter")
			return
		}
		params.Completed = &completed
	}

	sales, total, err := h.settlementService.ListSales(c.Request.Context(), ScopeUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale
// @Summary Get Sale
// @Description Get a sale with its payments by ID
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param id path string true "Sale ID"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.settlementService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// ApplyPayment handles recording a payment against a sale
// @Summary Apply Payment
// @Description Record a payment; completes the sale and accrues commission when fully paid
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Sale ID"
// @Param request body request.ApplyPaymentRequest true "Payment data"
// @Success 200 {object} response.APIResponse
// @Router /sales/{id}/payments [post]
func (h *SaleHandler) ApplyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid payment amount")
		return
	}

	input := &service.ApplyPaymentInput{Amount: amount}
	if req.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, req.PaidAt)
		if err != nil {
			response.BadRequest(c, "Invalid paid_at timestamp")
			return
		}
		input.PaidAt = paidAt
	}

	sale, err := h.settlementService.ApplyPayment(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment applied successfully", sale)
}

// ListCommissions handles listing commission records
// @Summary List Commissions
// @Description Get accrued commission records filtered by period
// @Tags sales
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param period_month query int false "Accrual month (1-12)"
// @Param period_year query int false "Accrual year"
// @Success 200 {object} response.APIResponse
// @Router /commissions [get]
func (h *SaleHandler) ListCommissions(c *gin.Context) {
	params := &repository.CommissionFilterParams{
		Pagination: paginationFromQuery(c),
	}
	if v := c.Query("period_month"); v != "" {
		month, err := parsePositiveInt(v)
		if err != nil || month > 12 {
			response.BadRequest(c, "Invalid period_month")
			return
		}
		params.PeriodMonth = &month
	}
	if v := c.Query("period_year"); v != "" {
		year, err := parsePositiveInt(v)
		if err != nil {
			response.BadRequest(c, "Invalid period_year")
			return
		}
		params.PeriodYear = &year
	}

	records, total, err := h.settlementService.ListCommissions(c.Request.Context(), ScopeUserID(c), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(records,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Commissions retrieved successfully", result)
}
