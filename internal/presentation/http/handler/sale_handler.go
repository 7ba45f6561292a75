package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// SaleHandler handles sale and payment HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales, newest first
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	sales, err := h.saleService.ListSales(c.Request.Context(), &repository.SaleFilterParams{
		ClientID: filter.ClientID,
		Username: filter.Username,
		Search:   filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Sales retrieved successfully", sales, filter.Page, filter.PerPage)
}

// Get handles getting a sale by ID together with its payment status
func (h *SaleHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	sale, err := h.saleService.GetSale(ctx, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.saleService.PaymentStatus(ctx, sale.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", gin.H{
		"sale":          sale,
		"paymentStatus": status,
	})
}

// Create handles recording a sale
// @Summary Record sale
// @Description Record a sale, decrease stock and remember the prices used for the client
// @Tags sales
// @Accept json
// @Produce json
// @Param request body request.SaleRequest true "Sale details"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateSaleInput{
		Username:        GetUsername(c),
		ClientID:        req.ClientID,
		ClientReference: req.ClientReference,
		Date:            req.Date,
		Paid:            req.Paid,
		PaidAmount:      req.PaidAmount,
		Items:           make([]service.SaleItemInput, len(req.Items)),
	}
	for i, item := range req.Items {
		input.Items[i] = service.SaleItemInput{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			PriceType: item.PriceType,
			UnitPrice: item.UnitPrice,
		}
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", sale)
}

// UpdateReference sets or clears the client reference of a sale
func (h *SaleHandler) UpdateReference(c *gin.Context) {
	var req request.SaleReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, err := h.saleService.UpdateSaleReference(c.Request.Context(), c.Param("id"), req.ClientReference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Delete handles deleting a sale and restoring its stock
func (h *SaleHandler) Delete(c *gin.Context) {
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale deleted successfully", nil)
}

// ListPayments lists the payments of a sale, newest first
func (h *SaleHandler) ListPayments(c *gin.Context) {
	payments, err := h.saleService.ListPayments(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// RecordPayment handles a payment towards a sale
func (h *SaleHandler) RecordPayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	sale, payment, err := h.saleService.RecordPayment(c.Request.Context(), c.Param("id"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", gin.H{
		"sale":    sale,
		"payment": payment,
	})
}

// Settle pays the remaining balance of a sale in full
func (h *SaleHandler) Settle(c *gin.Context) {
	sale, err := h.saleService.SettleSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale settled successfully", sale)
}

// LastUsedPrice returns the last price charged to a client for an article
func (h *SaleHandler) LastUsedPrice(c *gin.Context) {
	clientID, articleID := c.Query("client_id"), c.Query("article_id")
	if clientID == "" || articleID == "" {
		response.BadRequest(c, "client_id and article_id are required")
		return
	}

	price, err := h.saleService.GetLastUsedPrice(c.Request.Context(), clientID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if price == nil {
		response.NotFound(c, "No price recorded for this client and article")
		return
	}

	response.OK(c, "Last used price retrieved successfully", price)
}
