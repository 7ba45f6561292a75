package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases, newest first
func (h *PurchaseHandler) List(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	purchases, err := h.purchaseService.ListPurchases(c.Request.Context(), &repository.PurchaseFilterParams{
		SupplierID: filter.SupplierID,
		Username:   filter.Username,
		Search:     filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Purchases retrieved successfully", purchases, filter.Page, filter.PerPage)
}

// Get handles getting a purchase by ID
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// Create handles recording a purchase
// @Summary Record purchase
// @Description Record a purchase, increase stock and update article costs
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body request.PurchaseRequest true "Purchase details"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreatePurchaseInput{
		Username:   GetUsername(c),
		SupplierID: req.SupplierID,
		Date:       req.Date,
		Items:      make([]service.PurchaseItemInput, len(req.Items)),
	}
	for i, item := range req.Items {
		input.Items[i] = service.PurchaseItemInput{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}

	purchase, err := h.purchaseService.RecordPurchase(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", purchase)
}

// Delete handles deleting a purchase. Stock is left as it is.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	if err := h.purchaseService.DeletePurchase(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase deleted successfully", nil)
}
