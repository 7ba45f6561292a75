package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/domain/entity"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
	"github.com/iliri/iliri-api/pkg/apperror"
)

// ReceiptHandler handles receipt printing requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetStatus returns the printer connection status
func (h *ReceiptHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.GetStatus(c.Request.Context()))
}

// PrintSale prints the receipt of a sale
func (h *ReceiptHandler) PrintSale(c *gin.Context) {
	receipt, err := h.receiptService.PrintSaleReceipt(c.Request.Context(), c.Param("id"))
	h.respond(c, receipt, err)
}

// PrintPurchase prints the receipt of a purchase
func (h *ReceiptHandler) PrintPurchase(c *gin.Context) {
	receipt, err := h.receiptService.PrintPurchaseReceipt(c.Request.Context(), c.Param("id"))
	h.respond(c, receipt, err)
}

func (h *ReceiptHandler) respond(c *gin.Context, receipt *entity.Receipt, err error) {
	if err != nil {
		// a built receipt means only the printer failed
		if receipt != nil && !apperror.IsAppError(err) {
			response.Warning(c, "Receipt generated but printing failed", gin.H{"receipt": receipt}, err)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}
