package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients. unpaid=true keeps clients with unpaid sales.
func (h *ClientHandler) List(c *gin.Context) {
	var filter request.PartyFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), &repository.PartyFilterParams{
		Search:          filter.Search,
		Active:          filter.Active,
		WithUnpaidSales: filter.Unpaid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Clients retrieved successfully", clients, filter.Page, filter.PerPage)
}

// Get handles getting a client by ID
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Create handles creating a client. The code is generated.
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), clientInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	var req request.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), c.Param("id"), clientInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles soft-deleting a client
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.clientService.DeleteClient(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deleted successfully", nil)
}

func clientInput(req *request.ClientRequest) *service.ClientInput {
	return &service.ClientInput{
		Name:      req.Name,
		Telephone: req.Telephone,
		Email:     req.Email,
		Address:   req.Address,
		Active:    req.Active,
	}
}
