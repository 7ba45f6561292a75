package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/iliri/iliri-api/internal/application/service"
	"github.com/iliri/iliri-api/internal/domain/enum"
	"github.com/iliri/iliri-api/internal/domain/repository"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/request"
	"github.com/iliri/iliri-api/internal/presentation/http/dto/response"
)

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List handles listing articles
// @Summary List articles
// @Tags articles
// @Produce json
// @Param filter query string false "Active, Deleted or All"
// @Param search query string false "Name substring"
// @Success 200 {object} response.APIResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	var filter request.ArticleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	articles, err := h.articleService.ListArticles(c.Request.Context(), &repository.ArticleFilterParams{
		Filter: enum.ParseArticleFilter(filter.Filter),
		Search: filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Page(c, "Articles retrieved successfully", articles, filter.Page, filter.PerPage)
}

// Search returns up to ten selectable articles matching a code or name
func (h *ArticleHandler) Search(c *gin.Context) {
	articles, err := h.articleService.SearchArticles(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Articles retrieved successfully", articles)
}

// LowStock lists articles at or below their minimum stock
func (h *ArticleHandler) LowStock(c *gin.Context) {
	articles, err := h.articleService.ListLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock articles retrieved successfully", articles)
}

// Get handles getting an article by ID
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.articleService.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article retrieved successfully", article)
}

// Create handles creating an article
func (h *ArticleHandler) Create(c *gin.Context) {
	var req request.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), articleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Article created successfully", article)
}

// Update handles the full edit of an article. Saving a deleted article restores it.
func (h *ArticleHandler) Update(c *gin.Context) {
	var req request.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("id"), articleInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article updated successfully", article)
}

// Patch handles the inline edit of one numeric column
func (h *ArticleHandler) Patch(c *gin.Context) {
	var req request.PatchArticleFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.PatchArticle(c.Request.Context(), c.Param("id"), req.Field, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article updated successfully", article)
}

// Delete handles soft-deleting an article
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article deleted successfully", nil)
}

func articleInput(req *request.ArticleRequest) *service.ArticleInput {
	return &service.ArticleInput{
		Name:         req.Name,
		Code1:        req.Code1,
		Code2:        req.Code2,
		Cost:         req.Cost,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
		Price1:       req.Price1,
		Price2:       req.Price2,
		Price3:       req.Price3,
		SupplierID:   req.SupplierID,
		Unit:         req.Unit,
		Active:       req.Active,
	}
}
