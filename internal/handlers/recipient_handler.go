package handlers

import (
	"net/http"

	"organmatch_backend/internal/services"
	"organmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type RecipientHandler struct {
	*BaseHandler
	recipientService services.RecipientService
}

func NewRecipientHandler(base *BaseHandler, recipientService services.RecipientService) *RecipientHandler {
	return &RecipientHandler{
		BaseHandler:      base,
		recipientService: recipientService,
	}
}

func (h *RecipientHandler) RegisterRoutes(r *gin.RouterGroup) {
	recipients := r.Group("/recipients")
	{
		recipients.POST("", h.Create)
		recipients.GET("", h.Search)
		recipients.GET("/:recipientId", h.GetByID)
		recipients.PUT("/:recipientId", h.Update)
		recipients.DELETE("/:recipientId", h.Deactivate)
	}
}

func (h *RecipientHandler) Create(c *gin.Context) {
	var req dto.CreateRecipientRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	recipient, err := h.recipientService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipient)
}

func (h *RecipientHandler) GetByID(c *gin.Context) {
	recipient, err := h.recipientService.GetByID(c.Param("recipientId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipient)
}

func (h *RecipientHandler) Update(c *gin.Context) {
	var req dto.UpdateRecipientRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	recipient, err := h.recipientService.Update(c.Param("recipientId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipient)
}

func (h *RecipientHandler) Deactivate(c *gin.Context) {
	if err := h.recipientService.Deactivate(c.Param("recipientId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "inactive"})
}

func (h *RecipientHandler) Search(c *gin.Context) {
	var query dto.RecipientSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	if query.Page == 0 || query.PageSize == 0 {
		query.Page, query.PageSize = ParsePagination(c)
	}

	recipients, total, err := h.recipientService.Search(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipients": recipients,
		"total":      total,
		"page":       query.Page,
		"page_size":  query.PageSize,
	})
}
