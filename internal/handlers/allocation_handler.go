package handlers

import (
	"net/http"

	"organmatch_backend/internal/services"
	"organmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AllocationHandler struct {
	*BaseHandler
	allocationService services.AllocationService
}

func NewAllocationHandler(base *BaseHandler, allocationService services.AllocationService) *AllocationHandler {
	return &AllocationHandler{
		BaseHandler:       base,
		allocationService: allocationService,
	}
}

func (h *AllocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	allocations := r.Group("/allocations")
	{
		allocations.POST("", h.Create)
		allocations.GET("", h.List)
		allocations.GET("/:allocationId", h.GetByID)
		allocations.PATCH("/:allocationId/status", h.UpdateStatus)
	}
}

func (h *AllocationHandler) Create(c *gin.Context) {
	var req dto.CreateAllocationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	allocation, err := h.allocationService.CreateFromMatch(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, allocation)
}

func (h *AllocationHandler) GetByID(c *gin.Context) {
	allocation, err := h.allocationService.GetByID(c.Param("allocationId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

func (h *AllocationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateAllocationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	allocation, err := h.allocationService.UpdateStatus(c.Param("allocationId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, allocation)
}

func (h *AllocationHandler) List(c *gin.Context) {
	var query dto.AllocationSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	if query.Page == 0 || query.PageSize == 0 {
		query.Page, query.PageSize = ParsePagination(c)
	}

	allocations, total, err := h.allocationService.List(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"allocations": allocations,
		"total":       total,
		"page":        query.Page,
		"page_size":   query.PageSize,
	})
}
