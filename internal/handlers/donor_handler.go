package handlers

import (
	"net/http"

	"organmatch_backend/internal/models"
	"organmatch_backend/internal/repositories"
	"organmatch_backend/internal/services"
	"organmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type DonorHandler struct {
	*BaseHandler
	donorService services.DonorService
}

func NewDonorHandler(base *BaseHandler, donorService services.DonorService) *DonorHandler {
	return &DonorHandler{
		BaseHandler:  base,
		donorService: donorService,
	}
}

func (h *DonorHandler) RegisterRoutes(r *gin.RouterGroup) {
	donors := r.Group("/donors")
	{
		donors.POST("", h.Create)
		donors.GET("", h.List)
		donors.GET("/:donorId", h.GetByID)
		donors.PUT("/:donorId", h.Update)
		donors.DELETE("/:donorId", h.Withdraw)
	}
}

func (h *DonorHandler) Create(c *gin.Context) {
	var req dto.CreateDonorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	donor, err := h.donorService.Create(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, donor)
}

func (h *DonorHandler) GetByID(c *gin.Context) {
	donor, err := h.donorService.GetByID(c.Param("donorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, donor)
}

func (h *DonorHandler) Update(c *gin.Context) {
	var req dto.UpdateDonorRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	donor, err := h.donorService.Update(c.Param("donorId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, donor)
}

// Withdraw takes the donor off the registry without deleting the record.
func (h *DonorHandler) Withdraw(c *gin.Context) {
	if err := h.donorService.Withdraw(c.Param("donorId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "withdrawn"})
}

func (h *DonorHandler) List(c *gin.Context) {
	page, pageSize := ParsePagination(c)
	criteria := repositories.DonorFilter{
		BloodType: c.Query("blood_type"),
		Organ:     c.Query("organ"),
		Status:    models.DonorStatus(c.Query("status")),
		Page:      page,
		PageSize:  pageSize,
	}

	donors, total, err := h.donorService.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"donors":    donors,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
