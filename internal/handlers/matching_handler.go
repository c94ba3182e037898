package handlers

import (
	"net/http"

	"organmatch_backend/internal/services"
	"organmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService services.MatchingService
}

func NewMatchingHandler(base *BaseHandler, matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:     base,
		matchingService: matchingService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	matching := r.Group("/matching")
	{
		matching.GET("/donors/:donorId/recipients", h.FindMatches)
		matching.GET("/donors/:donorId/viability", h.GetDonorViability)
		matching.GET("/donors/:donorId/eligibility", h.CheckDonorEligibility)
		matching.GET("/compatibility", h.GetCompatibility)
		matching.GET("/policy", h.GetPolicy)
	}
}

// FindMatches ranks the active waitlist for the donor's primary organ.
func (h *MatchingHandler) FindMatches(c *gin.Context) {
	donorID := c.Param("donorId")

	limit := ParseQueryInt(c, "limit", 0)
	if limit < 0 || limit > 100 {
		limit = 0
	}
	minScore := ParseQueryFloat(c, "min_score", 0)
	if minScore < 0 || minScore > 100 {
		minScore = 0
	}

	matches, err := h.matchingService.FindMatchesForDonor(donorID, limit, minScore)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"total":   len(matches),
	})
}

func (h *MatchingHandler) GetCompatibility(c *gin.Context) {
	donorID := c.Query("donor_id")
	recipientID := c.Query("recipient_id")
	if donorID == "" || recipientID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("donor_id and recipient_id query parameters are required"))
		return
	}

	result, err := h.matchingService.GetCompatibility(donorID, recipientID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) GetDonorViability(c *gin.Context) {
	status, err := h.matchingService.GetDonorViability(c.Param("donorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *MatchingHandler) CheckDonorEligibility(c *gin.Context) {
	result, err := h.matchingService.CheckDonorEligibility(c.Param("donorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *MatchingHandler) GetPolicy(c *gin.Context) {
	view, err := h.matchingService.GetMatchingPolicy()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
