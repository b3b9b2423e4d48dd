package handler

import (
	"fmt"
	"net/http"
	"time"

	"stagelink-backend/internal/domains/payment/model"
	"stagelink-backend/internal/domains/payment/service"
	"stagelink-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	service service.ServiceInterface
}

func NewAdminHandler(svc service.ServiceInterface) *AdminHandler {
	return &AdminHandler{service: svc}
}

func reviewFilter(c *gin.Context) (model.ReviewFilter, error) {
	filter := model.ReviewFilter{
		Status: c.DefaultQuery("status", "pending"),
	}

	if raw := c.Query("show_id"); raw != "" {
		showID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid show id")
		}
		filter.ShowID = &showID
	}

	return filter, nil
}

// List handles GET /admin/payments?status=pending&show_id=...
func (h *AdminHandler) List(c *gin.Context) {
	filter, err := reviewFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payments, err := h.service.ListForReview(c.Request.Context(), filter)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

// Approve handles POST /admin/payments/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}

	if err := h.service.Approve(c.Request.Context(), paymentID); err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": paymentID, "status": model.PaymentApproved})
}

// Reject handles POST /admin/payments/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}

	if err := h.service.Reject(c.Request.Context(), paymentID); err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": paymentID, "status": model.PaymentRejected})
}

// ProofURL handles GET /admin/payments/:id/proof, minting a fresh
// presigned link for the stored proof image
func (h *AdminHandler) ProofURL(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment id")
		return
	}

	url, err := h.service.ProofURL(c.Request.Context(), paymentID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"proof_url": url})
}

// Export handles GET /admin/payments/export, streaming the review queue
// as an xlsx download
func (h *AdminHandler) Export(c *gin.Context) {
	filter, err := reviewFilter(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	workbook, err := h.service.ExportReview(c.Request.Context(), filter)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	filename := fmt.Sprintf("payments-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
