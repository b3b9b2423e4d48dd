package handler

import (
	"errors"
	"io"
	"net/http"

	"stagelink-backend/internal/domains/payment/model"
	"stagelink-backend/internal/domains/payment/service"
	showmodel "stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/shared/middleware"
	"stagelink-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxProofUpload = 10 << 20

type CheckoutHandler struct {
	service service.ServiceInterface
}

func NewCheckoutHandler(svc service.ServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{service: svc}
}

// Checkout handles POST /checkout. The route sits behind optional auth:
// authenticated users pay under their account, anonymous callers must
// fill in the guest fields. The body is multipart with a "proof" file.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	req := model.CheckoutRequest{
		GuestName:  c.PostForm("guest_name"),
		GuestEmail: c.PostForm("guest_email"),
	}

	showID, err := uuid.Parse(c.PostForm("show_id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}
	req.ShowID = showID

	proof, err := readProof(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	result, err := h.service.Checkout(c.Request.Context(), userID, &req, proof)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ListMine handles GET /payments, the authenticated payer's history
func (h *CheckoutHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	payments, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

func readProof(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("proof")
	if err != nil {
		return nil, model.ErrMissingProof
	}
	if file.Size > maxProofUpload {
		return nil, errors.New("proof file too large")
	}

	f, err := file.Open()
	if err != nil {
		return nil, errors.New("failed to read proof")
	}
	defer f.Close()

	proof, err := io.ReadAll(io.LimitReader(f, maxProofUpload))
	if err != nil {
		return nil, errors.New("failed to read proof")
	}
	return proof, nil
}

func respondPaymentError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, validationErr.Message)
	case errors.Is(err, model.ErrMissingProof),
		errors.Is(err, model.ErrGuestInfoMissing),
		errors.Is(err, model.ErrNoReservationFee):
		response.BadRequest(c, err.Error())
	case errors.Is(err, model.ErrPaymentNotFound),
		errors.Is(err, showmodel.ErrShowNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrAlreadyReviewed),
		errors.Is(err, showmodel.ErrShowDeleted),
		errors.Is(err, showmodel.ErrShowNotApproved):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
