package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"stagelink-backend/internal/domains/show/model"
	"stagelink-backend/internal/domains/show/service"
	"stagelink-backend/internal/shared/middleware"
	"stagelink-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxPosterUpload bounds the multipart read before image validation runs
const maxPosterUpload = 10 << 20

type ProducerHandler struct {
	service service.ServiceInterface
}

func NewProducerHandler(svc service.ServiceInterface) *ProducerHandler {
	return &ProducerHandler{service: svc}
}

// Create handles POST /producer/shows. The body is multipart: a "data"
// field holding the JSON draft and an optional "poster" file.
func (h *ProducerHandler) Create(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	req, poster, err := parseShowForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	show, err := h.service.Create(c.Request.Context(), producerID, req, poster)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, show)
}

// Update handles PUT /producer/shows/:id
func (h *ProducerHandler) Update(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}

	req, poster, err := parseShowForm(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	show, err := h.service.Update(c.Request.Context(), producerID, showID, req, poster)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, show)
}

// GetForEdit handles GET /producer/shows/:id/edit
func (h *ProducerHandler) GetForEdit(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}

	form, err := h.service.GetForEdit(c.Request.Context(), producerID, showID)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, form)
}

// List handles GET /producer/shows
func (h *ProducerHandler) List(c *gin.Context) {
	producerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	shows, err := h.service.ListByProducer(c.Request.Context(), producerID)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, shows)
}

// parseShowForm reads the multipart draft: JSON in "data", optional
// poster bytes in "poster".
func parseShowForm(c *gin.Context) (*model.ShowRequest, []byte, error) {
	data := c.PostForm("data")
	if data == "" {
		return nil, nil, errors.New("missing data field")
	}

	var req model.ShowRequest
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		return nil, nil, errors.New("invalid show payload")
	}

	file, err := c.FormFile("poster")
	if err != nil {
		// Poster is optional
		return &req, nil, nil
	}
	if file.Size > maxPosterUpload {
		return nil, nil, errors.New("poster file too large")
	}

	f, err := file.Open()
	if err != nil {
		return nil, nil, errors.New("failed to read poster")
	}
	defer f.Close()

	poster, err := io.ReadAll(io.LimitReader(f, maxPosterUpload))
	if err != nil {
		return nil, nil, errors.New("failed to read poster")
	}

	return &req, poster, nil
}

// respondShowError maps domain errors onto the response envelope
func respondShowError(c *gin.Context, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.BadRequest(c, validationErr.Message)
	case errors.Is(err, model.ErrShowNotFound):
		response.NotFound(c, "show not found")
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "you do not own this show")
	case errors.Is(err, model.ErrShowDeleted),
		errors.Is(err, model.ErrShowNotDeleted),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrShowNotApproved),
		errors.Is(err, model.ErrBroadcastInFlight):
		response.Conflict(c, err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
