package handler

import (
	"net/http"
	"strconv"
	"time"

	"stagelink-backend/internal/domains/show/service"
	"stagelink-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PublicHandler struct {
	feed service.FeedInterface
}

func NewPublicHandler(feed service.FeedInterface) *PublicHandler {
	return &PublicHandler{feed: feed}
}

// Browse handles GET /shows. Query parameters mirror the directory's
// filter bar: q, city, genre, tab, from, pages, refresh.
func (h *PublicHandler) Browse(c *gin.Context) {
	filter := service.FeedFilter{
		Query: c.Query("q"),
		City:  c.Query("city"),
		Genre: c.Query("genre"),
		Tab:   service.FeedTab(c.DefaultQuery("tab", string(service.TabUpcoming))),
	}

	switch filter.Tab {
	case service.TabUpcoming, service.TabOngoing, service.TabPast:
	default:
		response.BadRequest(c, "unknown tab")
		return
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			response.BadRequest(c, "invalid from date")
			return
		}
		filter.FromDate = &t
	}

	pages := 1
	if raw := c.Query("pages"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "invalid pages value")
			return
		}
		pages = n
	}

	page, err := h.feed.Browse(c.Request.Context(), filter, pages, c.Query("refresh") == "true")
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, page.Shows, &response.Meta{
		Page:  pages,
		Limit: service.PageSize,
		Total: page.Total,
	})
}

// Get handles GET /shows/:id. Only approved, non-deleted shows are
// visible on the public surface.
func (h *PublicHandler) Get(c *gin.Context) {
	showID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid show id")
		return
	}

	show, err := h.feed.GetApproved(c.Request.Context(), showID)
	if err != nil {
		respondShowError(c, err)
		return
	}

	response.Success(c, http.StatusOK, show)
}
