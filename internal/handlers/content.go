package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/services"
)

type ContentHandler struct {
	log     *zap.Logger
	content *services.ContentService
}

func NewContentHandler(log *zap.Logger, content *services.ContentService) *ContentHandler {
	return &ContentHandler{log: log, content: content}
}

type contentItemView struct {
	ID          uint      `json:"id"`
	Headline    string    `json:"headline"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary,omitempty"`
	Topics      []string  `json:"topics"`
	BiasRating  float64   `json:"biasRating"`
	PublishedAt time.Time `json:"publishedAt"`
}

func contentItemViewOf(item models.ContentItem) contentItemView {
	return contentItemView{
		ID:          item.ID,
		Headline:    item.Headline,
		Source:      item.Source,
		URL:         item.URL,
		Summary:     item.Summary,
		Topics:      []string(item.Topics),
		BiasRating:  item.BiasRating,
		PublishedAt: item.PublishedAt,
	}
}

// Feed serves active content, newest first.
func (h *ContentHandler) Feed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.content.Feed(c, limit, offset)
	if err != nil {
		h.log.Error("Failed to load content feed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load feed"})
		return
	}

	views := make([]contentItemView, len(items))
	for i, item := range items {
		views[i] = contentItemViewOf(item)
	}
	c.JSON(http.StatusOK, gin.H{"items": views})
}

// RecordView logs that the user read one content item. The recorded bias
// rating feeds the Echo Score's diversity window.
func (h *ContentHandler) RecordView(c *gin.Context) {
	userID := MustUserID(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid content id"})
		return
	}

	if err := h.content.RecordView(c, userID, uint(id)); err != nil {
		if errors.Is(err, services.ErrContentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "content item not found"})
			return
		}
		h.log.Error("Failed to record content view",
			zap.Uint("userID", userID),
			zap.Uint64("contentID", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
