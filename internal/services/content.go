package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jrf25906/perspective-app-sub000/internal/models"
	"github.com/jrf25906/perspective-app-sub000/internal/repository"
)

// ErrContentNotFound is returned when a view references a content item id
// that does not exist.
var ErrContentNotFound = errors.New("content item not found")

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// ContentService serves the reading feed and records consumption. Each view
// denormalizes the item's bias rating onto the activity row, so the Echo
// Score's diversity window never joins back to the content table.
type ContentService struct {
	log *zap.Logger
}

func NewContentService(log *zap.Logger) *ContentService {
	return &ContentService{log: log}
}

// Feed returns active content, newest first. Limits outside [1, 100] fall
// back to the default page size.
func (s *ContentService) Feed(ctx context.Context, limit, offset int) ([]models.ContentItem, error) {
	if limit <= 0 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return repository.ListActiveContent(ctx, limit, offset)
}

// RecordView logs that the user consumed one content item.
func (s *ContentService) RecordView(ctx context.Context, userID, contentID uint) error {
	item, err := repository.GetContentItemByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	activity := &models.ContentActivity{
		UserID:        userID,
		ContentItemID: item.ID,
		BiasRating:    item.BiasRating,
		ViewedAt:      time.Now(),
	}
	if err := repository.CreateContentActivity(ctx, activity); err != nil {
		return err
	}

	s.log.Debug("Content view recorded",
		zap.Uint("userID", userID),
		zap.Uint("contentID", contentID),
		zap.Float64("biasRating", item.BiasRating),
	)
	return nil
}
