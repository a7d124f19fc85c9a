package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

const announcementsCacheKey = "registrar:announcements"

type announcementRepository interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
}

// AnnouncementService serves the read-only broadcast feed. Listing is
// best-effort for the dashboard: callers render the rest of the page even
// when this fails.
type AnnouncementService struct {
	repo     announcementRepository
	cache    registryCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnnouncementService constructs the service. Cache may be nil.
func NewAnnouncementService(repo announcementRepository, cache registryCache, cacheTTL time.Duration, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// List returns the full active set, newest first.
func (s *AnnouncementService) List(ctx context.Context) ([]models.Announcement, error) {
	if s.cache != nil {
		cached := []models.Announcement{}
		if err := s.cache.Get(ctx, announcementsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	announcements, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	if announcements == nil {
		announcements = []models.Announcement{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, announcementsCacheKey, announcements, s.cacheTTL); err != nil {
			s.logger.Warn("announcement cache write failed", zap.Error(err))
		}
	}
	return announcements, nil
}
