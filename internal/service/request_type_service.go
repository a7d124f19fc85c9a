package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/teamsyntaxerror/selyo-api/internal/models"
	appErrors "github.com/teamsyntaxerror/selyo-api/pkg/errors"
)

const requestTypesCacheKey = "registrar:request_types"

type requestTypeRepository interface {
	List(ctx context.Context) ([]models.RequestType, error)
}

type registryCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// RequestTypeService serves the request-type catalog. When the catalog store
// is unreachable it falls back to a built-in default set so submission stays
// usable; the fallback contains only non-appointment types.
type RequestTypeService struct {
	repo     requestTypeRepository
	cache    registryCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewRequestTypeService constructs the service. Cache may be nil.
func NewRequestTypeService(repo requestTypeRepository, cache registryCache, cacheTTL time.Duration, logger *zap.Logger) *RequestTypeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestTypeService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// GetTypes returns the catalog keyed by type key. Clients order entries by
// the Position field of each entry.
func (s *RequestTypeService) GetTypes(ctx context.Context) (map[string]models.RequestType, error) {
	if s.cache != nil {
		cached := map[string]models.RequestType{}
		if err := s.cache.Get(ctx, requestTypesCacheKey, &cached); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("request type catalog unreachable, serving fallback", zap.Error(err))
		return fallbackTypes(), nil
	}

	types := make(map[string]models.RequestType, len(rows))
	for _, row := range rows {
		types[row.Key] = row
	}
	if len(types) == 0 {
		return fallbackTypes(), nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, requestTypesCacheKey, types, s.cacheTTL); err != nil {
			s.logger.Warn("request type cache write failed", zap.Error(err))
		}
	}
	return types, nil
}

// Resolve returns the catalog entry for a key, or a Validation error when the
// key is not sanctioned by the registry.
func (s *RequestTypeService) Resolve(ctx context.Context, key string) (*models.RequestType, error) {
	types, err := s.GetTypes(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := types[key]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown request type")
	}
	return &entry, nil
}

// fallbackTypes mirrors the portal's built-in defaults. It deliberately
// contains no appointment-requiring types: those must come from the catalog.
func fallbackTypes() map[string]models.RequestType {
	return map[string]models.RequestType{
		"TOR":      {Key: "TOR", Label: "Transcript of Records", RequiredDocuments: []string{}, Position: 1},
		"Shifting": {Key: "Shifting", Label: "Program Shifting", RequiredDocuments: []string{}, Position: 2},
		"Add/Drop": {Key: "Add/Drop", Label: "Add/Drop Form", RequiredDocuments: []string{}, Position: 3},
	}
}
