// Package media fetches image assets through a shared cache.
package media

import (
	"context"
	"errors"

	"github.com/cwmarketing/loyalty-go/internal/transport"
	"github.com/cwmarketing/loyalty-go/pkg/cache"
	pkgerrors "github.com/cwmarketing/loyalty-go/pkg/errors"
	"github.com/cwmarketing/loyalty-go/pkg/logger"
	"github.com/cwmarketing/loyalty-go/pkg/models"
)

type Service struct {
	api   *transport.Client
	cache *cache.Client
	logg  *logger.Logger
}

// New builds the media service. cache may be nil; every fetch then goes
// to the CDN.
func New(api *transport.Client, cacheClient *cache.Client, logg *logger.Logger) *Service {
	return &Service{api: api, cache: cacheClient, logg: logg}
}

// Image returns the image bytes, serving from the cache when possible.
// The content hash keys the cache so a re-uploaded image is fetched
// fresh.
func (s *Service) Image(ctx context.Context, image *models.Image) ([]byte, error) {
	if image == nil || image.Body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image has no url")
	}

	key := s.cache.ImageKey(cacheID(image))
	if data, err := s.cache.Get(ctx, key); err == nil {
		return data, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logg.Warn(ctx, "image cache read failed")
	}

	data, err := s.api.GetRaw(ctx, image.Body)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logg.Warn(ctx, "image cache write failed")
	}
	return data, nil
}

func cacheID(image *models.Image) string {
	if image.Hash != nil && *image.Hash != "" {
		return *image.Hash
	}
	return image.Body
}
