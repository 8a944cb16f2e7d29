// util/cache_service.go

package util

import (
	"context"
	"time"

	"github.com/fleetgate/gatekeeper/db"
	"github.com/fleetgate/gatekeeper/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error) {
	return db.GetCachedProfile(ctx, userID)
}

func (c *CacheService) SetProfile(ctx context.Context, profile model.UserPermissionProfile) error {
	return db.CacheProfile(ctx, &profile)
}

func (c *CacheService) DeleteProfile(ctx context.Context, userID string) error {
	return db.DeleteCachedProfile(ctx, userID)
}

func (c *CacheService) GetDecision(ctx context.Context, request model.AccessRequest, lastUpdated time.Time) (*model.AccessResult, error) {
	return db.GetCachedDecision(ctx, request, lastUpdated)
}

func (c *CacheService) SetDecision(ctx context.Context, request model.AccessRequest, lastUpdated time.Time, result model.AccessResult) error {
	return db.CacheDecision(ctx, request, lastUpdated, result)
}
