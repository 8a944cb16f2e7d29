// service/access_service.go
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fleetgate/gatekeeper/audit"
	"github.com/fleetgate/gatekeeper/engine"
	gatekeeper_errors "github.com/fleetgate/gatekeeper/errors"
	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
	"github.com/fleetgate/gatekeeper/util"
)

// ProfileStore loads a user's permission profile snapshot.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error)
}

// IAccessService is the boundary the HTTP layer talks to.
type IAccessService interface {
	Evaluate(ctx context.Context, request model.AccessRequest, profile *model.UserPermissionProfile) (model.AccessResult, error)
	EvaluateBatch(ctx context.Context, request model.BatchAccessRequest, profile *model.UserPermissionProfile) ([]model.BatchAccessResult, error)
	ListPermissions(ctx context.Context) []model.SectionPermission
	GetPermission(ctx context.Context, id string) (model.SectionPermission, error)
	QueryDecisions(ctx context.Context, from, to time.Time, userID, page string) ([]audit.AccessAudit, error)
}

// AccessService orchestrates profile loading, decision caching, evaluation,
// and the audit/notification fanout around the pure engine.
type AccessService struct {
	evaluator       *engine.Evaluator
	profiles        ProfileStore
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	auditService    audit.Service
	eventBus        *util.EventBus
}

// DeniedAccessEvent is the payload published on "access.denied".
type DeniedAccessEvent struct {
	UserID  string
	Page    string
	Section string
	Result  model.AccessResult
}

// OverriddenAccessEvent is the payload published on "access.overridden".
type OverriddenAccessEvent struct {
	UserID       string
	PermissionID string
	Result       model.AccessResult
}

// NewAccessService creates a new instance of AccessService
func NewAccessService(
	evaluator *engine.Evaluator,
	profiles ProfileStore,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	auditService audit.Service,
	eventBus *util.EventBus,
) *AccessService {
	service := &AccessService{
		evaluator:       evaluator,
		profiles:        profiles,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		auditService:    auditService,
		eventBus:        eventBus,
	}

	// Set up event subscriptions
	eventBus.Subscribe("access.denied", service.handleAccessDenied)
	eventBus.Subscribe("access.overridden", service.handleAccessOverridden)

	return service
}

func (s *AccessService) handleAccessDenied(ctx context.Context, event util.Event) error {
	denied, ok := event.Payload.(DeniedAccessEvent)
	if !ok {
		return nil
	}
	// App-level lockouts get escalated; section and page denials are routine.
	if denied.Result.BlockType == model.BlockApp {
		return s.notificationSvc.NotifyAppLockout(ctx, denied.UserID, denied.Result)
	}
	return nil
}

func (s *AccessService) handleAccessOverridden(ctx context.Context, event util.Event) error {
	overridden, ok := event.Payload.(OverriddenAccessEvent)
	if !ok {
		return nil
	}
	return s.notificationSvc.NotifyOverrideUsed(ctx, overridden.UserID, model.PermissionOverride{
		PermissionID: overridden.PermissionID,
		Granted:      overridden.Result.Granted,
		Reason:       overridden.Result.Reason,
	})
}

// Evaluate resolves one access request. When profile is nil the caller's
// snapshot is loaded through the cache, then the profile store.
func (s *AccessService) Evaluate(ctx context.Context, request model.AccessRequest, profile *model.UserPermissionProfile) (model.AccessResult, error) {
	if err := s.validationUtil.ValidateAccessRequest(request); err != nil {
		return model.AccessResult{}, gatekeeper_errors.ErrInvalidAccessRequest
	}

	if profile == nil {
		loaded, err := s.loadProfile(ctx, request.UserID)
		if err != nil {
			return model.AccessResult{}, err
		}
		profile = loaded

		// Only store-loaded profiles hit the decision cache: inline profiles
		// are ad hoc snapshots with no stable LastUpdated identity.
		if cached, err := s.cacheService.GetDecision(ctx, request, profile.LastUpdated); err != nil {
			logger.Warn("Decision cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}

		result, explanation := s.evaluator.Explain(ctx, request, profile)
		if err := s.cacheService.SetDecision(ctx, request, profile.LastUpdated, result); err != nil {
			logger.Warn("Failed to cache decision", zap.Error(err))
		}
		s.recordDecision(ctx, request, result, explanation)
		return result, nil
	}

	result, explanation := s.evaluator.Explain(ctx, request, profile)
	s.recordDecision(ctx, request, result, explanation)
	return result, nil
}

// EvaluateBatch resolves every target with a single profile snapshot, so the
// whole batch observes one consistent view of the user's condition data.
func (s *AccessService) EvaluateBatch(ctx context.Context, request model.BatchAccessRequest, profile *model.UserPermissionProfile) ([]model.BatchAccessResult, error) {
	if request.UserID == "" || request.Role == "" || len(request.Targets) == 0 {
		return nil, gatekeeper_errors.ErrInvalidAccessRequest
	}

	if profile == nil {
		loaded, err := s.loadProfile(ctx, request.UserID)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	results := make([]model.BatchAccessResult, len(request.Targets))
	for i, target := range request.Targets {
		single := model.AccessRequest{
			UserID:  request.UserID,
			Page:    target.Page,
			Section: target.Section,
			Role:    request.Role,
		}
		result, explanation := s.evaluator.Explain(ctx, single, profile)
		s.recordDecision(ctx, single, result, explanation)
		results[i] = model.BatchAccessResult{
			Page:    target.Page,
			Section: target.Section,
			Result:  result,
		}
	}
	return results, nil
}

func (s *AccessService) ListPermissions(ctx context.Context) []model.SectionPermission {
	return s.evaluator.Catalog().Permissions()
}

func (s *AccessService) GetPermission(ctx context.Context, id string) (model.SectionPermission, error) {
	permission, ok := s.evaluator.Catalog().Get(id)
	if !ok {
		return model.SectionPermission{}, gatekeeper_errors.ErrPermissionNotFound
	}
	return permission, nil
}

func (s *AccessService) QueryDecisions(ctx context.Context, from, to time.Time, userID, page string) ([]audit.AccessAudit, error) {
	return s.auditService.QueryDecisions(ctx, from, to, userID, page)
}

func (s *AccessService) loadProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error) {
	cached, err := s.cacheService.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("Profile cache lookup failed", zap.Error(err), zap.String("userID", userID))
	}
	if cached != nil {
		return cached, nil
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetProfile(ctx, *profile); err != nil {
		logger.Warn("Failed to cache profile", zap.Error(err), zap.String("userID", userID))
	}
	return profile, nil
}

// recordDecision fans the verdict out to the audit index and the event bus.
// Failures here never affect the verdict; they are logged and dropped.
func (s *AccessService) recordDecision(ctx context.Context, request model.AccessRequest, result model.AccessResult, explanation engine.Explanation) {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.auditService.LogDecision(gctx, audit.AccessAudit{
			Timestamp:    time.Now(),
			UserID:       request.UserID,
			Page:         request.Page,
			Section:      request.Section,
			Role:         request.Role,
			Granted:      result.Granted,
			Reason:       result.Reason,
			BlockType:    result.BlockType,
			Overridden:   explanation.Overridden,
			PermissionID: explanation.PermissionID,
		})
	})

	g.Go(func() error {
		if explanation.Overridden {
			s.eventBus.Publish(gctx, "access.overridden", OverriddenAccessEvent{
				UserID:       request.UserID,
				PermissionID: explanation.PermissionID,
				Result:       result,
			})
		}
		if !result.Granted {
			s.eventBus.Publish(gctx, "access.denied", DeniedAccessEvent{
				UserID:  request.UserID,
				Page:    request.Page,
				Section: request.Section,
				Result:  result,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Failed to record access decision",
			zap.Error(err),
			zap.String("userID", request.UserID),
			zap.String("page", request.Page),
			zap.String("section", request.Section))
	}
}
