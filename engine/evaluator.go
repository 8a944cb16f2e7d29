// engine/evaluator.go
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
)

const (
	reasonGranted         = "Access granted"
	reasonNoPermission    = "No permission found for this section"
	reasonOverrideGranted = "Access granted by override"
	reasonOverrideDenied  = "Access denied by override"
)

// Evaluator decides, for a given user, role, page and section, whether access
// is granted and at what granularity a denial applies. Every call is a pure
// function of its inputs: the catalog is immutable and the profile snapshot
// is never mutated, so an Evaluator is safe for concurrent use.
type Evaluator struct {
	catalog    *Catalog
	conditions *conditionEvaluator
	now        func() time.Time
}

type EvaluatorOption func(*Evaluator)

// WithClock replaces the time source used for override expiry checks.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) {
		e.now = now
	}
}

// WithCustomCondition registers a handler for custom conditions keyed by
// requirement. Without a handler a custom condition fails closed.
func WithCustomCondition(requirement string, handler CustomConditionHandler) EvaluatorOption {
	return func(e *Evaluator) {
		e.conditions.custom[requirement] = handler
	}
}

func NewEvaluator(catalog *Catalog, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		catalog:    catalog,
		conditions: newConditionEvaluator(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog this evaluator decides against.
func (e *Evaluator) Catalog() *Catalog {
	return e.catalog
}

// Explanation records which rule decided an evaluation, for audit and
// telemetry. PermissionID is empty on a default deny.
type Explanation struct {
	PermissionID string
	Overridden   bool
}

// Evaluate walks the candidate permissions for the requested location in
// priority order and returns the verdict of the first candidate that is not
// skipped. A candidate is skipped when the user lacks the account-level grant
// or the role does not qualify. First-match-wins is deliberate: a
// lower-priority rule never gets a chance to contradict a higher-priority
// rule's verdict, and the shipping rule set relies on that ordering for its
// app-wide lockout rules.
func (e *Evaluator) Evaluate(ctx context.Context, request model.AccessRequest, profile *model.UserPermissionProfile) model.AccessResult {
	result, _ := e.Explain(ctx, request, profile)
	return result
}

// Explain is Evaluate plus the identity of the deciding rule.
func (e *Evaluator) Explain(ctx context.Context, request model.AccessRequest, profile *model.UserPermissionProfile) (model.AccessResult, Explanation) {
	now := e.now()

	for _, permission := range e.catalog.FindCandidates(request.Page, request.Section) {
		if !profile.Permissions.Contains(permission.ID) {
			continue
		}
		if !permission.AllowsRole(request.Role) {
			continue
		}

		if override := resolveOverride(permission.ID, profile.Overrides, now); override != nil {
			logger.Info("Access override applied",
				zap.String("userID", request.UserID),
				zap.String("permissionID", permission.ID),
				zap.String("grantedBy", override.GrantedBy),
				zap.Bool("granted", override.Granted))
			return overrideResult(permission, override), Explanation{PermissionID: permission.ID, Overridden: true}
		}

		if len(permission.Conditions) > 0 {
			outcome := e.conditions.evaluateAll(permission.Conditions, profile.Conditions)
			if !outcome.Passed {
				return model.AccessResult{
					Granted:   false,
					Reason:    outcome.Message,
					BlockType: outcome.BlockType,
				}, Explanation{PermissionID: permission.ID}
			}
		}

		return model.AccessResult{
			Granted:   true,
			Reason:    reasonGranted,
			BlockType: model.BlockNone,
		}, Explanation{PermissionID: permission.ID}
	}

	return model.AccessResult{
		Granted:   false,
		Reason:    reasonNoPermission,
		BlockType: model.BlockSection,
	}, Explanation{}
}

// overrideResult maps an active override onto a verdict. Overrides carry no
// block type of their own: the rule's first condition supplies it, falling
// back to section.
func overrideResult(permission model.SectionPermission, override *model.PermissionOverride) model.AccessResult {
	blockType := model.BlockSection
	if len(permission.Conditions) > 0 {
		blockType = permission.Conditions[0].BlockType
	}

	reason := override.Reason
	if reason == "" {
		if override.Granted {
			reason = reasonOverrideGranted
		} else {
			reason = reasonOverrideDenied
		}
	}

	return model.AccessResult{
		Granted:   override.Granted,
		Reason:    reason,
		BlockType: blockType,
	}
}
