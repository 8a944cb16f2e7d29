// engine/evaluator_test.go
package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/gatekeeper/engine"
	"github.com/fleetgate/gatekeeper/model"
)

// loadBoardCatalog mirrors the shipping dispatch rule: dispatcher role plus
// completed dispatch training plus a compliant DOT record.
func loadBoardCatalog(t *testing.T) *engine.Catalog {
	t.Helper()
	catalog, err := engine.LoadCatalog([]model.SectionPermission{{
		ID:            "dispatch.load-board",
		Page:          "dispatch",
		Section:       "load-board",
		RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
		Conditions: []model.AccessCondition{
			{
				Type: model.ConditionTraining, Requirement: "dispatch_certification",
				Value: true, Operator: model.OperatorEquals, BlockType: model.BlockSection,
				Message: "Dispatch certification required",
			},
			{
				Type: model.ConditionCompliance, Requirement: "dotStatus",
				Value: "compliant", Operator: model.OperatorEquals, BlockType: model.BlockSection,
				Message: "DOT compliance required",
			},
		},
		Priority: 3,
	}})
	require.NoError(t, err)
	return catalog
}

func dispatcherProfile(status model.UserConditionStatus, overrides ...model.PermissionOverride) *model.UserPermissionProfile {
	return &model.UserPermissionProfile{
		UserID:      "dispatcher-12",
		Permissions: model.NewStringSet("dispatch.load-board"),
		Conditions:  status,
		Overrides:   overrides,
		LastUpdated: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
}

var dispatcherRequest = model.AccessRequest{
	UserID:  "dispatcher-12",
	Page:    "dispatch",
	Section: "load-board",
	Role:    model.RoleDispatcher,
}

func TestEvaluate_TrainingNotCompleted(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := dispatcherProfile(model.UserConditionStatus{
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	})

	result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "Dispatch certification required", result.Reason)
	assert.Equal(t, model.BlockSection, result.BlockType)
}

func TestEvaluate_AllConditionsPass(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := dispatcherProfile(model.UserConditionStatus{
		Training:   model.TrainingStatus{Completed: model.NewStringSet("dispatch_certification")},
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	})

	result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
	assert.True(t, result.Granted)
	assert.Equal(t, "Access granted", result.Reason)
	assert.Equal(t, model.BlockNone, result.BlockType)
}

func TestEvaluate_PermanentOverrideShortCircuits(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	// Training is not completed, so the override is the only path to a grant.
	profile := dispatcherProfile(model.UserConditionStatus{
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	}, model.PermissionOverride{
		PermissionID: "dispatch.load-board",
		Granted:      true,
		Reason:       "Temporary staffing shortage",
		GrantedBy:    "ops-manager-3",
		Temporary:    false,
	})

	result, explanation := evaluator.Explain(context.Background(), dispatcherRequest, profile)
	assert.True(t, result.Granted)
	assert.Equal(t, "Temporary staffing shortage", result.Reason)
	assert.True(t, explanation.Overridden)
	assert.Equal(t, "dispatch.load-board", explanation.PermissionID)
}

func TestEvaluate_OverrideExpiry(t *testing.T) {
	expiry := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	override := model.PermissionOverride{
		PermissionID: "dispatch.load-board",
		Granted:      true,
		GrantedBy:    "ops-manager-3",
		Temporary:    true,
		ExpiresAt:    &expiry,
	}
	profile := dispatcherProfile(model.UserConditionStatus{
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	}, override)

	t.Run("still valid", func(t *testing.T) {
		now := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
		evaluator := engine.NewEvaluator(loadBoardCatalog(t), engine.WithClock(func() time.Time { return now }))

		result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
		assert.True(t, result.Granted)
	})

	t.Run("expired falls through to conditions", func(t *testing.T) {
		now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		evaluator := engine.NewEvaluator(loadBoardCatalog(t), engine.WithClock(func() time.Time { return now }))

		result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
		assert.False(t, result.Granted)
		assert.Equal(t, "Dispatch certification required", result.Reason)
	})
}

func TestEvaluate_DenyingOverride(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	// Conditions would pass, but a deny override wins.
	profile := dispatcherProfile(model.UserConditionStatus{
		Training:   model.TrainingStatus{Completed: model.NewStringSet("dispatch_certification")},
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	}, model.PermissionOverride{
		PermissionID: "dispatch.load-board",
		Granted:      false,
		Reason:       "Under investigation",
		GrantedBy:    "safety-officer-1",
	})

	result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "Under investigation", result.Reason)
	// The rule's first condition supplies the block type.
	assert.Equal(t, model.BlockSection, result.BlockType)
}

func TestEvaluate_OverrideBlockTypeDefaultsToSection(t *testing.T) {
	catalog, err := engine.LoadCatalog([]model.SectionPermission{{
		ID:       "broker.quotes",
		Page:     "broker",
		Section:  "quotes",
		Priority: 5,
	}})
	require.NoError(t, err)
	evaluator := engine.NewEvaluator(catalog)

	profile := &model.UserPermissionProfile{
		UserID:      "broker-4",
		Permissions: model.NewStringSet("broker.quotes"),
		Overrides: []model.PermissionOverride{{
			PermissionID: "broker.quotes",
			Granted:      false,
		}},
	}

	result := evaluator.Evaluate(context.Background(), model.AccessRequest{
		UserID: "broker-4", Page: "broker", Section: "quotes", Role: model.RoleBroker,
	}, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "Access denied by override", result.Reason)
	assert.Equal(t, model.BlockSection, result.BlockType)
}

func TestEvaluate_DefaultDeny(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := dispatcherProfile(model.UserConditionStatus{})

	result, explanation := evaluator.Explain(context.Background(), model.AccessRequest{
		UserID: "dispatcher-12", Page: "billing", Section: "invoices", Role: model.RoleDispatcher,
	}, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "No permission found for this section", result.Reason)
	assert.Equal(t, model.BlockSection, result.BlockType)
	assert.Empty(t, explanation.PermissionID)
}

func TestEvaluate_SkipWithoutGrant(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := &model.UserPermissionProfile{
		UserID:      "dispatcher-12",
		Permissions: model.NewStringSet(), // rule exists but is not granted
		Conditions: model.UserConditionStatus{
			Training:   model.TrainingStatus{Completed: model.NewStringSet("dispatch_certification")},
			Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
		},
	}

	result := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "No permission found for this section", result.Reason)
}

func TestEvaluate_SkipUnqualifiedRole(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := dispatcherProfile(model.UserConditionStatus{
		Training:   model.TrainingStatus{Completed: model.NewStringSet("dispatch_certification")},
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	})

	result := evaluator.Evaluate(context.Background(), model.AccessRequest{
		UserID: "dispatcher-12", Page: "dispatch", Section: "load-board", Role: model.RoleDriver,
	}, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "No permission found for this section", result.Reason)
}

func TestEvaluate_WildcardAppLockout(t *testing.T) {
	catalog, err := engine.LoadCatalog([]model.SectionPermission{
		{
			ID:      "app.access",
			Page:    model.Wildcard,
			Section: model.Wildcard,
			Conditions: []model.AccessCondition{{
				Type: model.ConditionCompliance, Requirement: "dotStatus",
				Value: "violation", Operator: model.OperatorNotEquals, BlockType: model.BlockApp,
				Message: "Account locked due to DOT violation",
			}},
			Priority: 100,
		},
		{
			ID:       "broker.quotes",
			Page:     "broker",
			Section:  "quotes",
			Priority: 5,
		},
	})
	require.NoError(t, err)
	evaluator := engine.NewEvaluator(catalog)

	profile := &model.UserPermissionProfile{
		UserID:      "driver-9",
		Permissions: model.NewStringSet("app.access", "broker.quotes"),
		Conditions: model.UserConditionStatus{
			Compliance: model.ComplianceStatus{DOTStatus: model.DOTViolation},
		},
	}

	// The wildcard rule fires on an arbitrary page and locks the whole app.
	for _, target := range []model.AccessRequest{
		{UserID: "driver-9", Page: "broker", Section: "quotes", Role: model.RoleBroker},
		{UserID: "driver-9", Page: "fleet", Section: "maintenance", Role: model.RoleBroker},
	} {
		result := evaluator.Evaluate(context.Background(), target, profile)
		assert.False(t, result.Granted)
		assert.Equal(t, model.BlockApp, result.BlockType)
		assert.Equal(t, "Account locked due to DOT violation", result.Reason)
	}
}

func TestEvaluate_HigherPriorityVerdictWins(t *testing.T) {
	// Both rules match and both are granted; the high-priority rule denies
	// while the low-priority one would grant. First match wins.
	catalog, err := engine.LoadCatalog([]model.SectionPermission{
		{
			ID:      "dispatch.load-board.strict",
			Page:    "dispatch",
			Section: "load-board",
			Conditions: []model.AccessCondition{{
				Type: model.ConditionPerformance, Requirement: "rating",
				Value: 4.0, Operator: model.OperatorGreaterThan, BlockType: model.BlockSection,
				Message: "Rating too low",
			}},
			Priority: 10,
		},
		{
			ID:       "dispatch.load-board",
			Page:     "dispatch",
			Section:  "load-board",
			Priority: 1,
		},
	})
	require.NoError(t, err)
	evaluator := engine.NewEvaluator(catalog)

	profile := &model.UserPermissionProfile{
		UserID:      "dispatcher-12",
		Permissions: model.NewStringSet("dispatch.load-board.strict", "dispatch.load-board"),
		Conditions: model.UserConditionStatus{
			Performance: model.PerformanceStatus{Rating: 3.5},
		},
	}

	result, explanation := evaluator.Explain(context.Background(), dispatcherRequest, profile)
	assert.False(t, result.Granted)
	assert.Equal(t, "Rating too low", result.Reason)
	assert.Equal(t, "dispatch.load-board.strict", explanation.PermissionID)
}

func TestEvaluate_Deterministic(t *testing.T) {
	evaluator := engine.NewEvaluator(loadBoardCatalog(t))
	profile := dispatcherProfile(model.UserConditionStatus{
		Training:   model.TrainingStatus{Completed: model.NewStringSet("dispatch_certification")},
		Compliance: model.ComplianceStatus{DOTStatus: model.DOTCompliant},
	})

	first := evaluator.Evaluate(context.Background(), dispatcherRequest, profile)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, evaluator.Evaluate(context.Background(), dispatcherRequest, profile))
	}
}
