// engine/defaults.go
package engine

import "github.com/fleetgate/gatekeeper/model"

// DefaultPermissions is the shipping rule set for the fleet operations
// platform. The two wildcard rules sit at the top priorities on purpose:
// evaluation is first-match-wins, so app-wide gating has to outrank every
// page-scoped rule.
func DefaultPermissions() []model.SectionPermission {
	return []model.SectionPermission{
		{
			ID:       "app.access",
			Page:     model.Wildcard,
			Section:  model.Wildcard,
			Priority: 100,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionCompliance,
					Requirement: "dotStatus",
					Value:       "violation",
					Operator:    model.OperatorNotEquals,
					BlockType:   model.BlockApp,
					Message:     "Account locked: DOT compliance violation on file",
				},
				{
					Type:        model.ConditionCompliance,
					Requirement: "licenseStatus",
					Value:       "suspended",
					Operator:    model.OperatorNotEquals,
					BlockType:   model.BlockApp,
					Message:     "Account locked: driver license suspended",
				},
			},
		},
		{
			ID:       "training.required-modules",
			Page:     model.Wildcard,
			Section:  model.Wildcard,
			Priority: 99,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionTraining,
					Requirement: "safety_fundamentals",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockPage,
					Message:     "Required safety training incomplete",
				},
			},
		},
		{
			ID:            "dashboard.revenue",
			Page:          "dashboard",
			Section:       "revenue",
			RequiredRoles: []model.Role{model.RoleAdmin, model.RoleManager},
			Priority:      10,
		},
		{
			ID:       "dashboard.quick-actions",
			Page:     "dashboard",
			Section:  "quick-actions",
			Priority: 5,
		},
		{
			ID:            "dispatch.load-board",
			Page:          "dispatch",
			Section:       "load-board",
			RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      3,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionTraining,
					Requirement: "dispatch_certification",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "Dispatch certification required",
				},
				{
					Type:        model.ConditionCompliance,
					Requirement: "dotStatus",
					Value:       "compliant",
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "DOT compliance must be current to work the load board",
				},
			},
		},
		{
			ID:            "dispatch.assign-drivers",
			Page:          "dispatch",
			Section:       "assign-drivers",
			RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      3,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionPerformance,
					Requirement: "safetyIncidents",
					Value:       3,
					Operator:    model.OperatorLessThan,
					BlockType:   model.BlockSection,
					Message:     "Too many recent safety incidents to assign drivers",
				},
			},
		},
		{
			ID:            "dispatch.high-value-loads",
			Page:          "dispatch",
			Section:       "high-value-loads",
			RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      2,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionPerformance,
					Requirement: "rating",
					Value:       4.0,
					Operator:    model.OperatorGreaterThan,
					BlockType:   model.BlockSection,
					Message:     "Performance rating too low for high-value loads",
				},
				{
					Type:        model.ConditionPerformance,
					Requirement: "onTimeDelivery",
					Value:       90,
					Operator:    model.OperatorGreaterThan,
					BlockType:   model.BlockSection,
					Message:     "On-time delivery below the high-value threshold",
				},
			},
		},
		{
			ID:            "dispatch.hazmat-loads",
			Page:          "dispatch",
			Section:       "hazmat-loads",
			RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      2,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionCertification,
					Requirement: "hazmat_endorsement",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "Active hazmat endorsement required",
				},
			},
		},
		{
			ID:            "broker.quotes",
			Page:          "broker",
			Section:       "quotes",
			RequiredRoles: []model.Role{model.RoleBroker, model.RoleManager, model.RoleAdmin},
			Priority:      3,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionTraining,
					Requirement: "broker_fundamentals",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "Broker fundamentals training required",
				},
			},
		},
		{
			ID:            "drivers.financials",
			Page:          "drivers",
			Section:       "financials",
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      5,
		},
		{
			ID:            "driver-portal.all",
			Page:          "driver-portal",
			Section:       model.Wildcard,
			RequiredRoles: []model.Role{model.RoleDriver, model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      4,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionCompliance,
					Requirement: "licenseStatus",
					Value:       "valid",
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockPage,
					Message:     "A valid driver license is required for the driver portal",
				},
			},
		},
		{
			ID:            "fleet.maintenance",
			Page:          "fleet",
			Section:       "maintenance",
			RequiredRoles: []model.Role{model.RoleDispatcher, model.RoleManager, model.RoleAdmin},
			Priority:      3,
		},
		{
			ID:            "analytics.all",
			Page:          "analytics",
			Section:       model.Wildcard,
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      8,
		},
		{
			ID:            "financials.payments",
			Page:          "financials",
			Section:       "payments",
			RequiredRoles: []model.Role{model.RoleAdmin},
			Priority:      9,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionCertification,
					Requirement: "payment_processor",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "Payment processor certification required",
				},
			},
		},
		{
			ID:            "financials.reports",
			Page:          "financials",
			Section:       "reports",
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      8,
		},
		{
			ID:            "compliance.audit-prep",
			Page:          "compliance",
			Section:       "audit-prep",
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      5,
		},
		{
			ID:       "compliance.dot-status",
			Page:     "compliance",
			Section:  "dot-status",
			Priority: 3,
		},
		{
			ID:            "training.instructor-tools",
			Page:          "training",
			Section:       "instructor-tools",
			RequiredRoles: []model.Role{model.RoleInstructor, model.RoleAdmin},
			Priority:      5,
		},
		{
			ID:       "training.modules",
			Page:     "training",
			Section:  "modules",
			Priority: 3,
		},
		{
			ID:            "settings.user-management",
			Page:          "settings",
			Section:       "user-management",
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      9,
		},
		{
			ID:            "settings.permissions",
			Page:          "settings",
			Section:       "permissions",
			RequiredRoles: []model.Role{model.RoleAdmin},
			Priority:      10,
		},
		{
			ID:            "accounting.payroll",
			Page:          "accounting",
			Section:       "payroll",
			RequiredRoles: []model.Role{model.RoleManager, model.RoleAdmin},
			Priority:      8,
			Conditions: []model.AccessCondition{
				{
					Type:        model.ConditionCertification,
					Requirement: "payroll_access",
					Value:       true,
					Operator:    model.OperatorEquals,
					BlockType:   model.BlockSection,
					Message:     "Payroll access certification required",
				},
			},
		},
	}
}
