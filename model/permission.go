// model/permission.go
package model

// Wildcard matches any page or section in a SectionPermission.
const Wildcard = "*"

type Role string

const (
	RoleDriver     Role = "driver"
	RoleDispatcher Role = "dispatcher"
	RoleBroker     Role = "broker"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
)

type ConditionType string

const (
	ConditionTraining      ConditionType = "training"
	ConditionCompliance    ConditionType = "compliance"
	ConditionCertification ConditionType = "certification"
	ConditionPerformance   ConditionType = "performance"
	ConditionCustom        ConditionType = "custom"
)

func (t ConditionType) Valid() bool {
	switch t {
	case ConditionTraining, ConditionCompliance, ConditionCertification, ConditionPerformance, ConditionCustom:
		return true
	}
	return false
}

type Operator string

const (
	OperatorEquals      Operator = "equals"
	OperatorNotEquals   Operator = "not_equals"
	OperatorGreaterThan Operator = "greater_than"
	OperatorLessThan    Operator = "less_than"
	OperatorContains    Operator = "contains"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEquals, OperatorNotEquals, OperatorGreaterThan, OperatorLessThan, OperatorContains:
		return true
	}
	return false
}

// BlockType is the blast radius of a denial: a single UI section, a whole
// page, or the entire application.
type BlockType string

const (
	BlockSection BlockType = "section"
	BlockPage    BlockType = "page"
	BlockApp     BlockType = "app"
	BlockNone    BlockType = "none"
)

func (b BlockType) Valid() bool {
	switch b {
	case BlockSection, BlockPage, BlockApp, BlockNone:
		return true
	}
	return false
}

// AccessCondition is a single gating predicate attached to a permission.
type AccessCondition struct {
	Type        ConditionType `json:"type"`
	Requirement string        `json:"requirement"`
	Value       interface{}   `json:"value"`
	Operator    Operator      `json:"operator"`
	BlockType   BlockType     `json:"block_type"`
	Message     string        `json:"message"`
}

// SectionPermission ties a page/section pair to required roles and optional
// gating conditions. Page and Section may be the wildcard "*".
type SectionPermission struct {
	ID            string            `json:"id"`
	Page          string            `json:"page"`
	Section       string            `json:"section"`
	RequiredRoles []Role            `json:"required_roles,omitempty"`
	Conditions    []AccessCondition `json:"conditions,omitempty"`
	Priority      int               `json:"priority"`
}

// Matches reports whether the permission governs the requested location.
func (p SectionPermission) Matches(page, section string) bool {
	if p.Page != Wildcard && p.Page != page {
		return false
	}
	if p.Section != Wildcard && p.Section != section {
		return false
	}
	return true
}

// AllowsRole reports whether the role qualifies. An empty RequiredRoles list
// means any role with the permission granted qualifies.
func (p SectionPermission) AllowsRole(role Role) bool {
	if len(p.RequiredRoles) == 0 {
		return true
	}
	for _, r := range p.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AccessRequest identifies one evaluation: who is asking for what.
type AccessRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Page    string `json:"page" binding:"required"`
	Section string `json:"section" binding:"required"`
	Role    Role   `json:"role" binding:"required"`
}

// AccessResult is the engine's verdict for a single request.
type AccessResult struct {
	Granted   bool      `json:"granted"`
	Reason    string    `json:"reason"`
	BlockType BlockType `json:"block_type"`
}

// SectionTarget is one page/section pair inside a batch request.
type SectionTarget struct {
	Page    string `json:"page" binding:"required"`
	Section string `json:"section" binding:"required"`
}

// BatchAccessRequest evaluates several locations for one user in a single
// call, so a UI can gate its whole navigation at once.
type BatchAccessRequest struct {
	UserID  string          `json:"user_id" binding:"required"`
	Role    Role            `json:"role" binding:"required"`
	Targets []SectionTarget `json:"targets" binding:"required,min=1"`
}

// BatchAccessResult pairs a target with its verdict.
type BatchAccessResult struct {
	Page    string       `json:"page"`
	Section string       `json:"section"`
	Result  AccessResult `json:"result"`
}

// EvaluateRequest is the HTTP body for the evaluate endpoint. Profile is
// optional; when absent the service loads the caller's profile snapshot from
// the profile store.
type EvaluateRequest struct {
	UserID  string                 `json:"user_id" binding:"required"`
	Page    string                 `json:"page" binding:"required"`
	Section string                 `json:"section" binding:"required"`
	Role    Role                   `json:"role" binding:"required"`
	Profile *UserPermissionProfile `json:"profile,omitempty"`
}
