// audit/model.go
package audit

import (
	"time"

	"github.com/fleetgate/gatekeeper/model"
)

// AccessAudit is one evaluated access decision, indexed for telemetry and
// compliance review.
type AccessAudit struct {
	Timestamp    time.Time       `json:"timestamp"`
	UserID       string          `json:"user_id"`
	Page         string          `json:"page"`
	Section      string          `json:"section"`
	Role         model.Role      `json:"role"`
	Granted      bool            `json:"granted"`
	Reason       string          `json:"reason"`
	BlockType    model.BlockType `json:"block_type"`
	Overridden   bool            `json:"overridden"`
	PermissionID string          `json:"permission_id,omitempty"`
}
