// engine/overrides.go
package engine

import (
	"time"

	"github.com/fleetgate/gatekeeper/model"
)

// resolveOverride returns the first active override for the permission, or
// nil when none applies. An override is active iff it is permanent, or
// temporary with no expiry, or temporary with an expiry still in the future.
// Expired temporary overrides are treated as absent so evaluation falls
// through to normal condition logic.
func resolveOverride(permissionID string, overrides []model.PermissionOverride, now time.Time) *model.PermissionOverride {
	for i := range overrides {
		o := &overrides[i]
		if o.PermissionID != permissionID {
			continue
		}
		if o.ActiveAt(now) {
			return o
		}
	}
	return nil
}
