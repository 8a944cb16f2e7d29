// util/validation_util.go

package util

import (
	"fmt"

	"github.com/fleetgate/gatekeeper/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateAccessRequest(request model.AccessRequest) error {
	if request.UserID == "" {
		return fmt.Errorf("access request user id cannot be empty")
	}
	if request.Page == "" {
		return fmt.Errorf("access request page cannot be empty")
	}
	if request.Section == "" {
		return fmt.Errorf("access request section cannot be empty")
	}
	if request.Role == "" {
		return fmt.Errorf("access request role cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateProfile(profile model.UserPermissionProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("profile user id cannot be empty")
	}
	for _, override := range profile.Overrides {
		if override.PermissionID == "" {
			return fmt.Errorf("override permission id cannot be empty")
		}
		if override.Temporary && override.ExpiresAt == nil {
			// Allowed: a temporary override without an expiry never lapses,
			// but the grantor should know that.
			continue
		}
	}
	return nil
}
