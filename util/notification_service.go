// util/notification_service.go

package util

import (
	"context"

	"go.uber.org/zap"

	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyAppLockout alerts operations when a user is locked out of the whole
// application, e.g. by a DOT violation or a suspended license.
func (n *NotificationService) NotifyAppLockout(ctx context.Context, userID string, result model.AccessResult) error {
	logger.Info("NOTIFICATION: Application lockout",
		zap.String("userID", userID),
		zap.String("reason", result.Reason))

	// Here you would implement the actual notification logic
	// This could involve sending messages to a queue, calling an external API, etc.

	return nil
}

// NotifyOverrideUsed records that a manual override decided an evaluation,
// so the grantor's exception stays visible to admins.
func (n *NotificationService) NotifyOverrideUsed(ctx context.Context, userID string, override model.PermissionOverride) error {
	logger.Info("NOTIFICATION: Permission override applied",
		zap.String("userID", userID),
		zap.String("permissionID", override.PermissionID),
		zap.String("grantedBy", override.GrantedBy),
		zap.Bool("granted", override.Granted))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	// Here you would implement the actual email sending logic
	// This could involve calling an email service API, using an SMTP client, etc.

	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
